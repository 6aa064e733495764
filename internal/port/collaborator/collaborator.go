// Package collaborator defines the ports for the external LLM-backed
// agents the pipeline consults: evidence search and report synthesis.
package collaborator

import (
	"context"

	"github.com/infoshield/infoshield/internal/domain/analysis"
	"github.com/infoshield/infoshield/internal/domain/credibility"
)

// SearchResult is the evidence a Searcher gathered for a query.
type SearchResult struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

// SynthesisInput is everything the Synthesizer needs to render the
// final verification report. CriticalUrgency asks for emphasized
// safety advice regardless of the credibility outcome.
type SynthesisInput struct {
	Query           string
	Analysis        analysis.Analysis
	Search          SearchResult
	Credibility     credibility.Result
	Threshold       int
	CriticalUrgency bool
}

// Searcher gathers current evidence about a possible disaster.
type Searcher interface {
	Search(ctx context.Context, query, location, disasterType string) (*SearchResult, error)
}

// Synthesizer renders the final verification report.
type Synthesizer interface {
	Synthesize(ctx context.Context, input SynthesisInput) (string, error)
}
