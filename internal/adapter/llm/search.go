package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/infoshield/infoshield/internal/port/collaborator"
)

// Searcher gathers current disaster evidence through a web-search
// capable model behind the LiteLLM proxy.
type Searcher struct {
	client *Client
	model  string
}

// NewSearcher creates the search collaborator.
func NewSearcher(client *Client, model string) *Searcher {
	return &Searcher{client: client, model: model}
}

const searchSystemPrompt = `You are the Search Agent for InfoShield AI.
Your ONLY job is to search for CURRENT, REAL-TIME disaster information.
Do not analyze or verify - just search and report what you find.

Perform multiple targeted searches: current news for the location and
disaster type, official alerts and warnings, current weather conditions,
and verified social media updates.

Return your findings in this EXACT format:

SEARCH_RESULTS:
---
Query 1: [your search query]
Results: [summarize top 3-5 results with source names and dates]
---
Sources Found:
- [Source 1] (date)
- [Source 2] (date)
---
Official Sources Mentioned: [list any government/official sources]
News Sources Mentioned: [list any major news outlets]

Focus on CURRENT information only. Note the date of each source. Flag
information older than 48 hours. Report if no current information was found.`

// Search implements collaborator.Searcher.
func (s *Searcher) Search(ctx context.Context, query, location, disasterType string) (*collaborator.SearchResult, error) {
	user := fmt.Sprintf(
		"Today's date: %s\nQuery: %s\nLocation: %s\nDisaster type: %s",
		time.Now().Format("January 2, 2006"), query, location, disasterType,
	)

	text, err := s.client.Complete(ctx, s.model, searchSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("search collaborator: %w", err)
	}

	return &collaborator.SearchResult{
		Summary: text,
		Sources: parseSources(text),
	}, nil
}

// parseSources extracts the bullet list under "Sources Found:" from the
// structured search output. A malformed response yields no sources, not
// an error; scoring treats the summary text as evidence either way.
func parseSources(text string) []string {
	var sources []string
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if strings.HasPrefix(trimmed, "Sources Found:") {
				inBlock = true
			}
			continue
		}
		if trimmed == "---" {
			if len(sources) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			src := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			// Drop a trailing "(date)" annotation.
			if i := strings.LastIndex(src, "("); i > 0 {
				src = strings.TrimSpace(src[:i])
			}
			if src != "" {
				sources = append(sources, src)
			}
		}
	}
	return sources
}
