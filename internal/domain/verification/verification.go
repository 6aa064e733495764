// Package verification holds the pipeline state machine and result types
// shared by the orchestrating service and its surfaces.
package verification

import "time"

// Stage identifies where a query is in the pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageValidating     Stage = "VALIDATING"
	StageAnalyzing      Stage = "ANALYZING"
	StageSearching      Stage = "SEARCHING"
	StageScoring        Stage = "SCORING"
	StageSynthesizing   Stage = "SYNTHESIZING"
	StagePostProcessing Stage = "POST_PROCESSING"
	StageDone           Stage = "DONE"
	StageError          Stage = "ERROR"
)

// Failure classes for collaborator errors.
const (
	FailureRateLimit  = "rate_limit"
	FailureTimeout    = "timeout"
	FailureNoResponse = "no_response"
	FailureAPIError   = "api_error"
)

// ReviewInfo describes a triggered human review.
type ReviewInfo struct {
	SessionID  string `json:"session_id"`
	ReviewTime string `json:"review_time"`
}

// Metadata carries processing details alongside a result.
type Metadata struct {
	Stage          Stage         `json:"stage"`
	EventCount     int           `json:"event_count"`
	ProcessingTime time.Duration `json:"processing_time"`
	Blocked        bool          `json:"blocked,omitempty"`
	BlockReason    string        `json:"block_reason,omitempty"`
	Error          bool          `json:"error,omitempty"`
	ErrorType      string        `json:"error_type,omitempty"`
	CacheHit       bool          `json:"cache_hit,omitempty"`
	Truncated      bool          `json:"truncated,omitempty"`
}

// Result is the final outcome of verifying one query.
type Result struct {
	Response         string      `json:"response"`
	CredibilityScore *int        `json:"credibility_score"`
	AgentsUsed       []string    `json:"agents_used"`
	HumanReview      *ReviewInfo `json:"human_review"`
	Metadata         Metadata    `json:"metadata"`
}
