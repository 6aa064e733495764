package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/infoshield/infoshield/internal/adapter/otel"
	"github.com/infoshield/infoshield/internal/adapter/ws"
	"github.com/infoshield/infoshield/internal/config"
	"github.com/infoshield/infoshield/internal/domain/analysis"
	"github.com/infoshield/infoshield/internal/domain/credibility"
	"github.com/infoshield/infoshield/internal/domain/guardrail"
	"github.com/infoshield/infoshield/internal/domain/report"
	"github.com/infoshield/infoshield/internal/domain/review"
	"github.com/infoshield/infoshield/internal/domain/verification"
	"github.com/infoshield/infoshield/internal/port/broadcast"
	cacheport "github.com/infoshield/infoshield/internal/port/cache"
	"github.com/infoshield/infoshield/internal/port/collaborator"
	"github.com/infoshield/infoshield/internal/port/messagequeue"
)

// degradedAfter is the number of consecutive collaborator failures
// after which error responses carry the degraded-health notice.
const degradedAfter = 3

// Names reported in Result.AgentsUsed, in pipeline order.
var pipelineAgents = []string{"guardrail", "analyzer", "searcher", "credibility_scorer", "synthesizer"}

// VerificationDeps bundles the orchestrator's collaborators and
// surfaces. Cache, Queue, Hub and Metrics are optional.
type VerificationDeps struct {
	Searcher    collaborator.Searcher
	Synthesizer collaborator.Synthesizer
	Reviews     *ReviewService
	Cache       cacheport.Cache
	Queue       messagequeue.Queue
	Hub         broadcast.Broadcaster
	Metrics     *otel.Metrics
}

// VerificationService drives a query through the sequential pipeline:
// guardrail validation, rule-based analysis, evidence search,
// credibility scoring, report synthesis and post-processing.
type VerificationService struct {
	cfg      config.Verification
	cacheTTL time.Duration
	deps     VerificationDeps
	sem      *semaphore.Weighted

	mu                  sync.Mutex
	consecutiveFailures int
}

// NewVerificationService creates the orchestrator.
func NewVerificationService(cfg config.Verification, cacheCfg config.Cache, deps VerificationDeps) *VerificationService {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &VerificationService{
		cfg:      cfg,
		cacheTTL: cacheCfg.TTL,
		deps:     deps,
		sem:      semaphore.NewWeighted(maxConcurrent),
	}
}

// Degraded reports whether the service has seen enough consecutive
// collaborator failures to consider itself unhealthy.
func (s *VerificationService) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveFailures >= degradedAfter
}

// Verify runs the full pipeline for one query. Collaborator failures
// are converted into user-safe error results, not returned as errors;
// the error return covers context cancellation only.
func (s *VerificationService) Verify(ctx context.Context, query string) (*verification.Result, error) {
	start := time.Now()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire verification slot: %w", err)
	}
	defer s.sem.Release(1)

	ctx, span := otel.StartVerificationSpan(ctx, query)
	defer span.End()

	if s.deps.Metrics != nil {
		s.deps.Metrics.VerificationsStarted.Add(ctx, 1)
	}

	run := &pipelineRun{svc: s, query: query, start: start, limit: s.cfg.MaxEvents}

	// VALIDATING
	run.enterStage(ctx, verification.StageValidating, "")
	verdict := guardrail.Validate(query)
	if !verdict.Valid {
		return run.blocked(ctx, verdict), nil
	}

	// ANALYZING
	run.enterStage(ctx, verification.StageAnalyzing, "")
	an := analysis.Analyze(query, "")

	// SEARCHING
	run.enterStage(ctx, verification.StageSearching, "")
	if run.exceeded {
		return run.capped(ctx, ""), nil
	}
	search, cacheHit := s.cachedSearch(ctx, an)
	if search == nil {
		result, err := s.deps.Searcher.Search(ctx, query, an.Location, an.DisasterType)
		if err != nil {
			return run.failure(ctx, verification.StageSearching, err), nil
		}
		search = result
		s.fillCache(ctx, an, search)
	}

	// SCORING
	run.enterStage(ctx, verification.StageScoring, "")
	cred := credibility.Score(search.Summary, search.Sources, an.Location, an.DisasterType)
	if s.deps.Metrics != nil {
		s.deps.Metrics.CredibilityScores.Record(ctx, int64(cred.Score))
	}

	// SYNTHESIZING
	run.enterStage(ctx, verification.StageSynthesizing, "")
	if run.exceeded {
		return run.capped(ctx, ""), nil
	}
	reportText, err := s.deps.Synthesizer.Synthesize(ctx, collaborator.SynthesisInput{
		Query:           query,
		Analysis:        an,
		Search:          *search,
		Credibility:     cred,
		Threshold:       s.cfg.CredibilityThreshold,
		CriticalUrgency: an.UrgencyScore >= s.cfg.UrgencyThreshold,
	})
	if err != nil {
		return run.failure(ctx, verification.StageSynthesizing, err), nil
	}
	if strings.TrimSpace(reportText) == "" {
		return run.noResponse(ctx), nil
	}

	// POST_PROCESSING
	run.enterStage(ctx, verification.StagePostProcessing, "")
	if run.exceeded {
		return run.capped(ctx, reportText), nil
	}
	score, scoreFound := report.ExtractScore(reportText)

	var scorePtr *int
	if scoreFound {
		scorePtr = &score
	}

	var reviewInfo *verification.ReviewInfo
	if scoreFound && score < s.cfg.CredibilityThreshold && s.deps.Reviews != nil {
		reportText, reviewInfo = s.escalate(ctx, query, an, reportText, score)
	}

	s.resetFailures()
	s.publishVerified(ctx, query, an, cred)

	result := &verification.Result{
		Response:         reportText,
		CredibilityScore: scorePtr,
		AgentsUsed:       pipelineAgents,
		HumanReview:      reviewInfo,
		Metadata: verification.Metadata{
			Stage:          verification.StageDone,
			EventCount:     run.events,
			ProcessingTime: time.Since(start),
			CacheHit:       cacheHit,
			Truncated:      run.exceeded,
		},
	}
	run.done(ctx, result)
	return result, nil
}

// escalate parks the query for human review and rewrites the report
// with the authoritative review notice. A queue failure leaves the
// report unchanged.
func (s *VerificationService) escalate(ctx context.Context, query string, an analysis.Analysis, reportText string, score int) (string, *verification.ReviewInfo) {
	location := an.Location
	if location == "" || location == "Unknown" {
		location = report.FallbackLocation(query)
	}
	urgency := report.EstimateUrgency(query)

	entry, err := s.deps.Reviews.Flag(ctx, query, location, urgency, score)
	if err != nil {
		slog.Error("review escalation failed", "error", err)
		return reportText, nil
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.ReviewsFlagged.Add(ctx, 1)
	}

	reviewTime := review.EstimateReviewTime(urgency)
	reportText = report.StripReviewPlaceholder(reportText) +
		report.ReviewNotice(entry.SessionID, reviewTime, score, s.cfg.CredibilityThreshold)
	return reportText, &verification.ReviewInfo{
		SessionID:  entry.SessionID,
		ReviewTime: reviewTime,
	}
}

// cachedSearch returns cached evidence for the query's location and
// disaster type, or nil on a miss.
func (s *VerificationService) cachedSearch(ctx context.Context, an analysis.Analysis) (*collaborator.SearchResult, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}
	data, ok, err := s.deps.Cache.Get(ctx, cacheKey(an))
	if err != nil || !ok {
		return nil, false
	}
	var search collaborator.SearchResult
	if err := json.Unmarshal(data, &search); err != nil {
		return nil, false
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.CacheHits.Add(ctx, 1)
	}
	return &search, true
}

func (s *VerificationService) fillCache(ctx context.Context, an analysis.Analysis, search *collaborator.SearchResult) {
	if s.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(search)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, cacheKey(an), data, s.cacheTTL); err != nil {
		slog.Warn("search cache fill failed", "error", err)
	}
}

func cacheKey(an analysis.Analysis) string {
	return an.Location + "|" + an.DisasterType
}

func (s *VerificationService) publishVerified(ctx context.Context, query string, an analysis.Analysis, cred credibility.Result) {
	if s.deps.Queue == nil {
		return
	}
	data, err := json.Marshal(messagequeue.QueryVerifiedPayload{
		Query:            query,
		Location:         an.Location,
		DisasterType:     an.DisasterType,
		CredibilityScore: cred.Score,
		UrgencyScore:     an.UrgencyScore,
		Emergency:        an.IsEmergency,
	})
	if err != nil {
		return
	}
	if err := s.deps.Queue.Publish(ctx, messagequeue.SubjectQueryVerified, data); err != nil {
		slog.Error("publish verified query", "error", err)
	}
}

func (s *VerificationService) publishRejected(ctx context.Context, query, category string) {
	if s.deps.Queue == nil {
		return
	}
	data, err := json.Marshal(messagequeue.QueryRejectedPayload{Query: query, Category: category})
	if err != nil {
		return
	}
	if err := s.deps.Queue.Publish(ctx, messagequeue.SubjectQueryRejected, data); err != nil {
		slog.Error("publish rejected query", "error", err)
	}
}

// recordFailure bumps the consecutive failure count and reports
// whether the service is now degraded.
func (s *VerificationService) recordFailure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveFailures++
	return s.consecutiveFailures >= degradedAfter
}

func (s *VerificationService) resetFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveFailures = 0
}

// pipelineRun tracks per-query pipeline state: the stage event cap
// and timing. Full pipeline runs are held to MaxEvents; runs that end
// at the guardrail stage to the tighter MaxEventsSingle.
type pipelineRun struct {
	svc      *VerificationService
	query    string
	start    time.Time
	limit    int
	events   int
	exceeded bool
}

// enterStage counts a stage transition against the event cap and
// broadcasts it to WebSocket clients.
func (r *pipelineRun) enterStage(ctx context.Context, stage verification.Stage, message string) {
	r.events++
	if r.events > r.limit && !r.exceeded {
		r.exceeded = true
		slog.Warn("stage event cap exceeded, stopping pipeline early",
			"events", r.events, "limit", r.limit)
	}
	if r.svc.deps.Hub != nil {
		r.svc.deps.Hub.BroadcastEvent(ctx, ws.EventVerificationStage, ws.VerificationStageEvent{
			Query:   r.query,
			Stage:   string(stage),
			Message: message,
		})
	}
}

// blocked builds the result for a guardrail rejection.
func (r *pipelineRun) blocked(ctx context.Context, verdict guardrail.Verdict) *verification.Result {
	slog.Info("query blocked by guardrail", "category", verdict.Category, "reason", verdict.Reason)

	r.svc.publishRejected(ctx, r.query, verdict.Category)
	if r.svc.deps.Metrics != nil {
		r.svc.deps.Metrics.QueriesBlocked.Add(ctx, 1)
	}

	result := &verification.Result{
		Response:   guardrail.RejectionMessage(verdict),
		AgentsUsed: []string{"guardrail"},
		Metadata: verification.Metadata{
			Stage:          verification.StageDone,
			EventCount:     r.events,
			ProcessingTime: time.Since(r.start),
			Blocked:        true,
			BlockReason:    verdict.Category,
			Truncated:      r.events > r.svc.cfg.MaxEventsSingle,
		},
	}
	r.done(ctx, result)
	return result
}

// capped ends a run that hit its event cap: whatever text exists is
// returned, flagged as truncated, and later stages are skipped.
func (r *pipelineRun) capped(ctx context.Context, text string) *verification.Result {
	result := &verification.Result{
		Response: text,
		Metadata: verification.Metadata{
			Stage:          verification.StageDone,
			EventCount:     r.events,
			ProcessingTime: time.Since(r.start),
			Truncated:      true,
		},
	}
	r.done(ctx, result)
	return result
}

// failure classifies a collaborator error and builds the fixed
// user-safe error result.
func (r *pipelineRun) failure(ctx context.Context, stage verification.Stage, err error) *verification.Result {
	class := report.ClassifyFailure(err)
	slog.Error("verification failed", "stage", stage, "class", class, "error", err)
	return r.errorResult(ctx, class)
}

// noResponse handles an empty synthesizer reply.
func (r *pipelineRun) noResponse(ctx context.Context) *verification.Result {
	slog.Error("synthesizer returned empty response")
	return r.errorResult(ctx, verification.FailureNoResponse)
}

func (r *pipelineRun) errorResult(ctx context.Context, class string) *verification.Result {
	degraded := r.svc.recordFailure()
	if r.svc.deps.Metrics != nil {
		r.svc.deps.Metrics.VerificationsFailed.Add(ctx, 1)
	}

	response := report.ErrorMessage(class)
	if degraded {
		response += report.DegradedNotice
	}

	result := &verification.Result{
		Response: response,
		Metadata: verification.Metadata{
			Stage:          verification.StageError,
			EventCount:     r.events,
			ProcessingTime: time.Since(r.start),
			Error:          true,
			ErrorType:      class,
			Truncated:      r.exceeded,
		},
	}
	r.enterStage(ctx, verification.StageError, class)
	return result
}

// done emits the final stage event and completion metrics.
func (r *pipelineRun) done(ctx context.Context, result *verification.Result) {
	r.enterStage(ctx, verification.StageDone, "")
	if r.svc.deps.Hub != nil {
		reviewID := ""
		if result.HumanReview != nil {
			reviewID = result.HumanReview.SessionID
		}
		r.svc.deps.Hub.BroadcastEvent(ctx, ws.EventVerificationDone, ws.VerificationDoneEvent{
			Query:            r.query,
			CredibilityScore: result.CredibilityScore,
			Blocked:          result.Metadata.Blocked,
			ReviewSessionID:  reviewID,
		})
	}
	if r.svc.deps.Metrics != nil {
		r.svc.deps.Metrics.VerificationsDone.Add(ctx, 1)
		r.svc.deps.Metrics.VerificationDuration.Record(ctx, time.Since(r.start).Seconds())
	}
}
