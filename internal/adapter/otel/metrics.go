package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "infoshield"

// Metrics holds all InfoShield metric instruments.
type Metrics struct {
	VerificationsStarted metric.Int64Counter
	VerificationsDone    metric.Int64Counter
	VerificationsFailed  metric.Int64Counter
	QueriesBlocked       metric.Int64Counter
	ReviewsFlagged       metric.Int64Counter
	CacheHits            metric.Int64Counter
	VerificationDuration metric.Float64Histogram
	CredibilityScores    metric.Int64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.VerificationsStarted, err = meter.Int64Counter("infoshield.verifications.started",
		metric.WithDescription("Number of verifications started"))
	if err != nil {
		return nil, err
	}

	m.VerificationsDone, err = meter.Int64Counter("infoshield.verifications.done",
		metric.WithDescription("Number of verifications completed"))
	if err != nil {
		return nil, err
	}

	m.VerificationsFailed, err = meter.Int64Counter("infoshield.verifications.failed",
		metric.WithDescription("Number of verifications that ended in error"))
	if err != nil {
		return nil, err
	}

	m.QueriesBlocked, err = meter.Int64Counter("infoshield.queries.blocked",
		metric.WithDescription("Number of queries rejected by the guardrail"))
	if err != nil {
		return nil, err
	}

	m.ReviewsFlagged, err = meter.Int64Counter("infoshield.reviews.flagged",
		metric.WithDescription("Number of queries parked for human review"))
	if err != nil {
		return nil, err
	}

	m.CacheHits, err = meter.Int64Counter("infoshield.cache.hits",
		metric.WithDescription("Number of search evidence cache hits"))
	if err != nil {
		return nil, err
	}

	m.VerificationDuration, err = meter.Float64Histogram("infoshield.verification.duration_seconds",
		metric.WithDescription("Verification duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.CredibilityScores, err = meter.Int64Histogram("infoshield.credibility.score",
		metric.WithDescription("Distribution of credibility scores"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
