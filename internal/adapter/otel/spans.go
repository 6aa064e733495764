package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "infoshield"

// StartVerificationSpan starts a span for a full pipeline run.
func StartVerificationSpan(ctx context.Context, query string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "verification",
		trace.WithAttributes(
			attribute.String("verification.query", query),
		),
	)
}

// StartStageSpan starts a span for one pipeline stage within a verification.
func StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "stage",
		trace.WithAttributes(
			attribute.String("stage.name", stage),
		),
	)
}

// StartCollaboratorSpan starts a span for a call to an LLM collaborator.
func StartCollaboratorSpan(ctx context.Context, role, model string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "collaborator",
		trace.WithAttributes(
			attribute.String("collaborator.role", role),
			attribute.String("collaborator.model", model),
		),
	)
}
