package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer for screening operations.
const TracerName = "screening"

// Span attribute keys.
const (
	AttrRunID      = "run_id"
	AttrBatchSize  = "batch_size"
	AttrThreshold  = "threshold"
	AttrWorkers    = "workers"
	AttrMatchType  = "match_type"
	AttrConfidence = "confidence"
	AttrScore      = "match_score"
)

// Span names.
const (
	SpanBatchResolve = "screening.batch_resolve"
	SpanResolveRow   = "screening.resolve_row"
)

// Tracer provides tracing for screening operations.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new screening tracer using the global provider.
func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(TracerName)}
}

// StartBatch starts a span covering one batch resolution run. Safe to call
// on a nil Tracer; the returned context and span are then no-ops.
func (t *Tracer) StartBatch(ctx context.Context, runID string, size, threshold, workers int) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, SpanBatchResolve,
		trace.WithAttributes(
			attribute.String(AttrRunID, runID),
			attribute.Int(AttrBatchSize, size),
			attribute.Int(AttrThreshold, threshold),
			attribute.Int(AttrWorkers, workers),
		))
}

// StartRow starts a child span covering one row's resolution. Safe to call
// on a nil Tracer.
func (t *Tracer) StartRow(ctx context.Context) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, SpanResolveRow)
}

// RecordVerdict annotates a row span with the resolution outcome.
func RecordVerdict(span trace.Span, matchType, confidence string, score int) {
	span.SetAttributes(
		attribute.String(AttrMatchType, matchType),
		attribute.String(AttrConfidence, confidence),
		attribute.Int(AttrScore, score),
	)
}

// RecordError records an error on the span and marks it failed.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
