package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with query-specific span creation
// methods.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartSpan starts a new span with the given name and attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartParse starts a span for parsing a query string.
func (t *Tracer) StartParse(ctx context.Context, cacheHit bool) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "searchquery.parse", trace.WithAttributes(
		OperationAttr(OpParse),
		CacheHitAttr(cacheHit),
	))
}

// StartMatch starts a span for matching one record against a query.
func (t *Tracer) StartMatch(ctx context.Context) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "searchquery.match", trace.WithAttributes(
		OperationAttr(OpMatch),
	))
}

// StartFilter starts a span for filtering a batch of records.
func (t *Tracer) StartFilter(ctx context.Context, recordCount int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "searchquery.filter", trace.WithAttributes(
		OperationAttr(OpFilter),
		RecordCountAttr(recordCount),
	))
}

// StartStore starts a span for a saved-query store operation.
func (t *Tracer) StartStore(ctx context.Context, op string, name string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "searchquery.store."+op, trace.WithAttributes(
		OperationAttr(OpStore),
		attribute.String(AttrStoreName, name),
	))
}

// RecordError marks the span as failed and records the error.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
