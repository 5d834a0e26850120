package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer:      tracenoop.NewTracerProvider().Tracer(""),
		serviceName: "",
	}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// Note: noop meter never returns errors, but we must check them to satisfy the linter.
	m.parseCount, _ = meter.Int64Counter("searchquery.parse.count")          //nolint:errcheck
	m.cacheHits, _ = meter.Int64Counter("searchquery.cache.hits")           //nolint:errcheck
	m.cacheMisses, _ = meter.Int64Counter("searchquery.cache.misses")       //nolint:errcheck
	m.matchDuration, _ = meter.Float64Histogram("searchquery.match.duration") //nolint:errcheck
	m.resultCount, _ = meter.Int64Histogram("searchquery.result.count")     //nolint:errcheck
	m.storeDuration, _ = meter.Float64Histogram("searchquery.store.duration") //nolint:errcheck
	m.errorCount, _ = meter.Int64Counter("searchquery.error.count")         //nolint:errcheck

	return m
}
