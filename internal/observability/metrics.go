package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the query-specific metric instruments.
type Metrics struct {
	parseCount    metric.Int64Counter
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
	matchDuration metric.Float64Histogram
	resultCount   metric.Int64Histogram
	storeDuration metric.Float64Histogram
	errorCount    metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Errors from instrument creation only occur with invalid parameters.
	// Fall back to the bare instrument so the remaining metrics still work.
	var err error

	m.parseCount, err = meter.Int64Counter(
		"searchquery.parse.count",
		metric.WithDescription("Total number of query strings parsed"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		m.parseCount, _ = meter.Int64Counter("searchquery.parse.count")
	}

	m.cacheHits, err = meter.Int64Counter(
		"searchquery.cache.hits",
		metric.WithDescription("Parse cache hits"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		m.cacheHits, _ = meter.Int64Counter("searchquery.cache.hits")
	}

	m.cacheMisses, err = meter.Int64Counter(
		"searchquery.cache.misses",
		metric.WithDescription("Parse cache misses"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		m.cacheMisses, _ = meter.Int64Counter("searchquery.cache.misses")
	}

	m.matchDuration, err = meter.Float64Histogram(
		"searchquery.match.duration",
		metric.WithDescription("Duration of match and filter operations in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.matchDuration, _ = meter.Float64Histogram("searchquery.match.duration")
	}

	m.resultCount, err = meter.Int64Histogram(
		"searchquery.result.count",
		metric.WithDescription("Number of records matched by filter operations"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		m.resultCount, _ = meter.Int64Histogram("searchquery.result.count")
	}

	m.storeDuration, err = meter.Float64Histogram(
		"searchquery.store.duration",
		metric.WithDescription("Duration of saved-query store operations in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.storeDuration, _ = meter.Float64Histogram("searchquery.store.duration")
	}

	m.errorCount, err = meter.Int64Counter(
		"searchquery.error.count",
		metric.WithDescription("Total number of errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("searchquery.error.count")
	}

	return m
}

// RecordParse records one parse, noting whether the cache served it.
func (m *Metrics) RecordParse(ctx context.Context, cacheHit bool) {
	m.parseCount.Add(ctx, 1)
	if cacheHit {
		m.cacheHits.Add(ctx, 1)
	} else {
		m.cacheMisses.Add(ctx, 1)
	}
}

// RecordMatch records the duration of a single-record match.
func (m *Metrics) RecordMatch(ctx context.Context, duration time.Duration) {
	m.matchDuration.Record(ctx, float64(duration.Microseconds())/1000.0,
		metric.WithAttributes(OperationAttr(OpMatch)))
}

// RecordFilter records a batch filter operation: its duration and how many
// of the examined records matched.
func (m *Metrics) RecordFilter(ctx context.Context, duration time.Duration, examined, matched int) {
	attrs := metric.WithAttributes(OperationAttr(OpFilter), RecordCountAttr(examined))
	m.matchDuration.Record(ctx, float64(duration.Microseconds())/1000.0, attrs)
	m.resultCount.Record(ctx, int64(matched), attrs)
}

// RecordStore records a saved-query store operation.
func (m *Metrics) RecordStore(ctx context.Context, op string, duration time.Duration) {
	m.storeDuration.Record(ctx, float64(duration.Microseconds())/1000.0,
		metric.WithAttributes(attribute.String("store.operation", op)))
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError(ctx context.Context, operation string) {
	m.errorCount.Add(ctx, 1, metric.WithAttributes(OperationAttr(operation)))
}
