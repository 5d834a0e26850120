package searchquery

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nlstn/go-searchquery/internal/observability"
	"github.com/nlstn/go-searchquery/internal/query"
)

// Engine wraps parsing and matching with a process-level parse cache,
// structured logging and optional OpenTelemetry instrumentation. Without
// options (NewEngine()) it uses no-op instrumentation and costs nothing
// beyond the cache lookup.
type Engine struct {
	logger  *slog.Logger
	obs     *observability.Config
	obsOpts []observability.Option
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger used by the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracerProvider enables OpenTelemetry tracing of parse, match and
// filter operations.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.obsOpts = append(e.obsOpts, observability.WithTracerProvider(tp))
	}
}

// WithMeterProvider enables OpenTelemetry metrics collection.
func WithMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(e *Engine) {
		e.obsOpts = append(e.obsOpts, observability.WithMeterProvider(mp))
	}
}

// WithServiceName sets the name identifying this engine in traces and
// metrics.
func WithServiceName(name string) EngineOption {
	return func(e *Engine) {
		e.obsOpts = append(e.obsOpts, observability.WithServiceName(name))
	}
}

// WithQueryText adds the raw query string to spans. Off by default because
// query text can carry user data.
func WithQueryText() EngineOption {
	return func(e *Engine) {
		e.obsOpts = append(e.obsOpts, observability.WithQueryText())
	}
}

// WithServerTiming records parse and match timings into a go-server-timing
// header when the caller's context carries one.
func WithServerTiming() EngineOption {
	return func(e *Engine) {
		e.obsOpts = append(e.obsOpts, observability.WithServerTiming())
	}
}

// NewEngine creates an engine. With no options it logs through
// slog.Default and uses no-op instrumentation.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.obs = observability.NewConfig(e.obsOpts...)
	return e
}

// Parse returns the query for raw, served from a bounded process-level
// cache when the same string was parsed before.
//
// The returned query shares its tree with other callers of the cached path:
// treat it as read-only. Use the package-level Parse, or Clone the result,
// when the query is going to be mutated.
func (e *Engine) Parse(ctx context.Context, raw string) *Query {
	timing := e.startTiming(ctx, "parse")
	defer timing.Stop()

	root, hit := query.CachedParse(raw)
	_, span := e.obs.Tracer().StartParse(ctx, hit)
	defer span.End()
	if e.obs.EnableQueryText {
		span.SetAttributes(observability.QueryAttr(raw))
	}
	e.obs.Metrics().RecordParse(ctx, hit)

	e.logger.DebugContext(ctx, "parsed query", "query", raw, "cache_hit", hit)
	return &Query{root: root}
}

// Match parses raw (cached) and reports whether the record satisfies it.
func (e *Engine) Match(ctx context.Context, raw string, r Record) bool {
	q := e.Parse(ctx, raw)

	timing := e.startTiming(ctx, "match")
	defer timing.Stop()
	_, span := e.obs.Tracer().StartMatch(ctx)
	defer span.End()

	start := time.Now()
	matched := q.Matches(r)
	e.obs.Metrics().RecordMatch(ctx, time.Since(start))
	span.SetAttributes(observability.ResultCountAttr(boolToCount(matched)))

	return matched
}

// FilterRecords parses raw (cached) and returns the records that satisfy
// it, preserving input order.
func (e *Engine) FilterRecords(ctx context.Context, raw string, records []Record) []Record {
	q := e.Parse(ctx, raw)

	timing := e.startTiming(ctx, "filter")
	defer timing.Stop()
	_, span := e.obs.Tracer().StartFilter(ctx, len(records))
	defer span.End()

	start := time.Now()
	matched := q.Filter(records)
	e.obs.Metrics().RecordFilter(ctx, time.Since(start), len(records), len(matched))
	span.SetAttributes(observability.ResultCountAttr(len(matched)))

	e.logger.DebugContext(ctx, "filtered records",
		"query", raw, "examined", len(records), "matched", len(matched))
	return matched
}

func (e *Engine) startTiming(ctx context.Context, name string) *observability.ServerTimingMetric {
	if !e.obs.EnableServerTiming {
		return &observability.ServerTimingMetric{}
	}
	return observability.StartServerTiming(ctx, name)
}

func boolToCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
