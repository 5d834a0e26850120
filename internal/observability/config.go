package observability

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the observability configuration for the search-query engine.
type Config struct {
	// TracerProvider is the OpenTelemetry tracer provider.
	// If nil, tracing is disabled.
	TracerProvider trace.TracerProvider

	// MeterProvider is the OpenTelemetry meter provider.
	// If nil, metrics collection is disabled.
	MeterProvider metric.MeterProvider

	// ServiceName is used to identify this engine in traces and metrics.
	ServiceName string

	// EnableQueryText adds the raw query string as a span attribute. Off by
	// default because query text can carry user data.
	EnableQueryText bool

	// EnableServerTiming enables Server-Timing metrics when the caller's
	// context carries a go-server-timing header, so parse and match timings
	// show up in browser dev tools of the embedding HTTP service.
	EnableServerTiming bool

	// tracer is the configured tracer instance.
	tracer *Tracer

	// metrics is the configured metrics instance.
	metrics *Metrics
}

// Option is a functional option for configuring observability.
type Option func(*Config)

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) {
		c.MeterProvider = mp
	}
}

// WithServiceName sets the service name for identification.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithQueryText enables the raw query string as a span attribute.
func WithQueryText() Option {
	return func(c *Config) {
		c.EnableQueryText = true
	}
}

// WithServerTiming enables Server-Timing metric recording.
func WithServerTiming() Option {
	return func(c *Config) {
		c.EnableServerTiming = true
	}
}

// NewConfig builds a Config from the given options. Providers that are not
// set fall back to no-op implementations.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{ServiceName: "searchquery"}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.TracerProvider != nil {
		cfg.tracer = NewTracer(cfg.TracerProvider, cfg.ServiceName)
	} else {
		cfg.tracer = NewNoopTracer()
	}
	if cfg.MeterProvider != nil {
		cfg.metrics = NewMetrics(cfg.MeterProvider)
	} else {
		cfg.metrics = NewNoopMetrics()
	}

	return cfg
}

// Tracer returns the configured tracer, never nil.
func (c *Config) Tracer() *Tracer {
	if c == nil || c.tracer == nil {
		return NewNoopTracer()
	}
	return c.tracer
}

// Metrics returns the configured metrics, never nil.
func (c *Config) Metrics() *Metrics {
	if c == nil || c.metrics == nil {
		return NewNoopMetrics()
	}
	return c.metrics
}
