package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.ServiceName != "searchquery" {
		t.Errorf("ServiceName = %q, want searchquery", cfg.ServiceName)
	}
	if cfg.Tracer() == nil {
		t.Error("Tracer() returned nil, want noop tracer")
	}
	if cfg.Metrics() == nil {
		t.Error("Metrics() returned nil, want noop metrics")
	}
	if cfg.EnableQueryText || cfg.EnableServerTiming {
		t.Error("optional features should be off by default")
	}
}

func TestConfigOptions(t *testing.T) {
	tp := tracenoop.NewTracerProvider()
	mp := noop.NewMeterProvider()

	cfg := NewConfig(
		WithTracerProvider(tp),
		WithMeterProvider(mp),
		WithServiceName("custom"),
		WithQueryText(),
		WithServerTiming(),
	)

	if cfg.TracerProvider != tp {
		t.Error("WithTracerProvider not applied")
	}
	if cfg.MeterProvider != mp {
		t.Error("WithMeterProvider not applied")
	}
	if cfg.ServiceName != "custom" {
		t.Errorf("ServiceName = %q, want custom", cfg.ServiceName)
	}
	if !cfg.EnableQueryText || !cfg.EnableServerTiming {
		t.Error("feature flags not applied")
	}
}

func TestNilConfigIsSafe(t *testing.T) {
	var cfg *Config
	if cfg.Tracer() == nil {
		t.Error("nil config Tracer() returned nil")
	}
	if cfg.Metrics() == nil {
		t.Error("nil config Metrics() returned nil")
	}
}

func TestTracerSpans(t *testing.T) {
	tracer := NewTracer(tracenoop.NewTracerProvider(), "test")
	ctx := context.Background()

	_, span := tracer.StartParse(ctx, true)
	span.End()
	_, span = tracer.StartMatch(ctx)
	span.End()
	_, span = tracer.StartFilter(ctx, 10)
	span.End()
	_, span = tracer.StartStore(ctx, "save", "mine")
	RecordError(span, errors.New("boom"))
	span.End()

	// nil errors must be ignored
	_, span = tracer.StartMatch(ctx)
	RecordError(span, nil)
	span.End()
}

func TestMetricsRecording(t *testing.T) {
	m := NewMetrics(noop.NewMeterProvider())
	ctx := context.Background()

	m.RecordParse(ctx, true)
	m.RecordParse(ctx, false)
	m.RecordMatch(ctx, 120*time.Microsecond)
	m.RecordFilter(ctx, time.Millisecond, 100, 7)
	m.RecordStore(ctx, "save", time.Millisecond)
	m.RecordError(ctx, OpParse)
}

func TestNoopInstruments(t *testing.T) {
	m := NewNoopMetrics()
	m.RecordParse(context.Background(), true)
	m.RecordFilter(context.Background(), time.Millisecond, 1, 1)

	tr := NewNoopTracer()
	_, span := tr.StartMatch(context.Background())
	span.End()
}

func TestServerTimingWithoutHeader(t *testing.T) {
	// Without a go-server-timing header in the context the metric is a no-op
	// and Stop must not panic.
	metric := StartServerTiming(context.Background(), "parse")
	metric.Stop()

	metric = StartServerTimingWithDesc(context.Background(), "match", "record matching")
	metric.Stop()

	var nilMetric *ServerTimingMetric
	nilMetric.Stop()
}
