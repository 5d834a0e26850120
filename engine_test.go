package searchquery

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestEngineDefaults(t *testing.T) {
	e := NewEngine()
	require.NotNil(t, e)

	q := e.Parse(context.Background(), "a~b")
	assert.True(t, q.Matches(Record{"text": "b"}))
}

func TestEngineParseCaching(t *testing.T) {
	e := NewEngine()
	ctx := context.Background()

	first := e.Parse(ctx, "engine cache probe")
	second := e.Parse(ctx, "engine cache probe")

	// Cached parses share the tree; matching behavior is identical.
	for _, r := range []Record{{"text": "engine cache probe"}, {"text": "probe"}, {"text": "nope"}} {
		assert.Equal(t, first.Matches(r), second.Matches(r))
	}
}

func TestEngineMatch(t *testing.T) {
	e := NewEngine(WithLogger(slog.Default()))
	ctx := context.Background()

	assert.True(t, e.Match(ctx, "role=admin", Record{"role": "Admin"}))
	assert.False(t, e.Match(ctx, "role=admin", Record{"role": "user"}))
}

func TestEngineFilterRecords(t *testing.T) {
	e := NewEngine()
	records := []Record{
		{"name": "Alice", "role": "admin"},
		{"name": "Bob", "role": "user"},
		{"name": "Carol", "role": "admin"},
	}

	got := e.FilterRecords(context.Background(), "role=admin", records)
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0]["name"])
	assert.Equal(t, "Carol", got[1]["name"])
}

func TestEngineWithObservability(t *testing.T) {
	e := NewEngine(
		WithTracerProvider(tracenoop.NewTracerProvider()),
		WithMeterProvider(noop.NewMeterProvider()),
		WithServiceName("engine-test"),
		WithServerTiming(),
		WithQueryText(),
	)
	ctx := context.Background()

	// Instrumented paths must behave exactly like the bare ones.
	assert.True(t, e.Match(ctx, "a", Record{"text": "a"}))
	got := e.FilterRecords(ctx, "a", []Record{{"text": "a"}, {"text": "b"}})
	assert.Len(t, got, 1)
}
