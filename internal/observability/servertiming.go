package observability

import (
	"context"

	servertiming "github.com/mitchellh/go-server-timing"
)

// ServerTimingMetric wraps the server-timing library's Metric type.
type ServerTimingMetric struct {
	metric *servertiming.Metric
}

// Stop stops the timing metric.
func (m *ServerTimingMetric) Stop() {
	if m != nil && m.metric != nil {
		m.metric.Stop()
	}
}

// StartServerTiming starts a server-timing metric with the given name.
// The engine itself serves no HTTP, but when it runs inside an HTTP handler
// whose context carries a go-server-timing header, parse and match timings
// become visible in the response. If the context has no timing info, a
// no-op metric is returned.
func StartServerTiming(ctx context.Context, name string) *ServerTimingMetric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &ServerTimingMetric{}
	}
	return &ServerTimingMetric{
		metric: timing.NewMetric(name).Start(),
	}
}

// StartServerTimingWithDesc starts a server-timing metric with the given
// name and description.
func StartServerTimingWithDesc(ctx context.Context, name, description string) *ServerTimingMetric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &ServerTimingMetric{}
	}
	return &ServerTimingMetric{
		metric: timing.NewMetric(name).WithDesc(description).Start(),
	}
}
