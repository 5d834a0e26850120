// Package observability provides OpenTelemetry-based instrumentation for the
// search-query engine.
//
// It supports distributed tracing and metrics collection for parsing,
// matching and saved-query storage.
//
// All observability features are opt-in. When not configured, no-op
// implementations are used with zero performance overhead.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/nlstn/go-searchquery"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/nlstn/go-searchquery"
)

// Semantic attribute keys following OpenTelemetry conventions.
const (
	// Query attributes
	AttrQuery     = "searchquery.query"
	AttrQueryMode = "searchquery.mode"
	AttrOperation = "searchquery.operation"
	AttrCacheHit  = "searchquery.cache_hit"

	// Result attributes
	AttrMatched     = "searchquery.matched"
	AttrRecordCount = "searchquery.record_count"
	AttrResultCount = "searchquery.result_count"

	// Saved-query store attributes
	AttrStoreName = "searchquery.store.name"
	AttrStoreID   = "searchquery.store.id"
)

// Operation names used in spans and metrics.
const (
	OpParse  = "parse"
	OpMatch  = "match"
	OpFilter = "filter"
	OpStore  = "store"
)

// QueryAttr returns the raw query string attribute.
func QueryAttr(query string) attribute.KeyValue {
	return attribute.String(AttrQuery, query)
}

// OperationAttr returns the operation attribute.
func OperationAttr(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// CacheHitAttr reports whether a parse was served from the cache.
func CacheHitAttr(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}

// RecordCountAttr returns the number of records examined.
func RecordCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrRecordCount, n)
}

// ResultCountAttr returns the number of records that matched.
func ResultCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrResultCount, n)
}
