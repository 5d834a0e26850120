// Package searchquery implements a small boolean search-query language:
// it parses a human-typed query string into a filter tree and evaluates
// that tree against key/value records.
//
// The language: adjacent terms are AND-ed, '~' separates OR alternatives,
// parentheses nest groups, '-' excludes a term, "quoted phrases" keep their
// spaces, and field:term / field=term scope a term to one record property
// (':' is substring, '=' is exact). All comparisons are case-insensitive.
//
// Parsing is total: malformed brackets, quotes and operators degrade to a
// best-effort parse instead of failing.
package searchquery

import (
	"github.com/nlstn/go-searchquery/internal/query"
	"gorm.io/gorm"
)

// Core types, defined in internal/query and re-exported here.
type (
	// Record is one searchable item: property names mapped to values.
	// String and []string (or []any holding strings) values participate in
	// matching; everything else is ignored.
	Record = query.Record

	// Item is a node of a filter tree: a leaf filter or a nested group.
	Item = query.Item

	// Group is a boolean combination of items with an independent exclude
	// list.
	Group = query.Group

	// Mode selects how a group's include items combine.
	Mode = query.Mode

	// Operator selects substring or exact comparison for a leaf.
	Operator = query.Operator

	// SQLOptions controls how a query compiles to a WHERE clause.
	SQLOptions = query.SQLOptions
)

const (
	ModeAnd = query.ModeAnd
	ModeOr  = query.ModeOr

	OpContains = query.OpContains
	OpExact    = query.OpExact
)

// NewFilter builds a leaf condition for programmatic query construction.
// An empty field means the term is matched against every string-valued
// record property.
func NewFilter(field, term string, op Operator) Item {
	return &query.Filter{Field: field, Term: term, Operator: op}
}

// NewGroup builds an empty group with the given mode, for nesting via Add.
func NewGroup(mode Mode) Item {
	return &query.Group{Mode: mode}
}

// Query is the parse result of one query string: a filter tree whose root
// is a group. A Query owns its tree exclusively; it is safe for concurrent
// matching as long as no goroutine mutates it at the same time.
type Query struct {
	root *query.Group
}

// Parse builds the filter tree for a raw query string. It never fails.
func Parse(raw string) *Query {
	return &Query{root: query.Parse(raw)}
}

// New returns an empty query, matching every record until items are added.
func New() *Query {
	return &Query{root: &query.Group{}}
}

// Matches reports whether the record satisfies the query.
func (q *Query) Matches(r Record) bool {
	return query.Matches(q.root, r)
}

// MatchesValue matches an arbitrary value, converting structs to records
// with RecordOf first.
func (q *Query) MatchesValue(v any) bool {
	return query.Matches(q.root, query.RecordOf(v))
}

// Filter returns the records that satisfy the query, preserving order.
func (q *Query) Filter(records []Record) []Record {
	return query.FilterRecords(q.root, records)
}

// IsEmpty reports whether the query has no conditions at all. An empty
// query matches every record.
func (q *Query) IsEmpty() bool {
	return q.root.IsEmpty()
}

// String reconstructs a parseable query string from the tree.
func (q *Query) String() string {
	return query.Serialize(q.root)
}

// Clone returns a deep copy that can be mutated independently.
func (q *Query) Clone() *Query {
	return &Query{root: q.root.Clone()}
}

// Add appends an item to the root group's include list, or to its exclude
// list when exclude is true.
func (q *Query) Add(item Item, exclude bool) {
	q.root.Add(item, exclude)
}

// AddWithMode adds an item like Add but reconciles the root mode first:
// when the requested mode differs from the current one, the existing
// include items are promoted into an implicit subgroup keeping their old
// mode, because one group holds exactly one mode.
func (q *Query) AddWithMode(item Item, mode Mode, exclude bool) {
	q.root.AddWithMode(item, mode, exclude)
}

// Remove deletes every leaf filter with the given field, term and operator
// from the root group's include list, or from its exclude list when exclude
// is true. Nested groups are not descended into.
func (q *Query) Remove(field, term string, op Operator, exclude bool) {
	q.root.Remove(&query.Filter{Field: field, Term: term, Operator: op}, exclude)
}

// ApplyTo appends the query's WHERE condition to a GORM statement, so the
// query runs inside the database instead of filtering rows in Go code.
func (q *Query) ApplyTo(db *gorm.DB, opts SQLOptions) *gorm.DB {
	return query.ApplySQL(db, q.root, opts)
}

// Scope returns the query as a GORM scope:
//
//	db.Scopes(q.Scope(opts)).Find(&rows)
func (q *Query) Scope(opts SQLOptions) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return q.ApplyTo(db, opts)
	}
}

// SQL renders the query as one SQL boolean expression with '?' placeholders
// and its argument list. An empty condition string means the query imposes
// no restriction.
func (q *Query) SQL(opts SQLOptions) (string, []any) {
	return query.BuildSQLCondition(q.root, opts)
}

// RecordOf converts a struct (or pointer to struct) into a Record from its
// exported string and []string fields. Records and map[string]any values
// pass through unchanged.
func RecordOf(v any) Record {
	return query.RecordOf(v)
}
