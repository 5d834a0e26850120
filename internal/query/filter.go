// Package query implements the search-query language: a tokenizer, a
// recursive-descent parser that builds a tree of filter groups, and an
// evaluator that matches the tree against key/value records.
//
// The grammar is total over all input strings. Malformed brackets, quotes
// and operators degrade to a best-effort parse instead of returning an
// error, so a bad query never produces a failure; it just matches fewer
// (or more) records than the user intended.
package query

import "strings"

// Mode selects how a group's include items combine.
type Mode int

const (
	// ModeAnd requires every include item to match. This is the default:
	// adjacent terms are implicitly AND-ed.
	ModeAnd Mode = iota
	// ModeOr requires at least one include item to match. Requested with
	// the '~' separator.
	ModeOr
)

// String returns the mode's name for logs and span attributes.
func (m Mode) String() string {
	if m == ModeOr {
		return "or"
	}
	return "and"
}

// Operator selects how a leaf's term is compared against a candidate value.
// Both operators compare case-insensitively.
type Operator int

const (
	// OpContains matches when the value contains the term as a substring.
	// This is the default, requested with the ':' marker or no marker.
	OpContains Operator = iota
	// OpExact matches only on full equality, requested with the '=' marker.
	OpExact
)

// String returns the operator's syntax marker.
func (o Operator) String() string {
	if o == OpExact {
		return "="
	}
	return ":"
}

// Item is one node of a filter tree: either a leaf *Filter or a nested
// *Group. The two variants implement matching and serialization themselves,
// so evaluation never inspects concrete types.
type Item interface {
	match(r Record) bool
	writeTo(b *strings.Builder, siblings int)
	item()
}

// Filter is one atomic condition.
type Filter struct {
	// Field names the record property to check. Empty means the term is
	// matched against every string-valued property of the record.
	Field string
	// Term is the value to search for. It is stored unescaped (surrounding
	// quotes already stripped) and compared case-insensitively.
	Term string
	// Operator is the comparison to apply, OpContains by default.
	Operator Operator
}

func (f *Filter) item() {}

// Equal reports structural equality: same field, term and operator.
func (f *Filter) Equal(other *Filter) bool {
	return other != nil && f.Field == other.Field && f.Term == other.Term && f.Operator == other.Operator
}

// Group is a boolean combination of child items. Include items combine
// per Mode; exclude items are an AND of negations regardless of Mode.
type Group struct {
	Include []Item
	Exclude []Item
	Mode    Mode
}

func (g *Group) item() {}

// IsEmpty reports whether the group has neither include nor exclude items.
// An empty group matches every record: the include side of a group is
// vacuously satisfied when it has no items.
func (g *Group) IsEmpty() bool {
	return len(g.Include) == 0 && len(g.Exclude) == 0
}
