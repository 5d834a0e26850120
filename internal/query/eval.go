package query

import "strings"

// Record is one searchable item: property names mapped to values. Values
// that are strings or sequences of strings participate in matching; every
// other value type is ignored, so a leaf that only finds such values does
// not match. Both []string and []any sequences are accepted because records
// decoded from JSON carry []any.
type Record map[string]any

// Matches reports whether the record satisfies the group. Evaluation never
// fails: absent fields, non-string values and empty groups simply resolve
// to their boolean identity.
func Matches(g *Group, r Record) bool {
	return g.match(r)
}

func (g *Group) match(r Record) bool {
	if !g.matchInclude(r) {
		return false
	}
	// Exclusions are an AND of negations regardless of the group mode: one
	// matching exclude item fails the whole group.
	for _, it := range g.Exclude {
		if it.match(r) {
			return false
		}
	}
	return true
}

// matchInclude combines the include items per the group mode. An empty
// include list is vacuously satisfied.
func (g *Group) matchInclude(r Record) bool {
	if len(g.Include) == 0 {
		return true
	}
	if g.Mode == ModeOr {
		for _, it := range g.Include {
			if it.match(r) {
				return true
			}
		}
		return false
	}
	for _, it := range g.Include {
		if !it.match(r) {
			return false
		}
	}
	return true
}

func (f *Filter) match(r Record) bool {
	term := fold(f.Term)

	if f.Field == "" {
		// Fieldless leaves scan every string-valued property.
		for _, v := range r {
			if matchValue(v, term, f.Operator) {
				return true
			}
		}
		return false
	}

	// Field lookup is case-insensitive, like every other comparison.
	field := fold(f.Field)
	for k, v := range r {
		if fold(k) == field && matchValue(v, term, f.Operator) {
			return true
		}
	}
	return false
}

// matchValue tests one record value, flattening string sequences. A leaf
// matches when any collected candidate satisfies the operator test.
func matchValue(v any, foldedTerm string, op Operator) bool {
	switch val := v.(type) {
	case string:
		return matchString(val, foldedTerm, op)
	case []string:
		for _, s := range val {
			if matchString(s, foldedTerm, op) {
				return true
			}
		}
	case []any:
		for _, e := range val {
			if s, ok := e.(string); ok && matchString(s, foldedTerm, op) {
				return true
			}
		}
	}
	return false
}

func matchString(value, foldedTerm string, op Operator) bool {
	value = fold(value)
	if op == OpExact {
		return value == foldedTerm
	}
	return strings.Contains(value, foldedTerm)
}

// fold is the single normalization applied at the boundary of every
// comparison, for field names and values alike.
func fold(s string) string {
	return strings.ToLower(s)
}
