package query

import "strings"

// Serialize renders the group back into a parseable query string: include
// items joined by " " (AND) or "~" (OR), then each exclude item prefixed
// with '-' and space-joined. A nested subgroup is parenthesized only when
// its parent list holds more than one item; a lone subgroup needs no
// brackets because it fully owns its nesting level.
func Serialize(g *Group) string {
	var b strings.Builder
	g.serializeInto(&b)
	return b.String()
}

func (g *Group) serializeInto(b *strings.Builder) {
	sep := " "
	if g.Mode == ModeOr {
		sep = "~"
	}
	for i, it := range g.Include {
		if i > 0 {
			b.WriteString(sep)
		}
		it.writeTo(b, len(g.Include))
	}
	for _, it := range g.Exclude {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("-")
		// Exclude groups are always bracketed. They cannot come out of the
		// parser (the '-' prefix only applies to leaf tokens) but the
		// mutation API can build them, and bare serialization would
		// re-parse as independent terms.
		it.writeTo(b, 2)
	}
}

func (g *Group) writeTo(b *strings.Builder, siblings int) {
	if siblings > 1 {
		b.WriteString("(")
		g.serializeInto(b)
		b.WriteString(")")
		return
	}
	g.serializeInto(b)
}

func (f *Filter) writeTo(b *strings.Builder, _ int) {
	if f.Field != "" {
		b.WriteString(f.Field)
		b.WriteString(f.Operator.String())
	}
	b.WriteString(quoteTerm(f.Term))
}

// quoteTerm wraps a term in double quotes when it contains characters the
// tokenizer treats as structural, so serialized output re-parses into the
// same term.
func quoteTerm(term string) string {
	if term == "" || strings.ContainsAny(term, " ()~") {
		return `"` + term + `"`
	}
	return term
}
