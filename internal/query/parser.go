package query

import (
	"regexp"
	"strings"
)

// fieldTermPattern splits "field:term" and "field=term" leaves. ':' requests
// a substring comparison, '=' an exact one. The term part may be quoted.
var fieldTermPattern = regexp.MustCompile(`^(\w+)(:|=)(.*)$`)

// Parse tokenizes a raw query string and builds its filter tree. Parsing
// never fails; see the package comment for how malformed input degrades.
func Parse(raw string) *Group {
	group, _ := ParseTokens(Tokenize(raw), 0)
	return group
}

// ParseTokens builds a group from tokens[start:]. It returns the finished
// group together with the index of the token that terminated it, which is
// either the ')' that closed the group or len(tokens).
//
// A group's include items all share one mode. The mode starts as AND and a
// '~' separator switches it to OR for the whole group, applied once when the
// group closes; mixing AND and OR at a single nesting level is not
// expressible and needs explicit brackets.
func ParseTokens(tokens []string, start int) (*Group, int) {
	group := &Group{}
	mode := ModeAnd

	i := start
	for i < len(tokens) {
		switch tok := tokens[i]; tok {
		case "~":
			mode = ModeOr
		case "(":
			sub, end := ParseTokens(tokens, i+1)
			group.Include = append(group.Include, sub)
			i = end
		case ")":
			// Closes this group. At the top level this terminates parsing,
			// which is the pinned behavior for a stray unmatched ')'.
			group.Mode = mode
			return group, i
		default:
			if rest, ok := strings.CutPrefix(tok, "-"); ok {
				group.Exclude = append(group.Exclude, ParseFilter(rest))
			} else {
				group.Include = append(group.Include, ParseFilter(tok))
			}
		}
		i++
	}

	group.Mode = mode
	return group, len(tokens)
}

// ParseFilter parses a single token into a leaf condition.
//
// "field:term" and "field=term" produce field-scoped leaves; a token wrapped
// in double quotes produces a fieldless phrase; anything else is a fieldless
// bare term. A token that fails the field pattern is never an error, it just
// falls back to a literal term.
func ParseFilter(raw string) *Filter {
	if m := fieldTermPattern.FindStringSubmatch(raw); m != nil {
		f := &Filter{Field: m[1], Term: unquote(m[3])}
		if m[2] == "=" {
			f.Operator = OpExact
		}
		return f
	}
	return &Filter{Term: unquote(raw)}
}

// unquote strips at most one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
