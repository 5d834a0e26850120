package query

import "strings"

// Tokenize splits a raw query string into lexical tokens.
//
// The scanner keeps a buffer and an in-quotes flag. A double quote toggles
// the flag and is retained in the buffer, so the parser can still detect
// quoted phrases. While inside quotes every character is literal, including
// the structural ones. Outside quotes the characters '(', ')' and '~' flush
// the buffer and are then emitted as single-character tokens of their own;
// a space only flushes the buffer, so runs of spaces produce no tokens.
//
// Unbalanced quotes never fail: once an opening quote has no closing
// counterpart, the rest of the input is consumed literally into one token.
func Tokenize(input string) []string {
	var tokens []string
	var buf strings.Builder
	inQuotes := false

	flush := func() {
		tok := strings.TrimSpace(buf.String())
		buf.Reset()
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	for _, ch := range input {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			buf.WriteRune(ch)
		case inQuotes:
			buf.WriteRune(ch)
		case ch == '(' || ch == ')' || ch == '~':
			flush()
			tokens = append(tokens, string(ch))
		case ch == ' ':
			flush()
		default:
			buf.WriteRune(ch)
		}
	}
	flush()

	return tokens
}
