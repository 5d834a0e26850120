package query

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single term",
			input: "hello",
			want:  []string{"hello"},
		},
		{
			name:  "terms split on spaces",
			input: "hello world",
			want:  []string{"hello", "world"},
		},
		{
			name:  "consecutive spaces produce no empty tokens",
			input: "  a   b  ",
			want:  []string{"a", "b"},
		},
		{
			name:  "or separator is its own token",
			input: "a~b",
			want:  []string{"a", "~", "b"},
		},
		{
			name:  "brackets split without surrounding spaces",
			input: "(hello)",
			want:  []string{"(", "hello", ")"},
		},
		{
			name:  "nested group with terms",
			input: "a (b~c)",
			want:  []string{"a", "(", "b", "~", "c", ")"},
		},
		{
			name:  "quotes are retained in the token",
			input: `"a b"`,
			want:  []string{`"a b"`},
		},
		{
			name:  "structural characters inside quotes are literal",
			input: `"a (b~c) d"`,
			want:  []string{`"a (b~c) d"`},
		},
		{
			name:  "field with quoted term",
			input: `name:"bob jones"`,
			want:  []string{`name:"bob jones"`},
		},
		{
			name:  "unbalanced quote consumes the rest literally",
			input: `a "b (c d`,
			want:  []string{"a", `"b (c d`},
		},
		{
			name:  "exclusion prefix stays attached",
			input: "a -b",
			want:  []string{"a", "-b"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only spaces",
			input: "   ",
			want:  nil,
		},
		{
			name:  "adjacent brackets",
			input: "((a))",
			want:  []string{"(", "(", "a", ")", ")"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}
