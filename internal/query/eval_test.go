package query

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		record Record
		want   bool
	}{
		{
			name:   "and requires all terms",
			query:  "a b",
			record: Record{"text": "a b"},
			want:   true,
		},
		{
			name:   "and fails on missing term",
			query:  "a b",
			record: Record{"text": "a"},
			want:   false,
		},
		{
			name:   "or requires any term",
			query:  "a~b",
			record: Record{"text": "a"},
			want:   true,
		},
		{
			name:   "or fails when no term matches",
			query:  "a~b",
			record: Record{"text": "c"},
			want:   false,
		},
		{
			name:   "quoted phrase matches consecutively",
			query:  `"a b"`,
			record: Record{"text": "a b"},
			want:   true,
		},
		{
			name:   "quoted phrase does not match split words",
			query:  `"a b"`,
			record: Record{"text": "a x b"},
			want:   false,
		},
		{
			name:   "exclusion passes when absent",
			query:  "a -b",
			record: Record{"text": "a"},
			want:   true,
		},
		{
			name:   "exclusion fails when present",
			query:  "a -b",
			record: Record{"text": "a b"},
			want:   false,
		},
		{
			name:   "nested or inside and",
			query:  "a (b~c)",
			record: Record{"text": "a c"},
			want:   true,
		},
		{
			name:   "nested or needs one alternative",
			query:  "a (b~c)",
			record: Record{"text": "a"},
			want:   false,
		},
		{
			name:   "field exact is case-insensitive",
			query:  `name="bob"`,
			record: Record{"name": "Bob"},
			want:   true,
		},
		{
			name:   "field exact rejects a superstring",
			query:  `name="bob"`,
			record: Record{"name": "Bob Jones"},
			want:   false,
		},
		{
			name:   "field contains accepts a superstring",
			query:  "name:bob",
			record: Record{"name": "Bob Jones"},
			want:   true,
		},
		{
			name:   "field lookup is case-insensitive",
			query:  "Name:bob",
			record: Record{"name": "bob"},
			want:   true,
		},
		{
			name:   "fieldless scans all string properties",
			query:  "x",
			record: Record{"a": "has x", "b": []string{"y", "z"}},
			want:   true,
		},
		{
			name:   "fieldless fails when no property contains the term",
			query:  "x",
			record: Record{"a": "has none", "b": []string{"y", "z"}},
			want:   false,
		},
		{
			name:   "fieldless scans string slices",
			query:  "y",
			record: Record{"a": "nothing", "b": []string{"y", "z"}},
			want:   true,
		},
		{
			name:   "fieldless scans any-slices of strings",
			query:  "y",
			record: Record{"b": []any{"y", 3}},
			want:   true,
		},
		{
			name:   "field on string slice matches any element",
			query:  "tags:go",
			record: Record{"tags": []string{"go", "sql"}},
			want:   true,
		},
		{
			name:   "absent field never matches",
			query:  "name:bob",
			record: Record{"text": "bob"},
			want:   false,
		},
		{
			name:   "non-string values never match",
			query:  "42",
			record: Record{"n": 42, "ok": true},
			want:   false,
		},
		{
			name:   "empty query matches everything",
			query:  "",
			record: Record{"text": "whatever"},
			want:   true,
		},
		{
			name:   "empty record fails any term",
			query:  "a",
			record: Record{},
			want:   false,
		},
		{
			name:   "exclusion alone matches until triggered",
			query:  "-b",
			record: Record{"text": "a"},
			want:   true,
		},
		{
			name:   "exclusion alone fails when triggered",
			query:  "-b",
			record: Record{"text": "b"},
			want:   false,
		},
		{
			name:   "exclusions stay and-of-negations in or groups",
			query:  "a~c -b",
			record: Record{"text": "a b"},
			want:   false,
		},
		{
			name:   "term comparison is case-insensitive",
			query:  "HELLO",
			record: Record{"text": "say hello"},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Parse(tt.query)
			if got := Matches(g, tt.record); got != tt.want {
				t.Errorf("Parse(%q).Matches(%v) = %v, want %v", tt.query, tt.record, got, tt.want)
			}
		})
	}
}

func TestFilterRecords(t *testing.T) {
	records := []Record{
		{"name": "Alice", "role": "admin"},
		{"name": "Bob", "role": "user"},
		{"name": "Carol", "role": "admin"},
	}

	g := Parse("role=admin")
	got := FilterRecords(g, records)
	if len(got) != 2 {
		t.Fatalf("matched %d records, want 2", len(got))
	}
	if got[0]["name"] != "Alice" || got[1]["name"] != "Carol" {
		t.Errorf("input order not preserved: %v", got)
	}
}
