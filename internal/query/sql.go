package query

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// SQL compilation: a filter tree is translated into one parameterized WHERE
// condition so a query can run inside the database instead of filtering
// rows in Go code. Comparisons are lowered on both sides, which keeps the
// semantics identical to in-memory evaluation and works on both sqlite and
// postgres without dialect-specific operators like ILIKE.

// SQLOptions controls how a filter tree is compiled.
type SQLOptions struct {
	// Columns maps lower-cased field names to database column names. Fields
	// without a mapping fall back to the snake_case form of the field name.
	Columns map[string]string

	// SearchColumns lists the columns scanned by fieldless leaves; such a
	// leaf compiles to an OR across all of them. With no search columns a
	// fieldless leaf matches nothing, mirroring in-memory evaluation of a
	// record without string properties.
	SearchColumns []string
}

// columnFor resolves a filter field to a quoted column reference.
func (o SQLOptions) columnFor(field string) string {
	if col, ok := o.Columns[fold(field)]; ok {
		return quoteIdent(col)
	}
	return quoteIdent(toSnakeCase(field))
}

// ApplySQL appends the group's WHERE condition to the GORM query. An empty
// group adds no condition.
func ApplySQL(db *gorm.DB, g *Group, opts SQLOptions) *gorm.DB {
	cond, args := BuildSQLCondition(g, opts)
	if cond == "" {
		return db
	}
	return db.Where(cond, args...)
}

// BuildSQLCondition renders the group as one SQL boolean expression with
// '?' placeholders and the matching argument list. The empty string means
// the group imposes no condition (it matches everything).
func BuildSQLCondition(g *Group, opts SQLOptions) (string, []any) {
	var args []any

	sep := " AND "
	if g.Mode == ModeOr {
		sep = " OR "
	}
	var includes []string
	for _, it := range g.Include {
		cond, a := itemCondition(it, opts)
		includes = append(includes, cond)
		args = append(args, a...)
	}

	cond := strings.Join(includes, sep)
	if len(includes) > 1 {
		cond = "(" + cond + ")"
	}

	for _, it := range g.Exclude {
		sub, a := itemCondition(it, opts)
		neg := "NOT " + parenthesize(sub)
		if cond == "" {
			cond = neg
		} else {
			cond += " AND " + neg
		}
		args = append(args, a...)
	}

	return cond, args
}

func itemCondition(it Item, opts SQLOptions) (string, []any) {
	switch v := it.(type) {
	case *Filter:
		return leafCondition(v, opts)
	case *Group:
		cond, args := BuildSQLCondition(v, opts)
		if cond == "" {
			// Empty subgroup: vacuously true.
			return "1 = 1", nil
		}
		return parenthesize(cond), args
	}
	return "1 = 1", nil
}

func leafCondition(f *Filter, opts SQLOptions) (string, []any) {
	var cols []string
	if f.Field != "" {
		cols = []string{opts.columnFor(f.Field)}
	} else {
		for _, col := range opts.SearchColumns {
			cols = append(cols, quoteIdent(col))
		}
	}
	if len(cols) == 0 {
		return "1 = 0", nil
	}

	var parts []string
	var args []any
	for _, col := range cols {
		if f.Operator == OpExact {
			parts = append(parts, "LOWER("+col+") = ?")
			args = append(args, fold(f.Term))
		} else {
			parts = append(parts, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, "%"+escapeLike(fold(f.Term))+"%")
		}
	}
	if len(parts) == 1 {
		return parts[0], args
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func parenthesize(cond string) string {
	if strings.HasPrefix(cond, "(") && strings.HasSuffix(cond, ")") {
		return cond
	}
	return "(" + cond + ")"
}

// quoteIdent quotes identifiers portably: double quotes work for both
// sqlite and postgres. Embedded double quotes are escaped by doubling them
// per the SQL standard.
func quoteIdent(ident string) string {
	if ident == "" {
		return ident
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// escapeLike escapes the LIKE wildcard characters in a term so the term is
// matched literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// toSnakeCase converts a field name like "CreatedAt" to "created_at".
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
