package query

import "reflect"

// RecordOf converts an arbitrary value into a Record so plain structs can be
// matched without hand-building maps.
//
// Records and map[string]any values pass through unchanged. For a struct
// (or pointer to struct), every exported field whose value is a string or a
// slice of strings becomes a record property keyed by the field name; other
// field types are skipped because they can never match a leaf anyway. Any
// other value yields an empty record, which only an empty query matches.
func RecordOf(v any) Record {
	switch val := v.(type) {
	case Record:
		return val
	case map[string]any:
		return Record(val)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Record{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Record{}
	}

	rec := make(Record)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)
		switch {
		case fv.Kind() == reflect.String:
			rec[field.Name] = fv.String()
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String:
			out := make([]string, fv.Len())
			for j := 0; j < fv.Len(); j++ {
				out[j] = fv.Index(j).String()
			}
			rec[field.Name] = out
		}
	}
	return rec
}

// FilterRecords returns the records that satisfy the group, preserving
// input order.
func FilterRecords(g *Group, records []Record) []Record {
	matched := make([]Record, 0, len(records))
	for _, r := range records {
		if Matches(g, r) {
			matched = append(matched, r)
		}
	}
	return matched
}
