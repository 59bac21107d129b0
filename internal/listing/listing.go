// Package listing sorts and filters the small in-memory collections shown in list views.
package listing

import (
	"sort"
	"strings"
)

// Direction of a sort
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps "desc" (any case) to Desc and anything else to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Field extracts a sort key. Exactly one of Numeric or Text is set.
type Field[T any] struct {
	Numeric func(T) float64
	Text    func(T) string
}

// NumericField builds a numerically compared field.
func NumericField[T any](fn func(T) float64) Field[T] {
	return Field[T]{Numeric: fn}
}

// TextField builds a case-insensitively compared field.
func TextField[T any](fn func(T) string) Field[T] {
	return Field[T]{Text: fn}
}

// Schema describes the sortable fields of a type and its display name
type Schema[T any] struct {
	Fields map[string]Field[T]
	Name   func(T) string
}

// Keys returns the sortable field names in alphabetical order.
func (s Schema[T]) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for k := range s.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// compare returns -1, 0 or 1 for the primary key only.
func (f Field[T]) compare(a, b T) int {
	if f.Numeric != nil {
		x, y := f.Numeric(a), f.Numeric(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	if f.Text != nil {
		return strings.Compare(strings.ToLower(f.Text(a)), strings.ToLower(f.Text(b)))
	}
	return 0
}

// SortBy returns a sorted copy of items. Unknown keys sort by name. Ties on the
// primary key always fall back to case-folded name ascending, whatever the direction.
func SortBy[T any](items []T, schema Schema[T], key string, dir Direction) []T {
	out := append([]T(nil), items...)
	if out == nil {
		out = []T{}
	}

	nameOf := schema.Name
	if nameOf == nil {
		nameOf = func(T) string { return "" }
	}
	field, ok := schema.Fields[key]
	if !ok {
		field = TextField(nameOf)
	}

	sign := 1
	if dir == Desc {
		sign = -1
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := field.compare(out[i], out[j]); c != 0 {
			return c*sign < 0
		}
		return strings.ToLower(nameOf(out[i])) < strings.ToLower(nameOf(out[j]))
	})
	return out
}

// Predicate reports whether an item is kept
type Predicate[T any] func(T) bool

// FilterBy keeps items matching every predicate. Nil predicates are ignored.
func FilterBy[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, p := range preds {
			if p != nil && !p(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// IsAll reports whether a filter value means "no filter".
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "all")
}

// CategoryEquals matches items whose field equals value case-insensitively.
// "All" and empty values pass everything.
func CategoryEquals[T any](value string, field func(T) string) Predicate[T] {
	if IsAll(value) {
		return nil
	}
	want := strings.TrimSpace(value)
	return func(item T) bool {
		return strings.EqualFold(strings.TrimSpace(field(item)), want)
	}
}

// TextContains matches items where any field contains query case-insensitively.
// An empty query passes everything.
func TextContains[T any](query string, fields ...func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), q) {
				return true
			}
		}
		return false
	}
}
