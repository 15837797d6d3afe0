// ABOUTME: Field schemas for list filtering and sorting
// ABOUTME: Each resource exposes a closed set of typed, filterable fields
package controller

import (
	"strings"
	"time"
)

// FieldKind selects the predicate applied to a filter value.
type FieldKind int

const (
	// FieldText matches by case-insensitive substring.
	FieldText FieldKind = iota
	// FieldCategory matches by exact value.
	FieldCategory
	// FieldDate matches by inclusive date-range containment.
	FieldDate
)

// Field describes one filterable/sortable field of a record type. String is
// set for text and category fields, Time for date fields.
type Field[T any] struct {
	Kind   FieldKind
	String func(T) string
	Time   func(T) time.Time
}

// Schema is the closed enumeration of known fields for one resource. Filter
// and sort keys outside the schema are silently ignored.
type Schema[T any] map[string]Field[T]

// matches reports whether one record satisfies a single filter entry.
// An empty or "all" value is no constraint.
func (f Field[T]) matches(item T, value string) bool {
	if value == "" || value == "all" {
		return true
	}

	switch f.Kind {
	case FieldText:
		return strings.Contains(strings.ToLower(f.String(item)), strings.ToLower(value))
	case FieldCategory:
		return f.String(item) == value
	case FieldDate:
		start, end, ok := parseDateRange(value)
		if !ok {
			return false
		}
		t := f.Time(item)
		if !start.IsZero() && t.Before(start) {
			return false
		}
		if !end.IsZero() && t.After(end) {
			return false
		}
		return true
	}
	return false
}

// less orders two records by this field, ascending.
func (f Field[T]) less(a, b T) bool {
	if f.Kind == FieldDate {
		return f.Time(a).Before(f.Time(b))
	}
	return strings.ToLower(f.String(a)) < strings.ToLower(f.String(b))
}

// parseDateRange parses "2026-01-01..2026-01-31" (either side may be empty)
// or a single day "2026-01-01". The end bound is extended to the last
// instant of its day so containment is inclusive.
func parseDateRange(value string) (start, end time.Time, ok bool) {
	const layout = "2006-01-02"

	from, to, found := strings.Cut(value, "..")
	if !found {
		to = from
	}

	if from != "" {
		t, err := time.Parse(layout, from)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		start = t
	}
	if to != "" {
		t, err := time.Parse(layout, to)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, true
}
