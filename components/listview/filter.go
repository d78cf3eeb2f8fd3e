package listview

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Predicate reports whether an item should be kept.
type Predicate[T any] func(T) bool

// FilterSpec is an ordered list of predicates combined with logical AND.
// Nil entries are ignored.
type FilterSpec[T any] []Predicate[T]

// Match evaluates the predicates in order and stops at the first failure.
func (s FilterSpec[T]) Match(item T) bool {
	for _, predicate := range s {
		if predicate == nil {
			continue
		}
		if !predicate(item) {
			return false
		}
	}
	return true
}

// Filter returns the items accepted by spec in their original order. The
// input slice is never modified.
func Filter[T any](items []T, spec FilterSpec[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if spec.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Contains matches items where any of the extracted fields contains query,
// ignoring case. A blank query matches everything.
func Contains[T any](query string, fields ...func(T) string) Predicate[T] {
	needle := fold(strings.TrimSpace(query))
	if needle == "" {
		return matchAll[T]
	}
	return func(item T) bool {
		caser := cases.Fold()
		for _, field := range fields {
			if strings.Contains(caser.String(field(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Equals matches items whose extracted value equals want.
func Equals[T any, V comparable](get func(T) V, want V) Predicate[T] {
	return func(item T) bool {
		return get(item) == want
	}
}

// MatchText is the record form of Contains. Without paths every top-level
// scalar field of the record is searched.
func MatchText(query string, paths ...string) Predicate[Record] {
	if len(paths) == 0 {
		return Contains(query, topLevelText)
	}
	fields := make([]func(Record) string, len(paths))
	for i, path := range paths {
		fields[i] = fieldText(path)
	}
	return Contains(query, fields...)
}

// MatchField is a categorical/status filter. An empty want or "all" matches
// every record; otherwise values are compared case-insensitively.
func MatchField(path, want string) Predicate[Record] {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return matchAll[Record]
	}
	return func(r Record) bool {
		return strings.EqualFold(r.String(path), want)
	}
}

// MatchAny matches records whose field equals one of values (case-insensitive).
func MatchAny(path string, values ...string) Predicate[Record] {
	wanted := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			if strings.EqualFold(v, "all") {
				return matchAll[Record]
			}
			wanted = append(wanted, v)
		}
	}
	if len(wanted) == 0 {
		return matchAll[Record]
	}
	return func(r Record) bool {
		got := r.String(path)
		for _, v := range wanted {
			if strings.EqualFold(got, v) {
				return true
			}
		}
		return false
	}
}

// Between keeps records whose timestamp at path falls in [from, to]. A zero
// bound is open; records without a parseable timestamp fail when any bound is set.
func Between(path string, from, to time.Time) Predicate[Record] {
	if from.IsZero() && to.IsZero() {
		return matchAll[Record]
	}
	return func(r Record) bool {
		ts, ok := r.Time(path)
		if !ok {
			return false
		}
		if !from.IsZero() && ts.Before(from) {
			return false
		}
		if !to.IsZero() && ts.After(to) {
			return false
		}
		return true
	}
}

func matchAll[T any](T) bool { return true }

func fold(s string) string {
	return cases.Fold().String(s)
}

func fieldText(path string) func(Record) string {
	return func(r Record) string {
		return r.String(path)
	}
}

func topLevelText(r Record) string {
	var b strings.Builder
	for _, v := range r {
		switch v.(type) {
		case map[string]any, Record, []any, []map[string]any, nil:
			continue
		}
		b.WriteString(stringify(v))
		b.WriteByte('\x1f')
	}
	return b.String()
}
