package listview

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Direction controls sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending" in any case.
// Anything else is ascending.
func ParseDirection(value string) Direction {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "desc", "descending", "-":
		return Descending
	default:
		return Ascending
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// MarshalText encodes the direction as "asc" or "desc".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes "asc"/"desc" (see ParseDirection).
func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}

// SortSpec orders items with Compare, flipped when Direction is Descending.
type SortSpec[T any] struct {
	Compare   func(a, b T) int
	Direction Direction
}

// ByKey sorts by an ordered key extracted from each item.
func ByKey[T any, V cmp.Ordered](key func(T) V, dir Direction) SortSpec[T] {
	return SortSpec[T]{
		Compare: func(a, b T) int {
			return cmp.Compare(key(a), key(b))
		},
		Direction: dir,
	}
}

// ByField sorts records by the value at path. Numbers compare numerically,
// timestamps chronologically, everything else as case-folded text. Records
// missing the field sort before those that have it.
func ByField(path string, dir Direction) SortSpec[Record] {
	return SortSpec[Record]{
		Compare: func(a, b Record) int {
			av, aok := a.Value(path)
			bv, bok := b.Value(path)
			return compareValues(av, aok && av != nil, bv, bok && bv != nil)
		},
		Direction: dir,
	}
}

// Then returns a spec that falls back to next when s reports a tie.
func (s SortSpec[T]) Then(next SortSpec[T]) SortSpec[T] {
	return SortSpec[T]{
		Compare: func(a, b T) int {
			if c := s.compare(a, b); c != 0 {
				return c
			}
			return next.compare(a, b)
		},
		Direction: Ascending,
	}
}

func (s SortSpec[T]) compare(a, b T) int {
	if s.Compare == nil {
		return 0
	}
	c := s.Compare(a, b)
	if s.Direction == Descending {
		return -c
	}
	return c
}

// SortEntries returns a stably sorted copy of items; equal items keep their
// relative order.
func SortEntries[T any](items []T, spec SortSpec[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	if spec.Compare == nil {
		return out
	}
	slices.SortStableFunc(out, spec.compare)
	return out
}

// TopN sorts items and keeps the first n. n == 0 yields an empty slice.
func TopN[T any](items []T, n int, spec SortSpec[T]) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}
	sorted := SortEntries(items, spec)
	if n < len(sorted) {
		sorted = sorted[:n:n]
	}
	return sorted, nil
}

func compareValues(a any, aok bool, b any, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	switch ka {
	case kindNumber:
		af, _ := toFloat(a)
		bf, _ := toFloat(b)
		return cmp.Compare(af, bf)
	case kindTime:
		at, _ := toTime(a)
		bt, _ := toTime(b)
		return at.Compare(bt)
	}
	return strings.Compare(fold(stringify(a)), fold(stringify(b)))
}

// Values of different kinds order numbers first, then timestamps, then text,
// so mixed columns (SKUs, ids) still sort into a single total order.
const (
	kindNumber = iota
	kindTime
	kindText
)

func kindOf(v any) int {
	if _, ok := toFloat(v); ok {
		return kindNumber
	}
	if _, ok := toTime(v); ok {
		return kindTime
	}
	return kindText
}
