package listview

// AggregationRule groups items by key and folds each group into an accumulator.
// GroupKey returning false marks an item as belonging to no group; such items
// are skipped. Init must return a fresh accumulator on every call.
type AggregationRule[T any, K comparable, A any] struct {
	GroupKey func(T) (K, bool)
	Reduce   func(A, T) A
	Init     func() A
}

// Entry is a single key/accumulator pair produced by Aggregate.
type Entry[K comparable, A any] struct {
	Key   K `json:"key"`
	Value A `json:"value"`
}

// Groups holds aggregated accumulators in first-seen key order.
type Groups[K comparable, A any] struct {
	keys   []K
	values map[K]A
}

// Aggregate folds items into per-key accumulators. A rule without GroupKey or
// Reduce yields empty groups.
func Aggregate[T any, K comparable, A any](items []T, rule AggregationRule[T, K, A]) *Groups[K, A] {
	groups := &Groups[K, A]{values: make(map[K]A)}
	if rule.GroupKey == nil || rule.Reduce == nil {
		return groups
	}
	for _, item := range items {
		key, ok := rule.GroupKey(item)
		if !ok {
			continue
		}
		acc, seen := groups.values[key]
		if !seen {
			if rule.Init != nil {
				acc = rule.Init()
			}
			groups.keys = append(groups.keys, key)
		}
		groups.values[key] = rule.Reduce(acc, item)
	}
	return groups
}

// Len returns the number of groups.
func (g *Groups[K, A]) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Get returns the accumulator stored for key.
func (g *Groups[K, A]) Get(key K) (A, bool) {
	var zero A
	if g == nil {
		return zero, false
	}
	acc, ok := g.values[key]
	return acc, ok
}

// Keys returns group keys in first-seen order.
func (g *Groups[K, A]) Keys() []K {
	if g == nil {
		return nil
	}
	return append([]K(nil), g.keys...)
}

// Entries returns the groups as a slice in first-seen order, ready for
// SortEntries/TopN.
func (g *Groups[K, A]) Entries() []Entry[K, A] {
	if g == nil {
		return []Entry[K, A]{}
	}
	out := make([]Entry[K, A], len(g.keys))
	for i, key := range g.keys {
		out[i] = Entry[K, A]{Key: key, Value: g.values[key]}
	}
	return out
}

// Map returns a copy of the key → accumulator mapping.
func (g *Groups[K, A]) Map() map[K]A {
	out := make(map[K]A, g.Len())
	if g == nil {
		return out
	}
	for key, acc := range g.values {
		out[key] = acc
	}
	return out
}

// Totals is a counting/summing accumulator for records.
type Totals struct {
	Count int                `json:"count"`
	Sums  map[string]float64 `json:"sums"`
}

// NewTotals returns an empty accumulator with its own sums map.
func NewTotals() Totals {
	return Totals{Sums: map[string]float64{}}
}

// Sum returns the running sum for field (0 when never seen).
func (t Totals) Sum(field string) float64 {
	return t.Sums[field]
}

// GroupByField keys records by the text of path. Missing, empty, false and
// zero values are treated as "no group".
func GroupByField(path string) func(Record) (string, bool) {
	return func(r Record) (string, bool) {
		v, ok := r.Value(path)
		if !ok || isFalsy(v) {
			return "", false
		}
		return stringify(v), true
	}
}

// SumFields counts records and adds the numeric value of each path. Missing
// fields contribute zero.
func SumFields(paths ...string) func(Totals, Record) Totals {
	return func(acc Totals, r Record) Totals {
		if acc.Sums == nil {
			acc.Sums = make(map[string]float64, len(paths))
		}
		acc.Count++
		for _, path := range paths {
			acc.Sums[path] += r.Number(path)
		}
		return acc
	}
}

// TotalsBy builds the common "group by field, count and sum" rule.
func TotalsBy(groupPath string, sumPaths ...string) AggregationRule[Record, string, Totals] {
	return AggregationRule[Record, string, Totals]{
		GroupKey: GroupByField(groupPath),
		Reduce:   SumFields(sumPaths...),
		Init:     NewTotals,
	}
}
