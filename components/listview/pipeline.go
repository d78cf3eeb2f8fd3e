package listview

import (
	"sort"
	"strings"
)

// DefaultPageSize is used by Query when PageSize is unset.
const DefaultPageSize = 10

// Pipeline filters, optionally sorts, then paginates. Run recomputes the page
// from scratch every time; nothing is retained between calls.
type Pipeline[T any] struct {
	Filter FilterSpec[T]
	Sort   *SortSpec[T]
	Page   PageRequest
}

// Run applies the pipeline to items.
func (p Pipeline[T]) Run(items []T) (PageResult[T], error) {
	filtered := Filter(items, p.Filter)
	if p.Sort != nil {
		filtered = SortEntries(filtered, *p.Sort)
	}
	return Paginate(filtered, p.Page)
}

// Query is the declarative form of a record list view: the inputs a table
// exposes (search box, category/status selects, sortable headers, pager).
type Query struct {
	Search       string            `json:"search,omitempty" yaml:"search,omitempty"`
	SearchFields []string          `json:"search_fields,omitempty" yaml:"search_fields,omitempty"`
	Filters      map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	SortBy       string            `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
	Direction    Direction         `json:"direction" yaml:"direction"`
	Page         int               `json:"page" yaml:"page"`
	PageSize     int               `json:"page_size" yaml:"page_size"`
	Mode         PageMode          `json:"-" yaml:"-"`
}

// FilterSpec builds the predicates for the query: text search first, then
// field filters in key order. Comma separated filter values match any of them.
func (q Query) FilterSpec() FilterSpec[Record] {
	spec := FilterSpec[Record]{MatchText(q.Search, q.SearchFields...)}
	keys := make([]string, 0, len(q.Filters))
	for key := range q.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := q.Filters[key]
		if strings.Contains(value, ",") {
			spec = append(spec, MatchAny(key, strings.Split(value, ",")...))
			continue
		}
		spec = append(spec, MatchField(key, value))
	}
	return spec
}

// Pipeline converts the query into a record pipeline.
func (q Query) Pipeline() Pipeline[Record] {
	size := q.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	p := Pipeline[Record]{
		Filter: q.FilterSpec(),
		Page:   PageRequest{Page: q.Page, Size: size, Mode: q.Mode},
	}
	if q.SortBy != "" {
		spec := ByField(q.SortBy, q.Direction)
		p.Sort = &spec
	}
	return p
}

// Compute runs q over records.
func Compute(records []Record, q Query) (PageResult[Record], error) {
	return q.Pipeline().Run(records)
}
