package httpapi

import (
	"fmt"
	"iter"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// FilterPrefix marks query parameters that filter a field, e.g.
// filter.status=delivered or filter.driver.id=d-1.
const FilterPrefix = "filter."

// DefaultFilterFields is a convenience allow-list for hosts that want to
// restrict which fields can be filtered.
var DefaultFilterFields = []string{"status", "payment_status", "category", "driver.id", "customer.id"}

// QueryGetter returns a single query parameter ("" when absent).
type QueryGetter func(name string) string

// ParseListQuery builds a list query from request parameters:
// search, search_fields (comma separated), sort (or sort_by), direction,
// page, page_size, strict and filter.<field>.
func ParseListQuery(get QueryGetter, filterFields []string) (listview.Query, error) {
	q := listview.Query{
		Search:    strings.TrimSpace(get("search")),
		SortBy:    strings.TrimSpace(get("sort")),
		Direction: listview.ParseDirection(get("direction")),
	}
	if q.SortBy == "" {
		q.SortBy = strings.TrimSpace(get("sort_by"))
	}
	if fields := strings.TrimSpace(get("search_fields")); fields != "" {
		for _, field := range strings.Split(fields, ",") {
			if field = strings.TrimSpace(field); field != "" {
				q.SearchFields = append(q.SearchFields, field)
			}
		}
	}
	var err error
	if q.Page, err = intParam(get, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(get, "page_size"); err != nil {
		return q, err
	}
	if strict, _ := strconv.ParseBool(get("strict")); strict {
		q.Mode = listview.StrictPage
	}
	for _, field := range filterFields {
		if value := strings.TrimSpace(get(FilterPrefix + field)); value != "" {
			if q.Filters == nil {
				q.Filters = map[string]string{}
			}
			q.Filters[field] = value
		}
	}
	return q, nil
}

// ParseListValues is ParseListQuery over a full query string; every
// filter.<field> parameter is honored.
func ParseListValues(values url.Values) (listview.Query, error) {
	return ParseListQuery(values.Get, FilterFields(maps.Keys(values)))
}

// FilterFields returns the fields named by filter.<field> parameter keys,
// sorted.
func FilterFields(keys iter.Seq[string]) []string {
	var fields []string
	for key := range keys {
		if field, ok := strings.CutPrefix(key, FilterPrefix); ok && field != "" {
			fields = append(fields, field)
		}
	}
	slices.Sort(fields)
	return fields
}

func intParam(get QueryGetter, name string) (int, error) {
	raw := strings.TrimSpace(get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", dashboard.ErrInvalidRequest, name)
	}
	return n, nil
}
