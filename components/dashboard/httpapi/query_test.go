package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

func TestParseListValues(t *testing.T) {
	values, err := url.ParseQuery("search=okafor&search_fields=customer.name,+id&sort_by=total&direction=DESC&page=2&page_size=25&filter.status=delivered,pending&filter.driver.id=d-1&filter.=x")
	require.NoError(t, err)

	q, err := ParseListValues(values)
	require.NoError(t, err)
	assert.Equal(t, "okafor", q.Search)
	assert.Equal(t, []string{"customer.name", "id"}, q.SearchFields)
	assert.Equal(t, "total", q.SortBy)
	assert.Equal(t, listview.Descending, q.Direction)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 25, q.PageSize)
	assert.Equal(t, map[string]string{"status": "delivered,pending", "driver.id": "d-1"}, q.Filters)
	assert.Equal(t, listview.ClampPage, q.Mode)
}

func TestParseListQueryKnownFields(t *testing.T) {
	params := map[string]string{"sort": "created_at", "filter.status": "paid", "filter.extra": "ignored", "strict": "1"}
	q, err := ParseListQuery(func(name string) string { return params[name] }, DefaultFilterFields)
	require.NoError(t, err)
	assert.Equal(t, "created_at", q.SortBy)
	assert.Equal(t, map[string]string{"status": "paid"}, q.Filters)
	assert.Equal(t, listview.StrictPage, q.Mode)
	assert.Zero(t, q.PageSize)

	_, err = ParseListQuery(func(name string) string {
		if name == "page_size" {
			return "ten"
		}
		return ""
	}, nil)
	assert.ErrorIs(t, err, dashboard.ErrInvalidRequest)
}

func TestViewerFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderViewerID, " ops ")
	req.Header.Set(HeaderViewerRoles, "admin,,finance")
	req.Header.Set("Accept-Language", "fr;q=0.5, es-MX, en;q=0.8")

	viewer := ViewerFromRequest(req)
	assert.Equal(t, "ops", viewer.UserID)
	assert.Equal(t, []string{"admin", "finance"}, viewer.Roles)
	assert.Equal(t, "es-MX", viewer.Locale)

	stored := dashboard.ViewerContext{UserID: "from-ctx", Locale: "pt"}
	req = httptest.NewRequest(http.MethodGet, "/?locale=de", nil).WithContext(dashboard.ContextWithViewer(req.Context(), stored))
	assert.Equal(t, stored, ViewerFromRequest(req))

	req = httptest.NewRequest(http.MethodGet, "/?locale=de", nil)
	assert.Equal(t, "de", ViewerFromRequest(req).Locale)
	assert.Empty(t, PreferredLanguage(""))
}

func TestFilterFieldsFromKeys(t *testing.T) {
	keys := slices.Values([]string{"page", "filter.status", "filter.", "filter.driver.id", "sort"})
	assert.Equal(t, []string{"driver.id", "status"}, FilterFields(keys))
	assert.Empty(t, FilterFields(slices.Values([]string{"page"})))
}
