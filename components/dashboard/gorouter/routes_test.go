package gorouter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
	cfg := Config[struct{}]{Controller: dashboard.NewController(dashboard.ControllerOptions{})}
	if err := Register(cfg); err == nil || err.Error() != "gorouter: router is required" {
		t.Fatalf("expected router error, got %v", err)
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Collection: "/lists/:name"})
	if routes.Collection != "/lists/:name" {
		t.Fatalf("custom collection path overwritten: %s", routes.Collection)
	}
	checks := []struct{ got, want string }{
		{routes.HTML, "/dashboard"},
		{routes.Layout, "/dashboard/_layout"},
		{routes.Preferences, "/dashboard/preferences"},
		{routes.Reorder, "/dashboard/widgets/reorder"},
		{routes.Visibility, "/dashboard/widgets/:id/visibility"},
		{routes.Refresh, "/dashboard/refresh"},
		{routes.WebSocket, "/dashboard/ws"},
	}
	for _, check := range checks {
		if check.got != check.want {
			t.Fatalf("expected %s, got %s", check.want, check.got)
		}
	}
}

func TestRegisterHTMLRoute(t *testing.T) {
	env := newRouteEnv(t, nil)

	ctx := newMockContext()
	if err := env.call(t, "GET:/admin/dashboard", ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if string(ctx.body) != "<html>dashboard</html>" {
		t.Fatalf("unexpected body %q", ctx.body)
	}
	if ctx.headers["Content-Type"] != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ctx.headers["Content-Type"])
	}
	if _, ok := env.mock.ws["/admin/dashboard/ws"]; !ok {
		t.Fatalf("expected websocket route to be registered")
	}
}

func TestCollectionRouteFiltersAndPages(t *testing.T) {
	env := newRouteEnv(t, nil)

	ctx := newMockContext()
	ctx.params["name"] = dashboard.CollectionOrders
	ctx.query = map[string]string{
		"filter.status":    "delivered",
		"filter.driver.id": "d-1",
		"sort":             "total",
		"direction":        "desc",
		"page_size":        "1",
	}
	if err := env.call(t, "GET:/admin/dashboard/collections/:name", ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.status, ctx.body)
	}

	var page struct {
		Page struct {
			Items      []map[string]any `json:"items"`
			TotalItems int              `json:"total_items"`
			TotalPages int              `json:"total_pages"`
		} `json:"page"`
	}
	if err := json.Unmarshal(ctx.body, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// delivered orders for d-1: o-1 and o-5
	if page.Page.TotalItems != 2 || page.Page.TotalPages != 2 {
		t.Fatalf("unexpected totals %+v", page.Page)
	}
	if got := page.Page.Items[0]["id"]; got != "o-5" {
		t.Fatalf("expected o-5 first, got %v", got)
	}
}

func TestCollectionRouteHonorsFilterAllowList(t *testing.T) {
	env := newRouteEnv(t, []string{"status"})

	ctx := newMockContext()
	ctx.params["name"] = dashboard.CollectionOrders
	ctx.query = map[string]string{"filter.status": "delivered", "filter.driver.id": "d-1"}
	if err := env.call(t, "GET:/admin/dashboard/collections/:name", ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var page struct {
		Page struct {
			TotalItems int `json:"total_items"`
		} `json:"page"`
	}
	if err := json.Unmarshal(ctx.body, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Page.TotalItems != 3 {
		t.Fatalf("driver filter should be ignored, got %d items", page.Page.TotalItems)
	}
}

func TestCollectionRouteMapsErrors(t *testing.T) {
	env := newRouteEnv(t, nil)

	cases := []struct {
		name   string
		query  map[string]string
		status int
	}{
		{"secrets", nil, http.StatusNotFound},
		{dashboard.CollectionOrders, map[string]string{"page": "two"}, http.StatusBadRequest},
		{dashboard.CollectionOrders, map[string]string{"page_size": "-1"}, http.StatusBadRequest},
		{dashboard.CollectionOrders, map[string]string{"page": "0", "strict": "true"}, http.StatusBadRequest},
		{dashboard.CollectionOrders, map[string]string{"page": "99"}, http.StatusOK},
	}
	for _, tc := range cases {
		ctx := newMockContext()
		ctx.params["name"] = tc.name
		ctx.query = tc.query
		if err := env.call(t, "GET:/admin/dashboard/collections/:name", ctx); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if ctx.status != tc.status {
			t.Fatalf("%s %v: expected %d, got %d (%s)", tc.name, tc.query, tc.status, ctx.status, ctx.body)
		}
	}
}

func TestPreferencesRoutesUseResolvedViewer(t *testing.T) {
	env := newRouteEnv(t, nil)

	post := newMockContext()
	post.body = []byte(`{"viewer": {"user_id": "someone-else"}, "page_size": 3, "hidden_widget_ids": ["w-1"]}`)
	if err := env.call(t, "POST:/admin/dashboard/preferences", post); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if post.status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", post.status, post.body)
	}

	other, err := env.service.Preferences(context.Background(), dashboard.ViewerContext{UserID: "someone-else"})
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if other.PageSize != 0 {
		t.Fatalf("payload viewer must be ignored, got %+v", other)
	}

	get := newMockContext()
	if err := env.call(t, "GET:/admin/dashboard/preferences", get); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var prefs dashboard.ViewerPreferences
	if err := json.Unmarshal(get.body, &prefs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if prefs.PageSize != 3 || !prefs.HiddenWidgets["w-1"] {
		t.Fatalf("unexpected preferences %+v", prefs)
	}

	bad := newMockContext()
	bad.body = []byte(`{`)
	if err := env.call(t, "POST:/admin/dashboard/preferences", bad); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if bad.status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json, got %d", bad.status)
	}
}

func TestVisibilityRouteTogglesWidget(t *testing.T) {
	env := newRouteEnv(t, nil)

	ctx := newMockContext()
	ctx.params["id"] = "sales-chart"
	ctx.body = []byte(`{"widget_id": "ignored", "hidden": true}`)
	if err := env.call(t, "POST:/admin/dashboard/widgets/:id/visibility", ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.status, ctx.body)
	}

	prefs, err := env.service.Preferences(context.Background(), dashboard.ViewerContext{UserID: "user-1"})
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if !prefs.HiddenWidgets["sales-chart"] || prefs.HiddenWidgets["ignored"] {
		t.Fatalf("expected path id to be hidden, got %+v", prefs.HiddenWidgets)
	}
}

func TestRefreshRouteBroadcasts(t *testing.T) {
	env := newRouteEnv(t, nil)
	events, cancel := env.broadcast.Subscribe()
	defer cancel()

	ctx := newMockContext()
	ctx.body = []byte(`{"collection": "orders", "reason": "order.created"}`)
	if err := env.call(t, "POST:/admin/dashboard/refresh", ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", ctx.status, ctx.body)
	}
	select {
	case event := <-events:
		if event.Collection != dashboard.CollectionOrders || event.Reason != "order.created" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected refresh event")
	}

	empty := newMockContext()
	empty.body = []byte(`{}`)
	if err := env.call(t, "POST:/admin/dashboard/refresh", empty); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if empty.status != http.StatusBadRequest {
		t.Fatalf("expected 400 without collection, got %d", empty.status)
	}
}

func TestViewerResolverFallsBackToHeaders(t *testing.T) {
	ctx := newMockContext()
	ctx.locals["user_id"] = "user-9"
	ctx.locals["roles"] = []string{"ops"}
	ctx.headers["Accept-Language"] = "fr;q=0.5, es-MX"

	viewer := defaultViewerResolver(ctx)
	if viewer.UserID != "user-9" || len(viewer.Roles) != 1 || viewer.Locale != "es-MX" {
		t.Fatalf("unexpected viewer %+v", viewer)
	}

	ctx.query = map[string]string{"locale": "de"}
	if got := defaultViewerResolver(ctx).Locale; got != "de" {
		t.Fatalf("expected query locale, got %q", got)
	}
}

// --- Test helpers ---

func routeOrders() []listview.Record {
	statuses := []string{"delivered", "pending", "delivered", "cancelled", "delivered"}
	drivers := []string{"d-1", "d-2", "d-2", "d-1", "d-1"}
	out := make([]listview.Record, len(statuses))
	for i, status := range statuses {
		out[i] = listview.Record{
			"id":     fmt.Sprintf("o-%d", i+1),
			"status": status,
			"total":  float64(10 * (i + 1)),
			"driver": map[string]any{"id": drivers[i]},
		}
	}
	return out
}

type routeEnv struct {
	mock      *mockRouter
	service   *dashboard.Service
	broadcast *dashboard.BroadcastHook
}

func newRouteEnv(t *testing.T, filterFields []string) *routeEnv {
	t.Helper()
	source := dashboard.RecordSourceFunc(func(_ context.Context, collection string) ([]listview.Record, error) {
		if collection == dashboard.CollectionOrders {
			return routeOrders(), nil
		}
		return []listview.Record{}, nil
	})
	broadcast := dashboard.NewBroadcastHook()
	svc := dashboard.NewService(dashboard.Options{Source: source, RefreshHook: broadcast})
	mock := newMockRouter()
	err := Register(Config[struct{}]{
		Router:       mock,
		Controller:   dashboard.NewController(dashboard.ControllerOptions{Service: svc, Renderer: stubRenderer{}}),
		API:          httpapi.NewServiceExecutor(svc, nil),
		Broadcast:    broadcast,
		FilterFields: filterFields,
		ViewerResolver: func(router.Context) dashboard.ViewerContext {
			return dashboard.ViewerContext{UserID: "user-1", Roles: []string{"admin"}}
		},
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	return &routeEnv{mock: mock, service: svc, broadcast: broadcast}
}

func (e *routeEnv) call(t *testing.T, key string, ctx *mockContext) error {
	t.Helper()
	h, ok := e.mock.routes[key]
	if !ok {
		t.Fatalf("route %s not registered", key)
	}
	return h(ctx)
}

// mockRouter records handlers by "METHOD:path". Methods Register does not
// call are left to the embedded interface.
type mockRouter struct {
	router.Router[struct{}]
	prefix string
	routes map[string]router.HandlerFunc
	ws     map[string]func(router.WebSocketContext) error
}

func newMockRouter() *mockRouter {
	return &mockRouter{
		routes: map[string]router.HandlerFunc{},
		ws:     map[string]func(router.WebSocketContext) error{},
	}
}

func (m *mockRouter) Group(prefix string) router.Router[struct{}] {
	return &mockRouter{
		prefix: m.prefix + prefix,
		routes: m.routes,
		ws:     m.ws,
	}
}

func (m *mockRouter) record(method, path string, handler router.HandlerFunc) {
	m.routes[method+":"+m.prefix+path] = handler
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, _ ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.GET), path, handler)
	return nil
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, _ ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.POST), path, handler)
	return nil
}

func (m *mockRouter) WebSocket(path string, _ router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	m.ws[m.prefix+path] = handler
	return nil
}

// baseContext keeps the embedded field name clear of the Context method.
type baseContext = router.Context

type mockContext struct {
	baseContext
	ctx     context.Context
	headers map[string]string
	query   map[string]string
	body    []byte
	locals  map[any]any
	params  map[string]string
	status  int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		locals:  map[any]any{},
		params:  map[string]string{},
	}
}

func (m *mockContext) Context() context.Context { return m.ctx }

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Header(k string) string { return m.headers[k] }

func (m *mockContext) Send(b []byte) error {
	m.status = http.StatusOK
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.body }

func (m *mockContext) Query(name string, defaultValue ...string) string {
	if v, ok := m.query[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Queries() map[string]string {
	out := make(map[string]string, len(m.query))
	for k, v := range m.query {
		out[k] = v
	}
	return out
}

func (m *mockContext) Param(name string, defaultValue ...string) string {
	if v, ok := m.params[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Locals(key any, value ...any) any {
	if len(value) == 0 {
		return m.locals[key]
	}
	m.locals[key] = value[0]
	return value[0]
}

type stubRenderer struct{}

func (stubRenderer) Render(name string, _ any, out ...io.Writer) (string, error) {
	if len(out) > 0 && out[0] != nil {
		_, _ = io.WriteString(out[0], "<html>"+name+"</html>")
	}
	return name, nil
}
