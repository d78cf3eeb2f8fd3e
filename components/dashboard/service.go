package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Layout          *LayoutManifest
	Source          RecordSource
	Authorizer      Authorizer
	PreferenceStore PreferenceStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Statuses        *StatusCatalog
	DefaultPageSize int
	Now             func() time.Time
}

// Service resolves dashboard layouts and serves paginated collection lists.
type Service struct {
	opts        Options
	collections map[string]struct{}
}

// NewService builds a Service instance with safe defaults. Providers must be
// registered on opts.Providers by the caller (see NewCommerceService).
func NewService(opts Options) *Service {
	if opts.Layout == nil {
		opts.Layout = DefaultLayoutManifest()
	}
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		reg, err := NewRegistry()
		if err != nil {
			reg = &Registry{definitions: map[string]WidgetDefinition{}, providers: map[string]Provider{}}
		}
		opts.Providers = reg
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	if opts.Statuses == nil {
		opts.Statuses = DefaultStatusCatalog()
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = listview.DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	var collections map[string]struct{}
	if len(opts.Layout.Collections) > 0 {
		collections = make(map[string]struct{}, len(opts.Layout.Collections))
		for _, c := range opts.Layout.Collections {
			collections[c] = struct{}{}
		}
	}
	return &Service{opts: opts, collections: collections}
}

// Areas returns the area codes of the active layout manifest.
func (s *Service) Areas() []string {
	return s.opts.Layout.AreaCodes()
}

// Collections returns the collections served by ListCollection, sorted. An
// empty result means every collection is allowed.
func (s *Service) Collections() []string {
	out := make([]string, 0, len(s.collections))
	for c := range s.collections {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// ConfigureLayout resolves widgets for each dashboard area respecting
// preferences and authorization. Provider failures are recorded through
// telemetry and leave the widget without data; they never fail the layout.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return Layout{}, fmt.Errorf("dashboard: load preferences: %w", err)
	}
	layout := Layout{Areas: make(map[string][]WidgetInstance)}
	for _, area := range s.Areas() {
		widgets := s.filterAuthorized(ctx, viewer, s.opts.Layout.Instances(area))
		widgets = applyOrderOverride(widgets, prefs.AreaOrder[area])
		widgets = applyHiddenFilter(widgets, prefs.HiddenWidgets)
		layout.Areas[area] = s.attachProviderData(ctx, viewer, widgets)
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
	})
	return layout, nil
}

// ResolveArea retrieves a single area layout for the viewer.
func (s *Service) ResolveArea(ctx context.Context, viewer ViewerContext, areaCode string) (ResolvedArea, error) {
	if areaCode == "" {
		return ResolvedArea{}, fmt.Errorf("%w: area code is required", ErrInvalidRequest)
	}
	if !slices.Contains(s.Areas(), areaCode) {
		return ResolvedArea{}, fmt.Errorf("%w: unknown area %s", ErrInvalidRequest, areaCode)
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return ResolvedArea{}, fmt.Errorf("dashboard: load preferences: %w", err)
	}
	widgets := s.filterAuthorized(ctx, viewer, s.opts.Layout.Instances(areaCode))
	widgets = applyOrderOverride(widgets, prefs.AreaOrder[areaCode])
	widgets = applyHiddenFilter(widgets, prefs.HiddenWidgets)
	s.recordTelemetry(ctx, "dashboard.area.resolve", map[string]any{
		"viewer":    viewer.UserID,
		"area_code": areaCode,
	})
	return ResolvedArea{AreaCode: areaCode, Widgets: s.attachProviderData(ctx, viewer, widgets)}, nil
}

// ListCollection returns one page of a collection. A zero page size falls
// back to the viewer preference, then to the service default. Page sizes
// above MaxPageSize are capped.
func (s *Service) ListCollection(ctx context.Context, req ListRequest) (ListPage, error) {
	req.Collection = strings.TrimSpace(req.Collection)
	if req.Collection == "" {
		return ListPage{}, fmt.Errorf("%w: collection is required", ErrInvalidRequest)
	}
	if s.collections != nil {
		if _, ok := s.collections[req.Collection]; !ok {
			return ListPage{}, fmt.Errorf("%w: %s", ErrUnknownCollection, req.Collection)
		}
	}
	if req.Query.PageSize == 0 {
		prefs, err := s.opts.PreferenceStore.Preferences(ctx, req.Viewer)
		if err != nil {
			return ListPage{}, fmt.Errorf("dashboard: load preferences: %w", err)
		}
		req.Query.PageSize = prefs.PageSize
		if req.Query.PageSize == 0 {
			req.Query.PageSize = s.opts.DefaultPageSize
		}
	}
	req.Query.PageSize = min(req.Query.PageSize, MaxPageSize)
	page, err := listRecords(ctx, s.opts.Source, s.opts.Statuses, req)
	if err != nil {
		s.recordTelemetry(ctx, "dashboard.collection.error", map[string]any{
			"collection": req.Collection,
			"error":      err.Error(),
		})
		return ListPage{}, err
	}
	s.recordTelemetry(ctx, "dashboard.collection.list", map[string]any{
		"viewer":      req.Viewer.UserID,
		"collection":  req.Collection,
		"page":        page.Page.CurrentPage,
		"total_items": page.Page.TotalItems,
	})
	return page, nil
}

// Preferences returns the stored preferences for viewer.
func (s *Service) Preferences(ctx context.Context, viewer ViewerContext) (ViewerPreferences, error) {
	return s.opts.PreferenceStore.Preferences(ctx, viewer)
}

// SavePreferences persists per-viewer preferences.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, prefs ViewerPreferences) error {
	if viewer.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errMissingViewer)
	}
	if prefs.PageSize < 0 || prefs.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidRequest, MaxPageSize)
	}
	if err := s.opts.PreferenceStore.SavePreferences(ctx, viewer, normalizePreferences(prefs)); err != nil {
		return fmt.Errorf("dashboard: save preferences: %w", err)
	}
	s.recordTelemetry(ctx, "dashboard.preferences.save", map[string]any{
		"viewer":    viewer.UserID,
		"page_size": prefs.PageSize,
		"hidden":    len(prefs.HiddenWidgets),
	})
	return nil
}

// NotifyCollectionChanged exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyCollectionChanged(ctx context.Context, event RefreshEvent) error {
	if strings.TrimSpace(event.Collection) == "" {
		return fmt.Errorf("%w: collection is required", ErrInvalidRequest)
	}
	if event.At.IsZero() {
		event.At = s.opts.Now().UTC()
	}
	if err := s.opts.RefreshHook.CollectionChanged(ctx, event); err != nil {
		return fmt.Errorf("dashboard: refresh hook: %w", err)
	}
	s.recordTelemetry(ctx, "dashboard.collection.changed", map[string]any{
		"collection": event.Collection,
		"reason":     event.Reason,
	})
	return nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) filterAuthorized(ctx context.Context, viewer ViewerContext, widgets []WidgetInstance) []WidgetInstance {
	filtered := make([]WidgetInstance, 0, len(widgets))
	for _, w := range widgets {
		if s.opts.Authorizer.CanViewWidget(ctx, viewer, w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, widgets []WidgetInstance) []WidgetInstance {
	for i, inst := range widgets {
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			continue
		}
		data, err := provider.Fetch(ctx, WidgetContext{
			Instance: inst,
			Viewer:   viewer,
		})
		if widgets[i].Metadata == nil {
			widgets[i].Metadata = map[string]any{}
		}
		if err != nil {
			widgets[i].Metadata["error"] = err.Error()
			s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
				"widget_id":     inst.ID,
				"definition_id": inst.DefinitionID,
				"error":         err.Error(),
			})
			continue
		}
		widgets[i].Metadata["data"] = data
	}
	return widgets
}

// RoleAuthorizer shows a widget when it has no role restriction or when the
// viewer holds one of the roles listed in the instance metadata.
type RoleAuthorizer struct{}

// CanViewWidget implements Authorizer.
func (RoleAuthorizer) CanViewWidget(_ context.Context, viewer ViewerContext, instance WidgetInstance) bool {
	roles, _ := instance.Metadata["roles"].([]string)
	if len(roles) == 0 {
		return true
	}
	for _, role := range viewer.Roles {
		if slices.Contains(roles, role) {
			return true
		}
	}
	return false
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanViewWidget(context.Context, ViewerContext, WidgetInstance) bool {
	return true
}

type noopRefreshHook struct{}

func (noopRefreshHook) CollectionChanged(context.Context, RefreshEvent) error {
	return nil
}
