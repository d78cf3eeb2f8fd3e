package dashboard

import (
	"context"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// RecordSource returns the raw records of a commerce collection (orders,
// products, payouts, drivers...). Implementations own transport concerns.
type RecordSource interface {
	Records(ctx context.Context, collection string) ([]listview.Record, error)
}

// RecordSourceFunc adapts a function into a RecordSource.
type RecordSourceFunc func(ctx context.Context, collection string) ([]listview.Record, error)

// Records calls f.
func (f RecordSourceFunc) Records(ctx context.Context, collection string) ([]listview.Record, error) {
	return f(ctx, collection)
}

// SnapshotLoader fetches several collections for one widget render.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, collections ...string) (map[string][]listview.Record, error)
}

// Authorizer determines if a viewer can see a widget instance.
type Authorizer interface {
	CanViewWidget(ctx context.Context, viewer ViewerContext, instance WidgetInstance) bool
}

// PreferenceStore returns per-viewer dashboard preferences.
type PreferenceStore interface {
	Preferences(ctx context.Context, viewer ViewerContext) (ViewerPreferences, error)
	SavePreferences(ctx context.Context, viewer ViewerContext, prefs ViewerPreferences) error
}

// ProviderRegistry stores widget definitions/providers discoverable via hooks.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook notifies transports (REST/WebSocket/SSE) that a collection changed.
type RefreshHook interface {
	CollectionChanged(ctx context.Context, event RefreshEvent) error
}

// WidgetAreaDefinition models a dashboard area (main/sidebar/footer).
type WidgetAreaDefinition struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WidgetDefinition describes a widget type and the schema of its configuration.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// WidgetInstance is a configured widget placed in an area.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition"`
	AreaCode      string         `json:"area"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ViewerPreferences captures per-viewer adjustments.
type ViewerPreferences struct {
	PageSize      int                 `json:"page_size"`
	HiddenWidgets map[string]bool     `json:"hidden_widgets"`
	AreaOrder     map[string][]string `json:"area_order"`
}

// ViewerContext identifies the admin looking at the dashboard.
type ViewerContext struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	Locale string   `json:"locale,omitempty"`
}

// Layout describes the resolved widget instances per dashboard area.
type Layout struct {
	Areas map[string][]WidgetInstance `json:"areas"`
}

// ResolvedArea is a single area of a layout.
type ResolvedArea struct {
	AreaCode string           `json:"area"`
	Widgets  []WidgetInstance `json:"widgets"`
}

// RefreshEvent tells subscribers that the records of a collection changed.
type RefreshEvent struct {
	Collection string    `json:"collection"`
	Reason     string    `json:"reason,omitempty"`
	At         time.Time `json:"at"`
}
