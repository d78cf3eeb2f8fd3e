package dashboard

import (
	"fmt"
	"time"
)

// CommerceConfig wires a ready-to-use commerce dashboard.
type CommerceConfig struct {
	Source          RecordSource
	Loader          SnapshotLoader
	ManifestPath    string
	Layout          *LayoutManifest
	Charts          *ChartRenderer
	Theme           *Theme
	Statuses        *StatusCatalog
	PreferenceStore PreferenceStore
	Authorizer      Authorizer
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	DefaultPageSize int
	Now             func() time.Time
}

// NewCommerceService builds the registry, registers the commerce providers,
// loads and checks the layout manifest and returns the service.
func NewCommerceService(cfg CommerceConfig) (*Service, error) {
	if cfg.Source == nil {
		return nil, errMissingSource
	}
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	if cfg.Charts == nil && cfg.Theme != nil && cfg.Theme.ChartTheme != "" {
		cfg.Charts = NewChartRenderer(WithChartTheme(cfg.Theme.ChartTheme))
	}
	if cfg.Statuses == nil {
		cfg.Statuses = DefaultStatusCatalog()
	}
	if err := RegisterCommerceProviders(reg, CommerceDeps{
		Source:   cfg.Source,
		Loader:   cfg.Loader,
		Charts:   cfg.Charts,
		Statuses: cfg.Statuses,
		Now:      cfg.Now,
	}); err != nil {
		return nil, err
	}

	layout := cfg.Layout
	if layout == nil && cfg.ManifestPath != "" {
		if layout, err = ReadLayoutManifest(cfg.ManifestPath); err != nil {
			return nil, err
		}
	}
	if layout == nil {
		layout = DefaultLayoutManifest()
	}
	validator := NewJSONSchemaValidator()
	if err := layout.Check(reg, validator); err != nil {
		return nil, fmt.Errorf("dashboard: layout %s: %w", layout.Name, err)
	}

	authorizer := cfg.Authorizer
	if authorizer == nil {
		authorizer = RoleAuthorizer{}
	}
	return NewService(Options{
		Layout:          layout,
		Source:          cfg.Source,
		Authorizer:      authorizer,
		PreferenceStore: cfg.PreferenceStore,
		Providers:       reg,
		ConfigValidator: validator,
		RefreshHook:     cfg.RefreshHook,
		Telemetry:       cfg.Telemetry,
		Statuses:        cfg.Statuses,
		DefaultPageSize: cfg.DefaultPageSize,
		Now:             cfg.Now,
	}), nil
}
