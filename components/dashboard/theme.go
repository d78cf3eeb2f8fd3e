package dashboard

import (
	"maps"
	"slices"
	"strings"
)

// Theme carries the presentation tokens of the dashboard page: CSS
// variables, named assets (logo, favicon) and the ECharts theme.
type Theme struct {
	Name       string            `json:"name" yaml:"name"`
	ChartTheme string            `json:"chart_theme,omitempty" yaml:"chart_theme,omitempty"`
	Tokens     map[string]string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Assets     ThemeAssets       `json:"assets" yaml:"assets"`
}

// ThemeAssets maps asset names to paths, optionally under a prefix.
type ThemeAssets struct {
	Values map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	Prefix string            `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// AssetURL resolves the final URL for a named asset.
func (assets ThemeAssets) AssetURL(name string) string {
	path := assets.Values[name]
	if path == "" {
		return ""
	}
	if assets.Prefix != "" && !strings.Contains(path, "://") {
		return strings.TrimRight(assets.Prefix, "/") + "/" + strings.TrimLeft(path, "/")
	}
	return path
}

// Resolved returns every asset with its resolved URL.
func (assets ThemeAssets) Resolved() map[string]string {
	if len(assets.Values) == 0 {
		return nil
	}
	out := make(map[string]string, len(assets.Values))
	for key := range assets.Values {
		if url := assets.AssetURL(key); url != "" {
			out[key] = url
		}
	}
	return out
}

// CSSVariables normalizes token keys into CSS custom property names.
func (theme *Theme) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		if name := normalizeCSSVariable(key); name != "" && value != "" {
			vars[name] = value
		}
	}
	return vars
}

// CSSVariablesInline renders the variables as a style attribute value,
// sorted by name.
func (theme *Theme) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

// payload is the view model handed to templates.
func (theme *Theme) payload() map[string]any {
	if theme == nil {
		return nil
	}
	return map[string]any{
		"name":   theme.Name,
		"css":    theme.CSSVariablesInline(),
		"assets": theme.Assets.Resolved(),
	}
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ""
	case strings.HasPrefix(name, "--"):
		return name
	default:
		return "--" + strings.ReplaceAll(name, ".", "-")
	}
}
