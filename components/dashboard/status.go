package dashboard

import (
	"strings"

	"github.com/ettle/strcase"
)

// Status domains known to the default catalog.
const (
	StatusDomainOrder   = "order"
	StatusDomainPayment = "payment"
	StatusDomainDriver  = "driver"
)

// StatusDisplay is how a status value is shown: a label plus color and icon
// hints for the presentation layer.
type StatusDisplay struct {
	Key    string            `json:"key" yaml:"key"`
	Label  string            `json:"label" yaml:"label"`
	Color  string            `json:"color" yaml:"color"`
	Icon   string            `json:"icon" yaml:"icon"`
	Labels map[string]string `json:"-" yaml:"labels,omitempty"`
}

// StatusCatalog maps raw status values to their display metadata, per domain.
// It is read-only after construction and safe for concurrent use.
type StatusCatalog struct {
	domains map[string]map[string]StatusDisplay
}

// NewStatusCatalog copies entries into a catalog. Status keys are normalized
// to snake_case so "Out for delivery" and "out_for_delivery" match.
func NewStatusCatalog(entries map[string]map[string]StatusDisplay) *StatusCatalog {
	c := &StatusCatalog{domains: make(map[string]map[string]StatusDisplay, len(entries))}
	for domain, statuses := range entries {
		m := make(map[string]StatusDisplay, len(statuses))
		for status, display := range statuses {
			key := statusKey(status)
			display.Key = key
			if display.Label == "" {
				display.Label = statusLabel(key)
			}
			display.Labels = normalizeLocaleMap(display.Labels)
			m[key] = display
		}
		c.domains[domain] = m
	}
	return c
}

// DefaultStatusCatalog returns the order, payment and driver statuses used by
// the commerce widgets.
func DefaultStatusCatalog() *StatusCatalog {
	return NewStatusCatalog(defaultStatusDisplays())
}

// Lookup returns the display entry for status, or a neutral entry derived
// from the status text when the catalog does not know it.
func (c *StatusCatalog) Lookup(domain, status string) StatusDisplay {
	key := statusKey(status)
	if c != nil {
		if display, ok := c.domains[domain][key]; ok {
			return display
		}
	}
	if key == "" {
		return StatusDisplay{Key: "", Label: "Unknown", Color: "gray", Icon: "help-circle"}
	}
	return StatusDisplay{Key: key, Label: statusLabel(key), Color: "gray", Icon: "circle"}
}

// LookupLocale is Lookup with the label translated for locale when the
// catalog carries a translation.
func (c *StatusCatalog) LookupLocale(domain, status, locale string) StatusDisplay {
	display := c.Lookup(domain, status)
	display.Label = ResolveLocalizedValue(display.Labels, locale, display.Label)
	return display
}

// Domain returns a copy of the entries registered for domain.
func (c *StatusCatalog) Domain(domain string) map[string]StatusDisplay {
	out := map[string]StatusDisplay{}
	if c == nil {
		return out
	}
	for key, display := range c.domains[domain] {
		out[key] = display
	}
	return out
}

func statusKey(status string) string {
	return strcase.ToSnake(strings.TrimSpace(status))
}

func statusLabel(key string) string {
	return strcase.ToCase(key, strcase.TitleCase, ' ')
}
