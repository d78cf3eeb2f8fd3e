package dashboard

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current layout manifest version for tooling.
	ManifestVersion = manifestVersionV1
)

// LayoutManifest is the YAML document describing which widgets appear in
// which dashboard area, and which collections the list API exposes.
type LayoutManifest struct {
	Version     string         `json:"version" yaml:"version"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Collections []string       `json:"collections,omitempty" yaml:"collections,omitempty"`
	Areas       []ManifestArea `json:"areas" yaml:"areas"`
	Source      string         `json:"-" yaml:"-"`
}

// ManifestArea lists the widgets of one area in display order.
type ManifestArea struct {
	Code    string           `json:"code" yaml:"code"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []ManifestWidget `json:"widgets" yaml:"widgets"`
}

// ManifestWidget is a widget instance entry. Missing IDs are generated.
type ManifestWidget struct {
	ID            string         `json:"id,omitempty" yaml:"id,omitempty"`
	Definition    string         `json:"definition" yaml:"definition"`
	Roles         []string       `json:"roles,omitempty" yaml:"roles,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
}

// ReadLayoutManifest loads a manifest file from disk.
func ReadLayoutManifest(path string) (*LayoutManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeLayoutManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeLayoutManifest reads a manifest from any reader. Unknown fields are
// rejected.
func DecodeLayoutManifest(r io.Reader) (*LayoutManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc LayoutManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *LayoutManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	areas := make(map[string]struct{}, len(doc.Areas))
	ids := map[string]struct{}{}
	for idx, area := range doc.Areas {
		if area.Code == "" {
			return fmt.Errorf("dashboard: manifest area at index %d is missing code", idx)
		}
		if _, dup := areas[area.Code]; dup {
			return fmt.Errorf("dashboard: manifest duplicates area %s", area.Code)
		}
		areas[area.Code] = struct{}{}
		for wIdx, widget := range area.Widgets {
			if widget.Definition == "" {
				return fmt.Errorf("dashboard: widget %d in area %s is missing definition", wIdx, area.Code)
			}
			if widget.ID == "" {
				continue
			}
			if _, dup := ids[widget.ID]; dup {
				return fmt.Errorf("dashboard: manifest duplicates widget id %s", widget.ID)
			}
			ids[widget.ID] = struct{}{}
		}
	}
	return nil
}

// Check verifies every widget references a registered definition and that
// its configuration satisfies the definition schema.
func (doc *LayoutManifest) Check(reg ProviderRegistry, validator ConfigValidator) error {
	var errs error
	for _, area := range doc.Areas {
		for _, widget := range area.Widgets {
			def, ok := reg.Definition(widget.Definition)
			if !ok {
				errs = errors.Join(errs, fmt.Errorf("dashboard: widget %s: unknown definition %s", widget.ID, widget.Definition))
				continue
			}
			if validator == nil {
				continue
			}
			if err := validator.Validate(def, widget.Configuration); err != nil {
				errs = errors.Join(errs, fmt.Errorf("dashboard: widget %s: %w", widget.ID, err))
			}
		}
	}
	return errs
}

// AreaCodes returns the area codes in manifest order.
func (doc *LayoutManifest) AreaCodes() []string {
	codes := make([]string, len(doc.Areas))
	for i, area := range doc.Areas {
		codes[i] = area.Code
	}
	return codes
}

// Instances returns fresh widget instances for area. Configuration maps are
// copied so providers can never mutate the manifest.
func (doc *LayoutManifest) Instances(areaCode string) []WidgetInstance {
	for _, area := range doc.Areas {
		if area.Code != areaCode {
			continue
		}
		out := make([]WidgetInstance, 0, len(area.Widgets))
		for _, widget := range area.Widgets {
			instance := WidgetInstance{
				ID:            widget.ID,
				DefinitionID:  widget.Definition,
				AreaCode:      area.Code,
				Configuration: maps.Clone(widget.Configuration),
			}
			if len(widget.Roles) > 0 {
				instance.Metadata = map[string]any{"roles": append([]string(nil), widget.Roles...)}
			}
			out = append(out, instance)
		}
		return out
	}
	return nil
}

// Encode writes the manifest as YAML.
func (doc *LayoutManifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode manifest: %w", err)
	}
	return enc.Close()
}

func (doc *LayoutManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for a := range doc.Areas {
		for w := range doc.Areas[a].Widgets {
			if doc.Areas[a].Widgets[w].ID == "" {
				doc.Areas[a].Widgets[w].ID = uuid.NewString()
			}
		}
	}
}
