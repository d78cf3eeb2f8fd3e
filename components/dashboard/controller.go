package dashboard

import (
	"context"
	"errors"
	"io"
)

// DefaultLayoutTemplate is the template rendered by Controller.RenderTemplate.
const DefaultLayoutTemplate = "dashboard"

var errMissingRenderer = errors.New("dashboard: renderer not configured")

// LayoutResolver is the part of Service the controller depends on.
type LayoutResolver interface {
	ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error)
	Areas() []string
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Service  LayoutResolver
	Renderer Renderer
	Template string
	Title    string
	Theme    *Theme
}

// Controller renders dashboard layouts as HTML or JSON payloads.
type Controller struct {
	service  LayoutResolver
	renderer Renderer
	template string
	title    string
	theme    *Theme
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = DefaultLayoutTemplate
	}
	if opts.Title == "" {
		opts.Title = "Commerce dashboard"
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: opts.Template,
		title:    opts.Title,
		theme:    opts.Theme,
	}
}

// LayoutPayload resolves the layout and returns the view model used by both
// the HTML template and the JSON endpoint. Areas keep manifest order.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.service == nil {
		return map[string]any{"title": c.title, "areas": []any{}}, nil
	}
	layout, err := c.service.ConfigureLayout(ctx, viewer)
	if err != nil {
		return nil, err
	}
	areas := make([]map[string]any, 0, len(layout.Areas))
	for _, code := range c.service.Areas() {
		widgets := layout.Areas[code]
		if widgets == nil {
			widgets = []WidgetInstance{}
		}
		areas = append(areas, map[string]any{
			"code":    code,
			"widgets": widgets,
		})
	}
	return map[string]any{
		"title":  c.title,
		"viewer": viewer,
		"areas":  areas,
		"theme":  c.theme.payload(),
	}, nil
}

// RenderTemplate writes the dashboard HTML to out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errMissingRenderer
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, payload, out)
	return err
}
