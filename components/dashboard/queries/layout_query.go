package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

var errMissingService = errors.New("query requires service")

type layoutService interface {
	ConfigureLayout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error)
	ResolveArea(ctx context.Context, viewer dashboard.ViewerContext, areaCode string) (dashboard.ResolvedArea, error)
}

// LayoutQuery resolves every area of the dashboard for a viewer.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.Layout] = (*LayoutQuery)(nil)

// Query resolves the layout for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Layout, error) {
	if q.service == nil {
		return dashboard.Layout{}, errMissingService
	}
	return q.service.ConfigureLayout(ctx, viewer)
}

// AreaInput identifies one area requested by a viewer.
type AreaInput struct {
	Viewer   dashboard.ViewerContext `json:"viewer"`
	AreaCode string                  `json:"area"`
}

// AreaQuery resolves a single area, used by partial refreshes.
type AreaQuery struct {
	service layoutService
}

// NewAreaQuery builds the query.
func NewAreaQuery(service layoutService) *AreaQuery {
	return &AreaQuery{service: service}
}

var _ gocommand.Querier[AreaInput, dashboard.ResolvedArea] = (*AreaQuery)(nil)

// Query resolves the area.
func (q *AreaQuery) Query(ctx context.Context, input AreaInput) (dashboard.ResolvedArea, error) {
	if q.service == nil {
		return dashboard.ResolvedArea{}, errMissingService
	}
	return q.service.ResolveArea(ctx, input.Viewer, input.AreaCode)
}
