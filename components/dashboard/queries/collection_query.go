package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

type collectionService interface {
	ListCollection(ctx context.Context, req dashboard.ListRequest) (dashboard.ListPage, error)
}

// CollectionQuery returns one filtered, sorted page of a collection.
type CollectionQuery struct {
	service collectionService
}

// NewCollectionQuery builds the query.
func NewCollectionQuery(service collectionService) *CollectionQuery {
	return &CollectionQuery{service: service}
}

var _ gocommand.Querier[dashboard.ListRequest, dashboard.ListPage] = (*CollectionQuery)(nil)

// Query lists the collection.
func (q *CollectionQuery) Query(ctx context.Context, req dashboard.ListRequest) (dashboard.ListPage, error) {
	if q.service == nil {
		return dashboard.ListPage{}, errMissingService
	}
	return q.service.ListCollection(ctx, req)
}

type preferencesReader interface {
	Preferences(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ViewerPreferences, error)
}

// PreferencesQuery returns the stored preferences of a viewer.
type PreferencesQuery struct {
	service preferencesReader
}

// NewPreferencesQuery builds the query.
func NewPreferencesQuery(service preferencesReader) *PreferencesQuery {
	return &PreferencesQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.ViewerPreferences] = (*PreferencesQuery)(nil)

// Query loads the preferences.
func (q *PreferencesQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ViewerPreferences, error) {
	if q.service == nil {
		return dashboard.ViewerPreferences{}, errMissingService
	}
	return q.service.Preferences(ctx, viewer)
}
