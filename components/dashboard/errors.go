package dashboard

import (
	"errors"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

var (
	// ErrInvalidRequest marks caller mistakes (missing collection, bad paging...).
	ErrInvalidRequest = errors.New("dashboard: invalid request")
	// ErrUnknownCollection is returned when a collection is not exposed by the service.
	ErrUnknownCollection = errors.New("dashboard: unknown collection")
	// ErrInvalidConfig is returned when a widget configuration fails its schema.
	ErrInvalidConfig = errors.New("dashboard: invalid widget configuration")

	errMissingSource = errors.New("dashboard: record source not configured")
	errMissingViewer = errors.New("dashboard: viewer context missing user id")
)

// IsClientError reports whether err was caused by the request rather than by
// the dashboard or its collaborators.
func IsClientError(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidConfig),
		errors.Is(err, listview.ErrInvalidPageSize),
		errors.Is(err, listview.ErrInvalidPage),
		errors.Is(err, listview.ErrInvalidLimit):
		return true
	}
	return false
}
