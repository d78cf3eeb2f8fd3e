package commerce

import (
	"context"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// Client fetches raw collection records (orders, products, payouts, drivers,
// customers) from the commerce backend.
type Client interface {
	FetchCollection(ctx context.Context, collection string) ([]listview.Record, error)
}
