package commerce

import (
	"context"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// NewRecordSource adapts a commerce client into a dashboard record source.
func NewRecordSource(client Client) dashboard.RecordSource {
	return &recordSource{client: client}
}

type recordSource struct {
	client Client
}

func (r *recordSource) Records(ctx context.Context, collection string) ([]listview.Record, error) {
	return r.client.FetchCollection(ctx, collection)
}
