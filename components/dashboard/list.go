package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// ListRequest asks for one page of a collection.
type ListRequest struct {
	Collection string         `json:"collection"`
	Query      listview.Query `json:"query"`
	Viewer     ViewerContext  `json:"-"`
}

// ListPage is a page of records plus what a table needs to draw itself.
type ListPage struct {
	Collection string                              `json:"collection"`
	Query      listview.Query                      `json:"query"`
	Page       listview.PageResult[listview.Record] `json:"page"`
	Window     []int                               `json:"window"`
	Statuses   map[string]StatusDisplay            `json:"statuses,omitempty"`
}

type statusField struct {
	domain string
	field  string
}

var collectionStatusFields = map[string]statusField{
	CollectionOrders:  {domain: StatusDomainOrder, field: "status"},
	CollectionPayouts: {domain: StatusDomainPayment, field: "payment_status"},
	CollectionDrivers: {domain: StatusDomainDriver, field: "status"},
}

// pageWindowSpan is the number of page buttons shown under a table.
const pageWindowSpan = 5

func listRecords(ctx context.Context, source RecordSource, catalog *StatusCatalog, req ListRequest) (ListPage, error) {
	if source == nil {
		return ListPage{}, errMissingSource
	}
	collection := strings.TrimSpace(req.Collection)
	if collection == "" {
		return ListPage{}, fmt.Errorf("%w: collection is required", ErrInvalidRequest)
	}
	records, err := source.Records(ctx, collection)
	if err != nil {
		return ListPage{}, fmt.Errorf("dashboard: load %s: %w", collection, err)
	}
	page, err := listview.Compute(records, req.Query)
	if err != nil {
		return ListPage{}, fmt.Errorf("dashboard: list %s: %w", collection, err)
	}
	out := ListPage{
		Collection: collection,
		Query:      req.Query,
		Page:       page,
		Window:     page.Window(pageWindowSpan),
	}
	if sf, ok := collectionStatusFields[collection]; ok {
		out.Statuses = make(map[string]StatusDisplay)
		for _, record := range page.Items {
			status := record.String(sf.field)
			if status == "" {
				continue
			}
			out.Statuses[status] = catalog.LookupLocale(sf.domain, status, req.Viewer.Locale)
		}
	}
	return out, nil
}
