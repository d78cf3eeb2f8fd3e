package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// CommerceDeps are the collaborators shared by the commerce widget providers.
type CommerceDeps struct {
	Source   RecordSource
	Loader   SnapshotLoader
	Charts   *ChartRenderer
	Statuses *StatusCatalog
	Now      func() time.Time
}

// RegisterCommerceProviders attaches the commerce providers to their
// definitions. Without a Loader collections are fetched one after another
// from Source.
func RegisterCommerceProviders(reg ProviderRegistry, deps CommerceDeps) error {
	if reg == nil {
		return fmt.Errorf("dashboard: registry is required")
	}
	if deps.Source == nil {
		return errMissingSource
	}
	if deps.Loader == nil {
		deps.Loader = SequentialLoader{Source: deps.Source}
	}
	if deps.Charts == nil {
		deps.Charts = NewChartRenderer()
	}
	if deps.Statuses == nil {
		deps.Statuses = DefaultStatusCatalog()
	}
	providers := map[string]Provider{
		WidgetRevenueOverview: NewRevenueOverviewProvider(deps.Loader, deps.Now),
		WidgetTopProducts:     NewTopProductsProvider(deps.Source, deps.Charts),
		WidgetOrderStatus:     NewOrderStatusProvider(deps.Source, deps.Statuses, deps.Charts),
		WidgetPaymentStatus:   NewPaymentStatusProvider(deps.Source, deps.Statuses, deps.Charts),
		WidgetRecordTable:     NewRecordTableProvider(deps.Source, deps.Statuses),
		WidgetDriverOrders:    NewDriverOrdersProvider(deps.Source, deps.Statuses),
		WidgetSalesChart:      NewSalesChartProvider(deps.Source, deps.Charts, deps.Now),
	}
	for code, provider := range providers {
		if _, ok := reg.Definition(code); !ok {
			continue
		}
		if err := reg.RegisterProvider(code, provider); err != nil {
			return err
		}
	}
	return nil
}

// SequentialLoader implements SnapshotLoader by reading collections in order.
type SequentialLoader struct {
	Source RecordSource
}

// Snapshot loads each collection, stopping at the first error.
func (l SequentialLoader) Snapshot(ctx context.Context, collections ...string) (map[string][]listview.Record, error) {
	if l.Source == nil {
		return nil, errMissingSource
	}
	out := make(map[string][]listview.Record, len(collections))
	for _, collection := range collections {
		records, err := l.Source.Records(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("dashboard: load %s: %w", collection, err)
		}
		out[collection] = records
	}
	return out, nil
}
