package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// Trend markers attached to KPI cards.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// KPICard is one headline metric compared with the previous period.
type KPICard struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
	Trend    string  `json:"trend"`
}

func newKPICard(key, label string, current, previous float64) KPICard {
	change := listview.PercentageChange(current, previous)
	trend := TrendFlat
	switch {
	case change > 0:
		trend = TrendUp
	case change < 0:
		trend = TrendDown
	}
	return KPICard{Key: key, Label: label, Value: current, Previous: previous, Change: change, Trend: trend}
}

// RevenueOverviewProvider computes the revenue/orders/payouts/drivers cards.
type RevenueOverviewProvider struct {
	loader SnapshotLoader
	now    func() time.Time
}

// NewRevenueOverviewProvider builds the provider. now defaults to time.Now.
func NewRevenueOverviewProvider(loader SnapshotLoader, now func() time.Time) *RevenueOverviewProvider {
	if now == nil {
		now = time.Now
	}
	return &RevenueOverviewProvider{loader: loader, now: now}
}

// Fetch compares the last window_days days with the window before it.
func (p *RevenueOverviewProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.loader == nil {
		return nil, errMissingSource
	}
	window := intValue(meta.Instance.Configuration["window_days"], 30)
	if window < 1 {
		window = 30
	}
	snap, err := p.loader.Snapshot(ctx, CollectionOrders, CollectionPayouts)
	if err != nil {
		return nil, fmt.Errorf("revenue overview: %w", err)
	}

	end := p.now().UTC()
	start := end.AddDate(0, 0, -window)
	prevStart := start.AddDate(0, 0, -window)
	prevEnd := start.Add(-time.Nanosecond)

	orders := snap[CollectionOrders]
	payouts := snap[CollectionPayouts]
	currentOrders := listview.Filter(orders, listview.FilterSpec[listview.Record]{listview.Between("created_at", start, end)})
	previousOrders := listview.Filter(orders, listview.FilterSpec[listview.Record]{listview.Between("created_at", prevStart, prevEnd)})
	currentPayouts := listview.Filter(payouts, listview.FilterSpec[listview.Record]{listview.Between("created_at", start, end)})
	previousPayouts := listview.Filter(payouts, listview.FilterSpec[listview.Record]{listview.Between("created_at", prevStart, prevEnd)})

	cards := []KPICard{
		newKPICard("revenue", "Revenue",
			totalOf(billable(currentOrders), "total").Sum("total"),
			totalOf(billable(previousOrders), "total").Sum("total")),
		newKPICard("orders", "Orders", float64(len(currentOrders)), float64(len(previousOrders))),
		newKPICard("payouts", "Driver payouts",
			totalOf(currentPayouts, "amount").Sum("amount"),
			totalOf(previousPayouts, "amount").Sum("amount")),
		newKPICard("active_drivers", "Active drivers",
			float64(activeDrivers(currentOrders)),
			float64(activeDrivers(previousOrders))),
	}
	return WidgetData{
		"title":       "Overview",
		"window_days": window,
		"from":        start,
		"to":          end,
		"cards":       cards,
	}, nil
}

func billable(orders []listview.Record) []listview.Record {
	return listview.Filter(orders, listview.FilterSpec[listview.Record]{func(r listview.Record) bool {
		return statusKey(r.String("status")) != "cancelled"
	}})
}

// totalOf folds every record into one Totals accumulator.
func totalOf(records []listview.Record, paths ...string) listview.Totals {
	groups := listview.Aggregate(records, listview.AggregationRule[listview.Record, string, listview.Totals]{
		GroupKey: func(listview.Record) (string, bool) { return "all", true },
		Reduce:   listview.SumFields(paths...),
		Init:     listview.NewTotals,
	})
	if totals, ok := groups.Get("all"); ok {
		return totals
	}
	return listview.NewTotals()
}

func activeDrivers(orders []listview.Record) int {
	return listview.Aggregate(orders, listview.TotalsBy("driver.id")).Len()
}

// ProductSales is the per-product accumulator of the top products widget.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Revenue   float64 `json:"revenue"`
	Share     float64 `json:"share"`
}

func (s ProductSales) metric(name string) float64 {
	if name == "quantity" {
		return s.Quantity
	}
	return s.Revenue
}

// TopProductsProvider ranks products by revenue or units sold.
type TopProductsProvider struct {
	source RecordSource
	charts *ChartRenderer
}

// NewTopProductsProvider builds the provider.
func NewTopProductsProvider(source RecordSource, charts *ChartRenderer) *TopProductsProvider {
	if charts == nil {
		charts = NewChartRenderer()
	}
	return &TopProductsProvider{source: source, charts: charts}
}

// Fetch flattens order items, aggregates them per product and keeps the top N.
func (p *TopProductsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, errMissingSource
	}
	cfg := meta.Instance.Configuration
	limit := intValue(cfg["limit"], 5)
	metric := strings.ToLower(stringValue(cfg["metric"], "revenue"))

	orders, err := p.source.Records(ctx, CollectionOrders)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	items := listview.Flatten(billable(orders), "items")
	groups := listview.Aggregate(items, listview.AggregationRule[listview.Record, string, ProductSales]{
		GroupKey: listview.GroupByField("product_id"),
		Reduce: func(acc ProductSales, item listview.Record) ProductSales {
			if acc.ProductID == "" {
				acc.ProductID = item.String("product_id")
			}
			if acc.Name == "" {
				acc.Name = item.String("name")
			}
			qty := item.Number("quantity")
			acc.Quantity += qty
			acc.Revenue += qty * item.Number("price")
			return acc
		},
	})

	entries := groups.Entries()
	var total float64
	for _, entry := range entries {
		total += entry.Value.metric(metric)
	}
	byMetric := listview.ByKey(func(e listview.Entry[string, ProductSales]) float64 { return e.Value.metric(metric) }, listview.Descending)
	byName := listview.ByKey(func(e listview.Entry[string, ProductSales]) string { return strings.ToLower(e.Value.Name) }, listview.Ascending)
	top, err := listview.TopN(entries, limit, byMetric.Then(byName))
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	rows := make([]ProductSales, len(top))
	points := make([]ChartPoint, len(top))
	for i, entry := range top {
		row := entry.Value
		if row.Name == "" {
			row.Name = row.ProductID
		}
		row.Share = listview.PercentageOf(row.metric(metric), total)
		rows[i] = row
		points[i] = ChartPoint{Label: row.Name, Value: row.metric(metric)}
	}

	title := stringValue(cfg["title"], "Top products")
	data := WidgetData{
		"title":  title,
		"metric": metric,
		"rows":   rows,
	}
	if len(points) == 0 {
		return data, nil
	}
	html, err := p.charts.Render(ctx, ChartSpec{
		Type:   ChartBar,
		Title:  title,
		Series: []ChartSeries{{Name: titleize(metric), Points: points}},
	})
	if err != nil {
		return nil, err
	}
	data["chart_html"] = html
	data["chart_type"] = ChartBar
	return data, nil
}

// StatusShare is one slice of a status breakdown.
type StatusShare struct {
	StatusDisplay
	Count   int     `json:"count"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// StatusBreakdownProvider groups a collection by a status field. With a
// value field the slices are sized by its sum, otherwise by record count.
type StatusBreakdownProvider struct {
	source     RecordSource
	catalog    *StatusCatalog
	charts     *ChartRenderer
	collection string
	field      string
	valueField string
	domain     string
	title      string
}

// NewOrderStatusProvider counts orders per status.
func NewOrderStatusProvider(source RecordSource, catalog *StatusCatalog, charts *ChartRenderer) *StatusBreakdownProvider {
	return newStatusBreakdown(source, catalog, charts, CollectionOrders, "status", "", StatusDomainOrder, "Orders by status")
}

// NewPaymentStatusProvider sums payout amounts per payment status.
func NewPaymentStatusProvider(source RecordSource, catalog *StatusCatalog, charts *ChartRenderer) *StatusBreakdownProvider {
	return newStatusBreakdown(source, catalog, charts, CollectionPayouts, "payment_status", "amount", StatusDomainPayment, "Payouts by payment status")
}

func newStatusBreakdown(source RecordSource, catalog *StatusCatalog, charts *ChartRenderer, collection, field, valueField, domain, title string) *StatusBreakdownProvider {
	if catalog == nil {
		catalog = DefaultStatusCatalog()
	}
	if charts == nil {
		charts = NewChartRenderer()
	}
	return &StatusBreakdownProvider{
		source:     source,
		catalog:    catalog,
		charts:     charts,
		collection: collection,
		field:      field,
		valueField: valueField,
		domain:     domain,
		title:      title,
	}
}

// Fetch aggregates the collection and renders the breakdown chart.
func (p *StatusBreakdownProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, errMissingSource
	}
	records, err := p.source.Records(ctx, p.collection)
	if err != nil {
		return nil, fmt.Errorf("%s breakdown: %w", p.domain, err)
	}
	rows := p.breakdown(records, meta.Viewer.Locale)

	chartType := stringValue(meta.Instance.Configuration["chart"], ChartPie)
	data := WidgetData{
		"title": p.title,
		"rows":  rows,
	}
	if len(rows) == 0 {
		return data, nil
	}
	points := make([]ChartPoint, len(rows))
	for i, row := range rows {
		points[i] = ChartPoint{Label: row.Label, Value: row.Value}
	}
	html, err := p.charts.Render(ctx, ChartSpec{
		Type:   chartType,
		Title:  p.title,
		Series: []ChartSeries{{Name: p.title, Points: points}},
	})
	if err != nil {
		return nil, err
	}
	data["chart_html"] = html
	data["chart_type"] = chartType
	return data, nil
}

func (p *StatusBreakdownProvider) breakdown(records []listview.Record, locale string) []StatusShare {
	var sums []string
	if p.valueField != "" {
		sums = []string{p.valueField}
	}
	groups := listview.Aggregate(records, listview.AggregationRule[listview.Record, string, listview.Totals]{
		GroupKey: func(r listview.Record) (string, bool) {
			key := statusKey(r.String(p.field))
			return key, key != ""
		},
		Reduce: listview.SumFields(sums...),
		Init:   listview.NewTotals,
	})

	value := func(t listview.Totals) float64 {
		if p.valueField == "" {
			return float64(t.Count)
		}
		return t.Sum(p.valueField)
	}
	entries := groups.Entries()
	var total float64
	for _, entry := range entries {
		total += value(entry.Value)
	}
	entries = listview.SortEntries(entries, listview.ByKey(func(e listview.Entry[string, listview.Totals]) float64 {
		return value(e.Value)
	}, listview.Descending))

	rows := make([]StatusShare, len(entries))
	for i, entry := range entries {
		v := value(entry.Value)
		rows[i] = StatusShare{
			StatusDisplay: p.catalog.LookupLocale(p.domain, entry.Key, locale),
			Count:         entry.Value.Count,
			Value:         v,
			Percent:       listview.PercentageOf(v, total),
		}
	}
	return rows
}

// RecordTableProvider renders a paginated table over any collection.
type RecordTableProvider struct {
	source  RecordSource
	catalog *StatusCatalog
}

// NewRecordTableProvider builds the provider.
func NewRecordTableProvider(source RecordSource, catalog *StatusCatalog) *RecordTableProvider {
	if catalog == nil {
		catalog = DefaultStatusCatalog()
	}
	return &RecordTableProvider{source: source, catalog: catalog}
}

// Fetch lists the configured collection.
func (p *RecordTableProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	collection := stringValue(cfg["collection"], "")
	if collection == "" {
		return nil, fmt.Errorf("%w: record table requires a collection", ErrInvalidConfig)
	}
	query := listview.Query{
		Search:       stringValue(cfg["search"], ""),
		SearchFields: stringSliceValue(cfg["search_fields"]),
		Filters:      stringMapValue(cfg["filters"]),
		SortBy:       stringValue(cfg["sort_by"], ""),
		Direction:    listview.ParseDirection(stringValue(cfg["direction"], "")),
		Page:         1,
		PageSize:     intValue(cfg["page_size"], listview.DefaultPageSize),
	}
	return p.table(ctx, collection, stringValue(cfg["title"], titleize(collection)), stringSliceValue(cfg["columns"]), query)
}

func (p *RecordTableProvider) table(ctx context.Context, collection, title string, columns []string, query listview.Query) (WidgetData, error) {
	page, err := listRecords(ctx, p.source, p.catalog, ListRequest{Collection: collection, Query: query})
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		columns = []string{"id"}
	}
	rows := make([][]string, len(page.Page.Items))
	for i, record := range page.Page.Items {
		cells := make([]string, len(columns))
		for j, column := range columns {
			cells[j] = record.String(column)
		}
		rows[i] = cells
	}
	return WidgetData{
		"title":      title,
		"collection": collection,
		"columns":    columns,
		"rows":       rows,
		"page":       page.Page,
		"window":     page.Window,
		"statuses":   page.Statuses,
	}, nil
}

// DriverOrdersProvider is a record table preset listing one driver's orders,
// newest first.
type DriverOrdersProvider struct {
	table *RecordTableProvider
}

// NewDriverOrdersProvider builds the provider.
func NewDriverOrdersProvider(source RecordSource, catalog *StatusCatalog) *DriverOrdersProvider {
	return &DriverOrdersProvider{table: NewRecordTableProvider(source, catalog)}
}

// Fetch lists orders whose driver.id matches driver_id.
func (p *DriverOrdersProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	driverID := stringValue(cfg["driver_id"], "")
	if driverID == "" {
		return nil, fmt.Errorf("%w: driver orders requires driver_id", ErrInvalidConfig)
	}
	filters := map[string]string{"driver.id": driverID}
	if status := stringValue(cfg["status"], ""); status != "" {
		filters["status"] = status
	}
	query := listview.Query{
		Filters:   filters,
		SortBy:    "created_at",
		Direction: listview.Descending,
		Page:      1,
		PageSize:  intValue(cfg["page_size"], listview.DefaultPageSize),
	}
	data, err := p.table.table(ctx, CollectionOrders, "Driver orders", []string{"id", "customer.name", "status", "total", "created_at"}, query)
	if err != nil {
		return nil, err
	}
	data["driver_id"] = driverID
	return data, nil
}

func titleize(value string) string {
	if value == "" {
		return value
	}
	return statusLabel(statusKey(value))
}
