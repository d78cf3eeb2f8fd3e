package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// SalesPoint is the revenue and order count of one day.
type SalesPoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// SalesChartProvider plots daily revenue for the last N days.
type SalesChartProvider struct {
	source RecordSource
	charts *ChartRenderer
	now    func() time.Time
}

// NewSalesChartProvider builds the provider. now defaults to time.Now.
func NewSalesChartProvider(source RecordSource, charts *ChartRenderer, now func() time.Time) *SalesChartProvider {
	if charts == nil {
		charts = NewChartRenderer()
	}
	if now == nil {
		now = time.Now
	}
	return &SalesChartProvider{source: source, charts: charts, now: now}
}

// Fetch renders the sales line chart.
func (p *SalesChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, errMissingSource
	}
	cfg := meta.Instance.Configuration
	days := intValue(cfg["days"], 14)
	if days < 1 {
		days = 14
	}
	comparison := stringValue(cfg["comparison"], "none")

	orders, err := p.source.Records(ctx, CollectionOrders)
	if err != nil {
		return nil, fmt.Errorf("sales chart: %w", err)
	}
	points := dailySales(billable(orders), p.now().UTC(), days)

	revenue := make([]ChartPoint, len(points))
	counts := make([]ChartPoint, len(points))
	axis := make([]string, len(points))
	for i, point := range points {
		day, _ := time.Parse(time.DateOnly, point.Day)
		axis[i] = day.Format("Jan 2")
		revenue[i] = ChartPoint{Label: axis[i], Value: point.Revenue}
		counts[i] = ChartPoint{Label: axis[i], Value: float64(point.Orders)}
	}
	series := []ChartSeries{{Name: "Revenue", Points: revenue}}
	if comparison == "orders" {
		series = append(series, ChartSeries{Name: "Orders", Points: counts})
	}

	title := stringValue(cfg["title"], fmt.Sprintf("Revenue (last %d days)", days))
	html, err := p.charts.Render(ctx, ChartSpec{
		Type:   ChartLine,
		Title:  title,
		XAxis:  axis,
		Series: series,
	})
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"title":      title,
		"days":       days,
		"points":     points,
		"chart_html": html,
		"chart_type": ChartLine,
	}, nil
}

// dailySales buckets orders by calendar day (UTC) over the days ending at
// now. Days without orders are present with zero values.
func dailySales(orders []listview.Record, now time.Time, days int) []SalesPoint {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))
	end := today.AddDate(0, 0, 1).Add(-time.Nanosecond)

	inRange := listview.Filter(orders, listview.FilterSpec[listview.Record]{listview.Between("created_at", start, end)})
	groups := listview.Aggregate(inRange, listview.AggregationRule[listview.Record, string, listview.Totals]{
		GroupKey: func(r listview.Record) (string, bool) {
			ts, ok := r.Time("created_at")
			if !ok {
				return "", false
			}
			return ts.UTC().Format(time.DateOnly), true
		},
		Reduce: listview.SumFields("total"),
		Init:   listview.NewTotals,
	})

	points := make([]SalesPoint, days)
	for i := range points {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		totals, _ := groups.Get(day)
		points[i] = SalesPoint{Day: day, Revenue: totals.Sum("total"), Orders: totals.Count}
	}
	return points
}
