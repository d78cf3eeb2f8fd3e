package dashboard

// Dashboard areas.
const (
	AreaMain    = "admin.dashboard.main"
	AreaSidebar = "admin.dashboard.sidebar"
	AreaFooter  = "admin.dashboard.footer"
)

// Commerce widget codes.
const (
	WidgetRevenueOverview = "admin.widget.revenue_overview"
	WidgetTopProducts     = "admin.widget.top_products"
	WidgetOrderStatus     = "admin.widget.order_status"
	WidgetPaymentStatus   = "admin.widget.payment_status"
	WidgetRecordTable     = "admin.widget.record_table"
	WidgetDriverOrders    = "admin.widget.driver_orders"
	WidgetSalesChart      = "admin.widget.sales_chart"
)

// Commerce collections.
const (
	CollectionOrders    = "orders"
	CollectionProducts  = "products"
	CollectionPayouts   = "payouts"
	CollectionDrivers   = "drivers"
	CollectionCustomers = "customers"
)

var defaultAreaDefinitions = []WidgetAreaDefinition{
	{Code: AreaMain, Name: "Admin Dashboard (Main)", Description: "Primary dashboard canvas"},
	{Code: AreaSidebar, Name: "Admin Dashboard (Sidebar)", Description: "Secondary widgets"},
	{Code: AreaFooter, Name: "Admin Dashboard (Footer)", Description: "Record tables"},
}

// DefaultAreaDefinitions returns the built-in dashboard areas.
func DefaultAreaDefinitions() []WidgetAreaDefinition {
	return append([]WidgetAreaDefinition(nil), defaultAreaDefinitions...)
}

// DefaultCollections lists the collections exposed by the list API.
func DefaultCollections() []string {
	return []string{CollectionOrders, CollectionProducts, CollectionPayouts, CollectionDrivers, CollectionCustomers}
}

func pageSizeSchema() map[string]any {
	return map[string]any{"type": "integer", "minimum": 1, "maximum": MaxPageSize}
}

func chartKindSchema() map[string]any {
	return map[string]any{"type": "string", "enum": []string{ChartPie, ChartBar}}
}

// DefaultWidgetDefinitions returns the commerce widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	return []WidgetDefinition{
		{
			Code:        WidgetRevenueOverview,
			Name:        "Revenue Overview",
			Description: "Revenue, orders, payouts and active drivers compared with the previous period",
			Category:    "stats",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"window_days": map[string]any{"type": "integer", "minimum": 1, "maximum": 365},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetTopProducts,
			Name:        "Top Products",
			Description: "Best selling products by revenue or units",
			Category:    "charts",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit":  map[string]any{"type": "integer", "minimum": 1, "maximum": 50},
					"metric": map[string]any{"type": "string", "enum": []string{"revenue", "quantity"}},
					"title":  map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetOrderStatus,
			Name:        "Orders by Status",
			Description: "Share of orders in each fulfilment status",
			Category:    "charts",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"chart": chartKindSchema(),
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetPaymentStatus,
			Name:        "Payouts by Payment Status",
			Description: "Payout amounts grouped by payment status",
			Category:    "charts",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"chart": chartKindSchema(),
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetRecordTable,
			Name:        "Record Table",
			Description: "Searchable, sortable, paginated table over a collection",
			Category:    "tables",
			Schema: map[string]any{
				"type":     "object",
				"required": []string{"collection"},
				"properties": map[string]any{
					"collection":    map[string]any{"type": "string", "minLength": 1},
					"title":         map[string]any{"type": "string"},
					"columns":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"search":        map[string]any{"type": "string"},
					"search_fields": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"filters":       map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
					"sort_by":       map[string]any{"type": "string"},
					"direction":     map[string]any{"type": "string", "enum": []string{"asc", "desc"}},
					"page_size":     pageSizeSchema(),
					"status_domain": map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetDriverOrders,
			Name:        "Driver Orders",
			Description: "Orders delivered by a single driver",
			Category:    "tables",
			Schema: map[string]any{
				"type":     "object",
				"required": []string{"driver_id"},
				"properties": map[string]any{
					"driver_id": map[string]any{"type": "string", "minLength": 1},
					"status":    map[string]any{"type": "string"},
					"page_size": pageSizeSchema(),
				},
				"additionalProperties": false,
			},
		},
		{
			Code:        WidgetSalesChart,
			Name:        "Sales Chart",
			Description: "Daily revenue with an optional order count series",
			Category:    "charts",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"days":       map[string]any{"type": "integer", "minimum": 1, "maximum": 90},
					"comparison": map[string]any{"type": "string", "enum": []string{"orders", "none"}},
					"title":      map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		},
	}
}

// DefaultLayoutManifest returns the starter commerce dashboard.
func DefaultLayoutManifest() *LayoutManifest {
	doc := &LayoutManifest{
		Version:     manifestVersionV1,
		Name:        "commerce",
		Collections: DefaultCollections(),
		Areas: []ManifestArea{
			{
				Code: AreaMain,
				Widgets: []ManifestWidget{
					{ID: "revenue-overview", Definition: WidgetRevenueOverview, Configuration: map[string]any{"window_days": 30}},
					{ID: "sales-chart", Definition: WidgetSalesChart, Configuration: map[string]any{"days": 14, "comparison": "orders"}},
					{ID: "top-products", Definition: WidgetTopProducts, Configuration: map[string]any{"limit": 5, "metric": "revenue"}},
				},
			},
			{
				Code: AreaSidebar,
				Widgets: []ManifestWidget{
					{ID: "order-status", Definition: WidgetOrderStatus, Configuration: map[string]any{"chart": ChartPie}},
					{ID: "payment-status", Definition: WidgetPaymentStatus, Configuration: map[string]any{"chart": ChartPie}, Roles: []string{"admin", "finance"}},
				},
			},
			{
				Code: AreaFooter,
				Widgets: []ManifestWidget{
					{ID: "recent-orders", Definition: WidgetRecordTable, Configuration: map[string]any{
						"collection":    CollectionOrders,
						"title":         "Recent orders",
						"columns":       []string{"id", "customer.name", "status", "total", "created_at"},
						"sort_by":       "created_at",
						"direction":     "desc",
						"page_size":     10,
						"status_domain": StatusDomainOrder,
					}},
				},
			},
		},
	}
	doc.applyDefaults()
	return doc
}

func defaultStatusDisplays() map[string]map[string]StatusDisplay {
	return map[string]map[string]StatusDisplay{
		StatusDomainOrder: {
			"pending":          {Label: "Pending", Color: "amber", Icon: "clock", Labels: map[string]string{"es": "Pendiente"}},
			"confirmed":        {Label: "Confirmed", Color: "blue", Icon: "check", Labels: map[string]string{"es": "Confirmado"}},
			"preparing":        {Label: "Preparing", Color: "indigo", Icon: "package", Labels: map[string]string{"es": "En preparación"}},
			"out_for_delivery": {Label: "Out for delivery", Color: "purple", Icon: "truck", Labels: map[string]string{"es": "En camino"}},
			"delivered":        {Label: "Delivered", Color: "green", Icon: "check-circle", Labels: map[string]string{"es": "Entregado"}},
			"cancelled":        {Label: "Cancelled", Color: "red", Icon: "x-circle", Labels: map[string]string{"es": "Cancelado"}},
		},
		StatusDomainPayment: {
			"pending":  {Label: "Pending", Color: "amber", Icon: "clock"},
			"paid":     {Label: "Paid", Color: "green", Icon: "credit-card"},
			"failed":   {Label: "Failed", Color: "red", Icon: "alert-triangle"},
			"refunded": {Label: "Refunded", Color: "gray", Icon: "rotate-ccw"},
		},
		StatusDomainDriver: {
			"available": {Label: "Available", Color: "green", Icon: "user-check"},
			"busy":      {Label: "On delivery", Color: "amber", Icon: "truck"},
			"offline":   {Label: "Offline", Color: "gray", Icon: "moon"},
		},
	}
}
