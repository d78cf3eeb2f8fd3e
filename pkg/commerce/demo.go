package commerce

import (
	"fmt"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// DemoOrderCount is the number of orders generated by DemoData.
const DemoOrderCount = 60

type demoProduct struct {
	id, name, category string
	price              float64
}

var demoProducts = []demoProduct{
	{"p-1", "Espresso beans 1kg", "coffee", 24},
	{"p-2", "Burr grinder", "equipment", 89},
	{"p-3", "Paper filters (100)", "accessories", 6.5},
	{"p-4", "Oat milk 1l", "dairy", 3.2},
	{"p-5", "Ceramic dripper", "equipment", 28},
}

var demoCustomers = []string{"Amara Okafor", "Bruno Diaz", "Chen Wei", "Dana Kowalski", "Emile Durand", "Farah Haddad", "Gustavo Lima"}

var demoDrivers = []struct{ id, name, status string }{
	{"d-1", "Kofi Mensah", "available"},
	{"d-2", "Lina Berg", "busy"},
	{"d-3", "Marek Nowak", "offline"},
	{"d-4", "Noor Aziz", "busy"},
}

var demoOrderStatuses = []string{"delivered", "delivered", "out_for_delivery", "pending", "preparing", "cancelled", "confirmed"}

var demoPayoutStatuses = []string{"paid", "paid", "pending", "failed"}

// DemoData generates a deterministic commerce data set ending at now: orders
// spread over the last 45 days, their products, customers, drivers and
// driver payouts.
func DemoData(now time.Time) MockData {
	now = now.UTC()
	data := MockData{
		dashboard.CollectionProducts:  make([]listview.Record, 0, len(demoProducts)),
		dashboard.CollectionCustomers: make([]listview.Record, 0, len(demoCustomers)),
		dashboard.CollectionDrivers:   make([]listview.Record, 0, len(demoDrivers)),
		dashboard.CollectionOrders:    make([]listview.Record, 0, DemoOrderCount),
		dashboard.CollectionPayouts:   []listview.Record{},
	}
	for _, p := range demoProducts {
		data[dashboard.CollectionProducts] = append(data[dashboard.CollectionProducts], listview.Record{
			"id": p.id, "name": p.name, "category": p.category, "price": p.price,
		})
	}
	for i, name := range demoCustomers {
		data[dashboard.CollectionCustomers] = append(data[dashboard.CollectionCustomers], listview.Record{
			"id": fmt.Sprintf("c-%d", i+1), "name": name,
		})
	}
	for _, d := range demoDrivers {
		data[dashboard.CollectionDrivers] = append(data[dashboard.CollectionDrivers], listview.Record{
			"id": d.id, "name": d.name, "status": d.status,
		})
	}

	for i := range DemoOrderCount {
		created := now.Add(-time.Duration(i) * 18 * time.Hour)
		driver := demoDrivers[i%len(demoDrivers)]
		status := demoOrderStatuses[i%len(demoOrderStatuses)]

		items := []any{demoItem(demoProducts[i%len(demoProducts)], float64(1+i%3))}
		if i%2 == 0 {
			items = append(items, demoItem(demoProducts[(i+2)%len(demoProducts)], 1))
		}
		var total float64
		for _, it := range items {
			line := it.(map[string]any)
			total += line["quantity"].(float64) * line["price"].(float64)
		}

		payment := "paid"
		switch status {
		case "pending":
			payment = "pending"
		case "cancelled":
			payment = "refunded"
		}

		orderID := fmt.Sprintf("o-%03d", i+1)
		data[dashboard.CollectionOrders] = append(data[dashboard.CollectionOrders], listview.Record{
			"id":             orderID,
			"status":         status,
			"payment_status": payment,
			"total":          total,
			"created_at":     created.Format(time.RFC3339),
			"customer": map[string]any{
				"id":   fmt.Sprintf("c-%d", i%len(demoCustomers)+1),
				"name": demoCustomers[i%len(demoCustomers)],
			},
			"driver": map[string]any{"id": driver.id, "name": driver.name},
			"items":  items,
		})

		if i%3 == 0 {
			n := i / 3
			data[dashboard.CollectionPayouts] = append(data[dashboard.CollectionPayouts], listview.Record{
				"id":             fmt.Sprintf("pay-%03d", n+1),
				"order_id":       orderID,
				"driver_id":      driver.id,
				"amount":         5 + float64(n%4)*2.5,
				"payment_status": demoPayoutStatuses[n%len(demoPayoutStatuses)],
				"created_at":     created.Add(2 * time.Hour).Format(time.RFC3339),
			})
		}
	}
	return data
}

func demoItem(p demoProduct, qty float64) map[string]any {
	return map[string]any{
		"product_id": p.id,
		"name":       p.name,
		"category":   p.category,
		"quantity":   qty,
		"price":      p.price,
	}
}
