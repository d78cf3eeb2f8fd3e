package commerce

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

func TestMockClientReturnsCopies(t *testing.T) {
	seed := []listview.Record{{"id": "o-1", "status": "pending"}}
	client := NewMockClient(MockData{"orders": seed})
	seed[0]["status"] = "mutated"

	records, err := client.FetchCollection(context.Background(), "orders")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if records[0]["status"] != "pending" {
		t.Fatalf("fixtures leaked caller mutation: %#v", records)
	}
	records[0]["status"] = "delivered"
	again, _ := client.FetchCollection(context.Background(), "orders")
	if again[0]["status"] != "pending" {
		t.Fatalf("client leaked returned record: %#v", again)
	}

	client.Append("orders", listview.Record{"id": "o-2"})
	client.Put("drivers", []listview.Record{{"id": "d-1"}})
	orders, _ := client.FetchCollection(context.Background(), "orders")
	drivers, _ := client.FetchCollection(context.Background(), "drivers")
	if len(orders) != 2 || len(drivers) != 1 {
		t.Fatalf("unexpected sizes: %d orders, %d drivers", len(orders), len(drivers))
	}

	if _, err := client.FetchCollection(context.Background(), "missing"); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestDemoDataIsDeterministic(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	first := DemoData(now)
	second := DemoData(now)

	orders := first[dashboard.CollectionOrders]
	if len(orders) != DemoOrderCount {
		t.Fatalf("expected %d orders, got %d", DemoOrderCount, len(orders))
	}
	if len(first[dashboard.CollectionPayouts]) != DemoOrderCount/3 {
		t.Fatalf("expected a payout every third order, got %d", len(first[dashboard.CollectionPayouts]))
	}
	if orders[0]["created_at"] != now.Format(time.RFC3339) {
		t.Fatalf("expected newest order at now, got %v", orders[0]["created_at"])
	}
	for i, order := range orders {
		if order["total"] != second[dashboard.CollectionOrders][i]["total"] {
			t.Fatalf("order %d differs between runs", i)
		}
		if order.Number("total") <= 0 {
			t.Fatalf("order %s has no total", order["id"])
		}
	}
	// o-001: 1x espresso (24) + 1x paper filters (6.5)
	if total := orders[0].Number("total"); total != 30.5 {
		t.Fatalf("expected first order total 30.5, got %v", total)
	}
}
