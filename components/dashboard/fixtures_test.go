package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type stubSource struct {
	mu    sync.Mutex
	data  map[string][]listview.Record
	errs  map[string]error
	calls map[string]int
}

func newStubSource() *stubSource {
	return &stubSource{
		data:  commerceFixtures(),
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (s *stubSource) Records(_ context.Context, collection string) ([]listview.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[collection]++
	if err := s.errs[collection]; err != nil {
		return nil, err
	}
	records, ok := s.data[collection]
	if !ok {
		return nil, errors.New("collection not found")
	}
	return records, nil
}

func (s *stubSource) callCount(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[collection]
}

func item(id, name string, qty, price float64) map[string]any {
	return map[string]any{"product_id": id, "name": name, "quantity": qty, "price": price}
}

// Expected figures for a 30 day window ending at fixedNow:
// current orders o-1,o-2,o-3,o-5; previous o-4.
func commerceFixtures() map[string][]listview.Record {
	return map[string][]listview.Record{
		CollectionOrders: {
			{
				"id": "o-1", "status": "delivered", "total": 100.0, "created_at": "2024-06-29T10:00:00Z",
				"customer": map[string]any{"name": "Amara Okafor"}, "driver": map[string]any{"id": "d-1"},
				"items": []any{item("p-1", "Espresso beans", 2, 20), item("p-2", "Grinder", 1, 60)},
			},
			{
				"id": "o-2", "status": "pending", "total": 50.0, "created_at": "2024-06-28T09:30:00Z",
				"customer": map[string]any{"name": "Bruno Diaz"}, "driver": map[string]any{"id": "d-2"},
				"items": []any{item("p-1", "Espresso beans", 1, 20), item("p-3", "Filter papers", 3, 10)},
			},
			{
				"id": "o-3", "status": "cancelled", "total": 80.0, "created_at": "2024-06-27T15:00:00Z",
				"customer": map[string]any{"name": "Chen Wei"}, "driver": map[string]any{"id": "d-1"},
				"items": []any{item("p-2", "Grinder", 1, 60), item("p-3", "Filter papers", 2, 10)},
			},
			{
				"id": "o-4", "status": "Delivered", "total": 40.0, "created_at": "2024-05-20T11:00:00Z",
				"customer": map[string]any{"name": "Dana Okafor"}, "driver": map[string]any{"id": "d-3"},
				"items": []any{item("p-3", "Filter papers", 4, 10)},
			},
			{
				"id": "o-5", "status": "out_for_delivery", "total": 30.0, "created_at": "2024-06-30T08:00:00Z",
				"customer": map[string]any{"name": "Emile Durand"}, "driver": map[string]any{"id": "d-2"},
				"items": []any{item("p-1", "Espresso beans", 1, 20), item("p-3", "Filter papers", 1, 10)},
			},
		},
		CollectionPayouts: {
			{"id": "pay-1", "driver_id": "d-1", "amount": 25.0, "payment_status": "paid", "created_at": "2024-06-29T18:00:00Z"},
			{"id": "pay-2", "driver_id": "d-2", "amount": 15.0, "payment_status": "pending", "created_at": "2024-06-28T18:00:00Z"},
			{"id": "pay-3", "driver_id": "d-3", "amount": 10.0, "payment_status": "paid", "created_at": "2024-05-21T18:00:00Z"},
			{"id": "pay-4", "driver_id": "d-1", "amount": 50.0, "payment_status": "failed", "created_at": "2024-06-15T18:00:00Z"},
		},
		CollectionDrivers: {
			{"id": "d-1", "name": "Kofi", "status": "available"},
			{"id": "d-2", "name": "Lina", "status": "busy"},
			{"id": "d-3", "name": "Marek", "status": "offline"},
		},
		CollectionProducts: {
			{"id": "p-1", "name": "Espresso beans", "price": 20.0},
			{"id": "p-2", "name": "Grinder", "price": 60.0},
			{"id": "p-3", "name": "Filter papers", "price": 10.0},
		},
		CollectionCustomers: {},
	}
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
	last   map[string]map[string]any
}

func (t *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
	if t.last == nil {
		t.last = map[string]map[string]any{}
	}
	t.last[event] = payload
}

func (t *recordingTelemetry) has(event string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.last[event]
	return ok
}

type collectingHook struct {
	mu     sync.Mutex
	events []RefreshEvent
	err    error
}

func (h *collectingHook) CollectionChanged(_ context.Context, event RefreshEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func noCacheCharts() *ChartRenderer {
	return NewChartRenderer(WithChartCache(nil))
}
