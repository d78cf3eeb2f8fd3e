package listview

import "encoding/json"

func sampleOrders() []Record {
	return []Record{
		{"id": "o-1", "status": "delivered", "total": 120.5, "customer": map[string]any{"name": "Amara Okafor"}, "driver": map[string]any{"id": "d-1"}},
		{"id": "o-2", "status": "Pending", "total": 40.0, "customer": map[string]any{"name": "Bruno Diaz"}, "driver": map[string]any{"id": "d-2"}},
		{"id": "o-3", "status": "delivered", "total": json.Number("75.25"), "customer": map[string]any{"name": "Chen Wei"}, "driver": map[string]any{"id": "d-1"}},
		{"id": "o-4", "status": "cancelled", "customer": map[string]any{"name": "Dana Okafor"}},
		{"id": "o-5", "status": "pending", "total": "19.75", "customer": map[string]any{"name": "Émile Durand"}, "driver": map[string]any{"id": "d-2"}},
	}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String("id")
	}
	return out
}
