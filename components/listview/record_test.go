package listview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValueResolvesNestedPaths(t *testing.T) {
	r := Record{
		"customer": map[string]any{"name": "Amara", "address": map[string]any{"city": "Lagos"}},
		"flat.key": "kept",
	}

	v, ok := r.Value("customer.address.city")
	require.True(t, ok)
	assert.Equal(t, "Lagos", v)

	assert.Equal(t, "kept", r.String("flat.key"))
	_, ok = r.Value("customer.phone")
	assert.False(t, ok)
	_, ok = r.Value("customer.name.first")
	assert.False(t, ok)
}

func TestRecordNumberCoercesMissingToZero(t *testing.T) {
	r := Record{
		"float":  12.5,
		"int":    3,
		"number": json.Number("7.25"),
		"text":   " 4 ",
		"junk":   "n/a",
		"nil":    nil,
	}
	assert.Equal(t, 12.5, r.Number("float"))
	assert.Equal(t, 3.0, r.Number("int"))
	assert.Equal(t, 7.25, r.Number("number"))
	assert.Equal(t, 4.0, r.Number("text"))
	assert.Zero(t, r.Number("junk"))
	assert.Zero(t, r.Number("nil"))
	assert.Zero(t, r.Number("missing"))
}

func TestRecordNumberRejectsNonFiniteValues(t *testing.T) {
	r := Record{
		"nan":      "NaN",
		"lower":    "nan",
		"inf":      "Inf",
		"infinity": "-Infinity",
		"number":   json.Number("NaN"),
	}
	for _, key := range []string{"nan", "lower", "inf", "infinity", "number"} {
		assert.Zero(t, r.Number(key), key)
	}
}

func TestRecordTimeParsesCommonLayouts(t *testing.T) {
	r := Record{
		"created_at": "2024-03-01T10:00:00Z",
		"day":        "2024-03-02",
		"bad":        "yesterday",
	}
	ts, ok := r.Time("created_at")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), ts)

	day, ok := r.Time("day")
	require.True(t, ok)
	assert.Equal(t, 2, day.Day())

	_, ok = r.Time("bad")
	assert.False(t, ok)
}

func TestFlattenCarriesParent(t *testing.T) {
	orders := []Record{
		{"id": "o-1", "items": []any{
			map[string]any{"product_id": "p-1", "quantity": 2},
			map[string]any{"product_id": "p-2", "quantity": 1},
			"not-an-object",
		}},
		{"id": "o-2"},
		{"id": "o-3", "items": []map[string]any{{"product_id": "p-1", "quantity": 4}}},
	}

	items := Flatten(orders, "items")
	require.Len(t, items, 3)
	assert.Equal(t, "p-1", items[0].String("product_id"))
	assert.Equal(t, "o-1", items[0].String("parent.id"))
	assert.Equal(t, "o-3", items[2].String("parent.id"))
	assert.Equal(t, 4.0, items[2].Number("quantity"))
}
