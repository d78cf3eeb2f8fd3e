package listview

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a decoded JSON object (order, product, payout, driver...). Fields
// are addressed with dotted paths such as "customer.name".
type Record map[string]any

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// Value resolves a dotted path through nested objects.
func (r Record) Value(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}
	if v, ok := r[path]; ok {
		return v, true
	}
	var current any = map[string]any(r)
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Has reports whether the path resolves to a non-nil value.
func (r Record) Has(path string) bool {
	v, ok := r.Value(path)
	return ok && v != nil
}

// String returns the field rendered as text; missing fields yield "".
func (r Record) String(path string) string {
	v, ok := r.Value(path)
	if !ok {
		return ""
	}
	return stringify(v)
}

// Number returns the field as float64. Missing or non-numeric values count as
// zero so reducers can sum partial records.
func (r Record) Number(path string) float64 {
	v, ok := r.Value(path)
	if !ok {
		return 0
	}
	f, _ := toFloat(v)
	return f
}

// Time parses the field as a timestamp (RFC3339, date-time or date-only).
func (r Record) Time(path string) (time.Time, bool) {
	v, ok := r.Value(path)
	if !ok {
		return time.Time{}, false
	}
	return toTime(v)
}

// Flatten expands the array at path (e.g. an order's "items") into one record
// per element. Each produced record keeps the owning record under "parent".
// Elements that are not objects are ignored.
func Flatten(records []Record, path string) []Record {
	out := make([]Record, 0, len(records))
	for _, parent := range records {
		raw, ok := parent.Value(path)
		if !ok {
			continue
		}
		for _, item := range asSlice(raw) {
			child, ok := asMap(item)
			if !ok {
				continue
			}
			row := make(Record, len(child)+1)
			for k, v := range child {
				row[k] = v
			}
			row["parent"] = map[string]any(parent)
			out = append(out, row)
		}
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	}
	return nil, false
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []map[string]any:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	case []Record:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	}
	return nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	f, ok := rawFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func rawFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case string:
		val = strings.TrimSpace(val)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// isFalsy mirrors the "missing reference" checks of the dashboard views: nil,
// empty strings, false and zero never form a group.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case bool:
		return !val
	}
	if f, ok := toFloat(v); ok {
		return f == 0
	}
	return false
}
