package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func instanceIDs(widgets []WidgetInstance) []string {
	ids := make([]string, len(widgets))
	for i, w := range widgets {
		ids[i] = w.ID
	}
	return ids
}

func TestApplyOrderOverride(t *testing.T) {
	widgets := []WidgetInstance{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Equal(t, []string{"c", "a", "b"}, instanceIDs(applyOrderOverride(widgets, []string{"c", "missing", "c", "a"})))
	assert.Equal(t, []string{"a", "b", "c"}, instanceIDs(applyOrderOverride(widgets, nil)))
}

func TestApplyHiddenFilter(t *testing.T) {
	widgets := []WidgetInstance{{ID: "a"}, {ID: "b"}}

	assert.Equal(t, []string{"b"}, instanceIDs(applyHiddenFilter(widgets, map[string]bool{"a": true, "b": false})))
	assert.Equal(t, []string{"a", "b"}, instanceIDs(applyHiddenFilter(widgets, nil)))
}
