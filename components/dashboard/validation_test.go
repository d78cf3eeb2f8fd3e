package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func definitionFor(t *testing.T, code string) WidgetDefinition {
	t.Helper()
	for _, def := range DefaultWidgetDefinitions() {
		if def.Code == code {
			return def
		}
	}
	t.Fatalf("definition %s not found", code)
	return WidgetDefinition{}
}

func TestJSONSchemaValidator(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := definitionFor(t, WidgetRecordTable)

	require.NoError(t, validator.Validate(def, map[string]any{
		"collection": "orders",
		"columns":    []string{"id", "total"},
		"page_size":  25,
	}))

	err := validator.Validate(def, map[string]any{"columns": []string{"id"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	err = validator.Validate(def, map[string]any{"collection": "orders", "colour": "red"})
	assert.Error(t, err, "additional properties are rejected")
}

func TestJSONSchemaValidatorWithoutSchema(t *testing.T) {
	validator := NewJSONSchemaValidator()
	assert.NoError(t, validator.Validate(WidgetDefinition{Code: "free"}, map[string]any{"anything": true}))
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := definitionFor(t, WidgetSalesChart)

	require.NoError(t, validator.Validate(def, map[string]any{"days": 7}))
	require.NoError(t, validator.Validate(def, nil))
	assert.Len(t, validator.compiled, 1)
}
