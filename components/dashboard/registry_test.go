package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHoldsDefaultDefinitions(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	for _, code := range []string{WidgetRevenueOverview, WidgetSalesChart, WidgetTopProducts, WidgetOrderStatus, WidgetPaymentStatus, WidgetRecordTable, WidgetDriverOrders} {
		def, ok := reg.Definition(code)
		require.True(t, ok, code)
		assert.NotEmpty(t, def.Schema, code)
	}

	defs := reg.Definitions()
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Code, defs[i].Code)
	}
}

func TestRegistryProviderRequiresDefinition(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	noop := ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) { return WidgetData{}, nil })
	assert.Error(t, reg.RegisterProvider("commerce.widget.unknown", noop))
	assert.Error(t, reg.RegisterProvider(WidgetSalesChart, nil))
	assert.Error(t, reg.RegisterDefinition(WidgetDefinition{}))

	require.NoError(t, reg.RegisterProvider(WidgetSalesChart, noop))
	_, ok := reg.Provider(WidgetSalesChart)
	assert.True(t, ok)
}

func TestRegistryAppliesWidgetHooks(t *testing.T) {
	const code = "commerce.widget.test_hook"
	RegisterWidgetHook(func(reg *Registry) error {
		return reg.RegisterDefinition(WidgetDefinition{Code: code, Name: "Hooked"})
	})

	reg, err := NewRegistry()
	require.NoError(t, err)
	def, ok := reg.Definition(code)
	require.True(t, ok)
	assert.Equal(t, "Hooked", def.Name)
}
