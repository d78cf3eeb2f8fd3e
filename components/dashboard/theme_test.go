package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeCSSVariables(t *testing.T) {
	theme := &Theme{Tokens: map[string]string{"color.primary": "#0f766e", "--radius": "6px", "empty": ""}}

	assert.Equal(t, map[string]string{"--color-primary": "#0f766e", "--radius": "6px"}, theme.CSSVariables())
	assert.Equal(t, "--color-primary: #0f766e; --radius: 6px;", theme.CSSVariablesInline())

	var none *Theme
	assert.Empty(t, none.CSSVariablesInline())
	assert.Nil(t, none.payload())
}

func TestThemeAssets(t *testing.T) {
	assets := ThemeAssets{
		Prefix: "https://static.example.com/",
		Values: map[string]string{"logo": "/img/logo.svg", "favicon": "https://cdn.example.com/favicon.ico"},
	}
	assert.Equal(t, "https://static.example.com/img/logo.svg", assets.AssetURL("logo"))
	assert.Equal(t, "https://cdn.example.com/favicon.ico", assets.AssetURL("favicon"))
	assert.Empty(t, assets.AssetURL("missing"))
	assert.Len(t, assets.Resolved(), 2)
}
