package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithMockEnv(t *testing.T) {
	t.Setenv("COMMERCE_DASHBOARD_COMMERCE_MOCK", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/admin", cfg.Server.BasePath)
	assert.True(t, cfg.Commerce.Mock)
	assert.Equal(t, 10*time.Second, cfg.Commerce.Timeout)
	assert.Equal(t, 4, cfg.Commerce.Concurrency)
	assert.Equal(t, 10, cfg.Dashboard.DefaultPageSize)
	assert.Equal(t, 5*time.Minute, cfg.Dashboard.ChartCacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "commerce-dashboard:", cfg.Redis.Prefix)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := `
server:
  addr: ":9000"
commerce:
  base_url: https://shop.example.com/api
  api_key: from-file
dashboard:
  default_page_size: 25
  chart_cache_ttl: 30s
log:
  mode: production
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("COMMERCE_DASHBOARD_COMMERCE_API_KEY", "from-env")
	t.Setenv("COMMERCE_DASHBOARD_REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "https://shop.example.com/api", cfg.Commerce.BaseURL)
	assert.Equal(t, "from-env", cfg.Commerce.APIKey)
	assert.Equal(t, 25, cfg.Dashboard.DefaultPageSize)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.ChartCacheTTL)
	assert.Equal(t, "production", cfg.Log.Mode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Setenv("COMMERCE_DASHBOARD_DASHBOARD_DEFAULT_PAGE_SIZE", "500")
	t.Setenv("COMMERCE_DASHBOARD_LOG_LEVEL", "chatty")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commerce.base_url is required")
	assert.Contains(t, err.Error(), "dashboard.default_page_size")
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}
