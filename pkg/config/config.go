package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/pkg/telemetry"
)

// EnvPrefix prefixes every environment override, e.g.
// COMMERCE_DASHBOARD_COMMERCE_API_KEY for commerce.api_key.
const EnvPrefix = "COMMERCE_DASHBOARD"

// Config holds the settings of a dashboard server.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Commerce  CommerceConfig  `mapstructure:"commerce"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"base_path"`
}

// CommerceConfig points at the commerce API. Mock serves generated demo data.
type CommerceConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Mock        bool          `mapstructure:"mock"`
	Concurrency int           `mapstructure:"concurrency"`
}

// DashboardConfig tunes the dashboard service.
type DashboardConfig struct {
	ManifestPath    string        `mapstructure:"manifest_path"`
	DefaultPageSize int           `mapstructure:"default_page_size"`
	ChartCacheTTL   time.Duration `mapstructure:"chart_cache_ttl"`
	ChartTheme      string        `mapstructure:"chart_theme"`
	Title           string        `mapstructure:"title"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// RedisConfig enables the Redis chart cache and refresh publisher when Addr
// is set.
type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	DB      int    `mapstructure:"db"`
	Prefix  string `mapstructure:"prefix"`
	Channel string `mapstructure:"channel"`
}

// Load reads defaults, then the optional file at path, then environment
// overrides.
func Load(path string) (*Config, error) {
	return LoadWithViper(viper.New(), path)
}

// LoadWithViper is Load on a caller supplied viper instance.
func LoadWithViper(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "/admin")

	v.SetDefault("commerce.base_url", "")
	v.SetDefault("commerce.api_key", "")
	v.SetDefault("commerce.timeout", "10s")
	v.SetDefault("commerce.mock", false)
	v.SetDefault("commerce.concurrency", 4)

	v.SetDefault("dashboard.manifest_path", "")
	v.SetDefault("dashboard.default_page_size", 10)
	v.SetDefault("dashboard.chart_cache_ttl", "5m")
	v.SetDefault("dashboard.chart_theme", "")
	v.SetDefault("dashboard.title", "Commerce dashboard")

	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "info")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "commerce-dashboard:")
	v.SetDefault("redis.channel", "")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if !c.Commerce.Mock && strings.TrimSpace(c.Commerce.BaseURL) == "" {
		errs = append(errs, errors.New("commerce.base_url is required unless commerce.mock is set"))
	}
	if c.Commerce.Timeout <= 0 {
		errs = append(errs, errors.New("commerce.timeout must be positive"))
	}
	if c.Commerce.Concurrency < 0 {
		errs = append(errs, errors.New("commerce.concurrency must not be negative"))
	}
	if c.Dashboard.DefaultPageSize < 1 || c.Dashboard.DefaultPageSize > dashboard.MaxPageSize {
		errs = append(errs, fmt.Errorf("dashboard.default_page_size must be between 1 and %d", dashboard.MaxPageSize))
	}
	if c.Dashboard.ChartCacheTTL < 0 {
		errs = append(errs, errors.New("dashboard.chart_cache_ttl must not be negative"))
	}
	if _, err := telemetry.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}
