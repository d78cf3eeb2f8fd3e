package telemetry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// NewLogger builds a zap logger. mode "prod"/"production" selects JSON
// output; anything else the development console encoder. level is one of
// debug, info, warn or error (default info).
func NewLogger(mode, level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// ParseLevel parses a log level name; empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("telemetry: %w", err)
	}
	return lvl, nil
}

// Telemetry implements dashboard.Telemetry by logging each event with its
// payload as structured fields.
type Telemetry struct {
	Logger *zap.Logger
	// Level is the level events are logged at (default debug). Events whose
	// name ends in ".error" or "_error" are always logged as warnings.
	Level zapcore.Level
}

// New wraps logger. A nil logger produces a no-op logger.
func New(logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Telemetry{Logger: logger.Named("dashboard"), Level: zapcore.DebugLevel}
}

var _ dashboard.Telemetry = (*Telemetry)(nil)

// Record implements dashboard.Telemetry.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	if t == nil || t.Logger == nil {
		return
	}
	level := t.Level
	if strings.HasSuffix(event, ".error") || strings.HasSuffix(event, "_error") {
		level = zapcore.WarnLevel
	}
	if ce := t.Logger.Check(level, event); ce != nil {
		ce.Write(Fields(payload)...)
	}
}

// Fields converts a payload into zap fields in key order.
func Fields(payload map[string]any) []zap.Field {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	return fields
}
