package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// SavePreferencesInput replaces a viewer's stored preferences.
type SavePreferencesInput struct {
	Viewer        dashboard.ViewerContext `json:"viewer"`
	PageSize      int                     `json:"page_size"`
	AreaOrder     map[string][]string     `json:"area_order"`
	HiddenWidgets []string                `json:"hidden_widget_ids"`
}

type preferenceService interface {
	Preferences(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ViewerPreferences, error)
	SavePreferences(ctx context.Context, viewer dashboard.ViewerContext, prefs dashboard.ViewerPreferences) error
}

// SavePreferencesCommand persists per-viewer page size and layout overrides.
type SavePreferencesCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSavePreferencesCommand creates the command.
func NewSavePreferencesCommand(service preferenceService, telemetry Telemetry) *SavePreferencesCommand {
	return &SavePreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SavePreferencesInput] = (*SavePreferencesCommand)(nil)

// Execute stores the provided preferences for the viewer.
func (c *SavePreferencesCommand) Execute(ctx context.Context, msg SavePreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("preferences command requires viewer user id")
	}
	prefs := dashboard.ViewerPreferences{
		PageSize:      msg.PageSize,
		AreaOrder:     msg.AreaOrder,
		HiddenWidgets: make(map[string]bool, len(msg.HiddenWidgets)),
	}
	for _, id := range msg.HiddenWidgets {
		prefs.HiddenWidgets[id] = true
	}
	if err := c.service.SavePreferences(ctx, msg.Viewer, prefs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.preferences.command", map[string]any{
		"user_id":    msg.Viewer.UserID,
		"page_size":  msg.PageSize,
		"areas":      len(msg.AreaOrder),
		"hidden_cnt": len(msg.HiddenWidgets),
	})
	return nil
}

// ToggleWidgetInput hides or shows one widget for a viewer.
type ToggleWidgetInput struct {
	Viewer   dashboard.ViewerContext `json:"viewer"`
	WidgetID string                  `json:"widget_id"`
	Hidden   bool                    `json:"hidden"`
}

// ToggleWidgetCommand flips a single hidden flag, keeping the rest of the
// viewer's preferences.
type ToggleWidgetCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewToggleWidgetCommand creates the command.
func NewToggleWidgetCommand(service preferenceService, telemetry Telemetry) *ToggleWidgetCommand {
	return &ToggleWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleWidgetInput] = (*ToggleWidgetCommand)(nil)

// Execute loads, updates and stores the viewer preferences.
func (c *ToggleWidgetCommand) Execute(ctx context.Context, msg ToggleWidgetInput) error {
	if c.service == nil {
		return errors.New("toggle command requires service")
	}
	if msg.Viewer.UserID == "" || msg.WidgetID == "" {
		return errors.New("toggle command requires viewer user id and widget id")
	}
	prefs, err := c.service.Preferences(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	if prefs.HiddenWidgets == nil {
		prefs.HiddenWidgets = map[string]bool{}
	}
	if msg.Hidden {
		prefs.HiddenWidgets[msg.WidgetID] = true
	} else {
		delete(prefs.HiddenWidgets, msg.WidgetID)
	}
	if err := c.service.SavePreferences(ctx, msg.Viewer, prefs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.widget.toggle", map[string]any{
		"user_id":   msg.Viewer.UserID,
		"widget_id": msg.WidgetID,
		"hidden":    msg.Hidden,
	})
	return nil
}
