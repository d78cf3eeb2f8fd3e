package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// ReorderWidgetsInput contains the reorder payload.
type ReorderWidgetsInput struct {
	Viewer    dashboard.ViewerContext `json:"viewer"`
	AreaCode  string                  `json:"area"`
	WidgetIDs []string                `json:"widget_ids"`
}

// ReorderWidgetsCommand stores a viewer's widget order for one area.
type ReorderWidgetsCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewReorderWidgetsCommand builds the command.
func NewReorderWidgetsCommand(service preferenceService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

// Execute applies the new ordering. An empty list resets the area to the
// manifest order.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	if msg.Viewer.UserID == "" || msg.AreaCode == "" {
		return errors.New("reorder command requires viewer user id and area")
	}
	prefs, err := c.service.Preferences(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	if prefs.AreaOrder == nil {
		prefs.AreaOrder = map[string][]string{}
	}
	if len(msg.WidgetIDs) == 0 {
		delete(prefs.AreaOrder, msg.AreaCode)
	} else {
		prefs.AreaOrder[msg.AreaCode] = append([]string(nil), msg.WidgetIDs...)
	}
	if err := c.service.SavePreferences(ctx, msg.Viewer, prefs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.widget.reorder", map[string]any{
		"area_code": msg.AreaCode,
		"count":     len(msg.WidgetIDs),
	})
	return nil
}
