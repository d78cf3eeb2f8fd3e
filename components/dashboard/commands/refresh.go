package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// RefreshCollectionInput announces that records of a collection changed.
type RefreshCollectionInput struct {
	Collection string `json:"collection"`
	Reason     string `json:"reason,omitempty"`
}

type refreshNotifier interface {
	NotifyCollectionChanged(ctx context.Context, event dashboard.RefreshEvent) error
}

// RefreshCollectionCommand triggers refresh hooks without forcing transports.
type RefreshCollectionCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshCollectionCommand creates the command.
func NewRefreshCollectionCommand(service refreshNotifier, telemetry Telemetry) *RefreshCollectionCommand {
	return &RefreshCollectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshCollectionInput] = (*RefreshCollectionCommand)(nil)

// Execute notifies the dashboard service's refresh hooks.
func (c *RefreshCollectionCommand) Execute(ctx context.Context, msg RefreshCollectionInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.NotifyCollectionChanged(ctx, dashboard.RefreshEvent{
		Collection: msg.Collection,
		Reason:     msg.Reason,
	}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.collection.refresh", map[string]any{
		"collection": msg.Collection,
		"reason":     msg.Reason,
	})
	return nil
}
