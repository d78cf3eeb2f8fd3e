package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-commerce-dashboard/components/dashboard/queries"
)

var errNotConfigured = errors.New("httpapi: operation not configured")

// Executor is the transport-neutral surface shared by the net/http handlers
// and the go-router adapter.
type Executor interface {
	ListCollection(ctx context.Context, req dashboard.ListRequest) (dashboard.ListPage, error)
	Preferences(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ViewerPreferences, error)
	SavePreferences(ctx context.Context, input commands.SavePreferencesInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Toggle(ctx context.Context, input commands.ToggleWidgetInput) error
	Refresh(ctx context.Context, input commands.RefreshCollectionInput) error
}

// CommandExecutor implements Executor on top of go-command commanders and
// queriers.
type CommandExecutor struct {
	Collection     gocommand.Querier[dashboard.ListRequest, dashboard.ListPage]
	ViewerPrefs    gocommand.Querier[dashboard.ViewerContext, dashboard.ViewerPreferences]
	SavePrefs      gocommand.Commander[commands.SavePreferencesInput]
	ReorderWidgets gocommand.Commander[commands.ReorderWidgetsInput]
	ToggleWidget   gocommand.Commander[commands.ToggleWidgetInput]
	RefreshCommand gocommand.Commander[commands.RefreshCollectionInput]
}

// NewServiceExecutor wires the dashboard commands and queries to svc.
func NewServiceExecutor(svc *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		Collection:     queries.NewCollectionQuery(svc),
		ViewerPrefs:    queries.NewPreferencesQuery(svc),
		SavePrefs:      commands.NewSavePreferencesCommand(svc, telemetry),
		ReorderWidgets: commands.NewReorderWidgetsCommand(svc, telemetry),
		ToggleWidget:   commands.NewToggleWidgetCommand(svc, telemetry),
		RefreshCommand: commands.NewRefreshCollectionCommand(svc, telemetry),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) ListCollection(ctx context.Context, req dashboard.ListRequest) (dashboard.ListPage, error) {
	if e.Collection == nil {
		return dashboard.ListPage{}, errNotConfigured
	}
	return e.Collection.Query(ctx, req)
}

func (e *CommandExecutor) Preferences(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ViewerPreferences, error) {
	if e.ViewerPrefs == nil {
		return dashboard.ViewerPreferences{}, errNotConfigured
	}
	return e.ViewerPrefs.Query(ctx, viewer)
}

func (e *CommandExecutor) SavePreferences(ctx context.Context, input commands.SavePreferencesInput) error {
	return execute(ctx, e.SavePrefs, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	return execute(ctx, e.ReorderWidgets, input)
}

func (e *CommandExecutor) Toggle(ctx context.Context, input commands.ToggleWidgetInput) error {
	return execute(ctx, e.ToggleWidget, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshCollectionInput) error {
	return execute(ctx, e.RefreshCommand, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errNotConfigured
	}
	return cmd.Execute(ctx, msg)
}
