package dashboard

import (
	"context"
	"errors"
)

// Notifier publishes refresh events to an external channel (push service,
// message bus, webhook relay).
type Notifier interface {
	PublishRefresh(ctx context.Context, channel string, event RefreshEvent) error
}

// NotifierHook forwards refresh events to a Notifier.
type NotifierHook struct {
	Client  Notifier
	Channel string
}

// CollectionChanged implements RefreshHook.
func (h *NotifierHook) CollectionChanged(ctx context.Context, event RefreshEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	channel := h.Channel
	if channel == "" {
		channel = "dashboard." + event.Collection
	}
	return h.Client.PublishRefresh(ctx, channel, event)
}

// MultiRefreshHook invokes every hook in order. All hooks run even when one
// fails; the errors are joined.
type MultiRefreshHook []RefreshHook

// CollectionChanged implements RefreshHook.
func (m MultiRefreshHook) CollectionChanged(ctx context.Context, event RefreshEvent) error {
	var errs error
	for _, hook := range m {
		if hook == nil {
			continue
		}
		if err := hook.CollectionChanged(ctx, event); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
