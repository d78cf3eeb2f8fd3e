package dashboard

import (
	core "github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// CommerceConfig re-export for convenience.
type CommerceConfig = core.CommerceConfig

// ListRequest and ListPage re-exports.
type (
	ListRequest = core.ListRequest
	ListPage    = core.ListPage
)

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewCommerceService proxies to the commerce bootstrap.
func NewCommerceService(cfg CommerceConfig) (*Service, error) {
	return core.NewCommerceService(cfg)
}
