package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "commerce-dashboard:"

// Client is the subset of go-redis used here; *goredis.Client satisfies it.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

// ErrorHandler observes Redis failures that were recovered from.
type ErrorHandler func(op, key string, err error)

// Options configures a Cache.
type Options struct {
	Prefix  string
	TTL     time.Duration
	OnError ErrorHandler
}

// Cache stores rendered chart HTML in Redis so several dashboard instances
// share renders. It implements dashboard.RenderCache and dashboard.Notifier.
type Cache struct {
	client  Client
	prefix  string
	ttl     time.Duration
	onError ErrorHandler
}

// New wraps client.
func New(client Client, opts Options) (*Cache, error) {
	if client == nil {
		return nil, errors.New("rediscache: client is required")
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.OnError == nil {
		opts.OnError = func(string, string, error) {}
	}
	return &Cache{client: client, prefix: opts.Prefix, ttl: opts.TTL, onError: opts.OnError}, nil
}

// Dial connects to addr and pings it.
func Dial(ctx context.Context, addr string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("rediscache: ping %s: %w", addr, err)
	}
	return rdb, nil
}

var (
	_ dashboard.RenderCache = (*Cache)(nil)
	_ dashboard.Notifier    = (*Cache)(nil)
)

// Key returns the Redis key used for a chart cache key.
func (c *Cache) Key(key string) string {
	return c.prefix + "chart:" + key
}

// GetOrRender returns the stored HTML for key or renders and stores it. Redis
// errors are reported to OnError and the chart is rendered anyway; render
// errors are returned and never cached.
func (c *Cache) GetOrRender(ctx context.Context, key string, render func() (string, error)) (string, error) {
	redisKey := c.Key(key)
	html, err := c.client.Get(ctx, redisKey).Result()
	switch {
	case err == nil:
		return html, nil
	case !errors.Is(err, goredis.Nil):
		c.onError("get", redisKey, err)
	}

	html, err = render()
	if err != nil {
		return "", err
	}
	if err := c.client.Set(ctx, redisKey, html, c.ttl).Err(); err != nil {
		c.onError("set", redisKey, err)
	}
	return html, nil
}

// PublishRefresh publishes event as JSON on the prefixed channel.
func (c *Cache) PublishRefresh(ctx context.Context, channel string, event dashboard.RefreshEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rediscache: encode refresh event: %w", err)
	}
	if err := c.client.Publish(ctx, c.prefix+channel, payload).Err(); err != nil {
		return fmt.Errorf("rediscache: publish %s: %w", channel, err)
	}
	return nil
}
