// Package query caches backend reads for the CLI.
//
// Entries stay fresh for StaleTime. Concurrent fetches of one key share a
// single call, and a failed call is retried once when the failure looks
// transient (connectivity or 5xx).
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

const (
	// DefaultStaleTime is how long a fetched value is served without refetching.
	DefaultStaleTime = 5 * time.Minute
	// DefaultRetryDelay is the pause before the single retry.
	DefaultRetryDelay = time.Second
)

// Config configures a Cache.
type Config struct {
	StaleTime  time.Duration
	RetryDelay time.Duration
	Logger     *slog.Logger
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a keyed read cache safe for concurrent use.
type Cache struct {
	staleTime  time.Duration
	retryDelay time.Duration
	logger     *slog.Logger
	now        func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
	gen     uint64
}

// New creates an empty cache.
func New(cfg Config) *Cache {
	if cfg.StaleTime <= 0 {
		cfg.StaleTime = DefaultStaleTime
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	} else if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Cache{
		staleTime:  cfg.StaleTime,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
		now:        time.Now,
		entries:    make(map[string]entry),
	}
}

// Fetch returns the cached value for key if it is still fresh, otherwise it
// calls fn and caches the result. Errors are never cached.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := c.lookup(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	// Calls started before an Invalidate or Clear are not joined after it.
	ch := c.group.DoChan(fmt.Sprintf("%s@%d", key, gen), func() (any, error) {
		// The shared call outlives any single waiter; the request layer's
		// own timeout bounds it.
		v, err := c.withRetry(context.WithoutCancel(ctx), key, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("query: cached value for %q has type %T", key, res.Val)
		}
		return typed, nil
	}
}

func (c *Cache) withRetry(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	v, err := fn(ctx)
	if err == nil || !Retryable(err) {
		return v, err
	}

	c.logger.Debug("Retrying fetch", "key", key, "error", err, "delay", c.retryDelay)
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	<-timer.C

	return fn(ctx)
}

// Retryable reports whether err is worth a second attempt: connectivity
// failures and server errors. Client errors and expired auth are final.
func Retryable(err error) bool {
	apiErr, ok := apiclient.AsError(err)
	if !ok {
		return false
	}
	switch apiErr.Kind {
	case apiclient.KindConnectivity:
		return !errors.Is(err, context.Canceled)
	case apiclient.KindGeneric:
		return apiErr.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.staleTime {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// store keeps v unless the cache was invalidated after the fetch started.
func (c *Cache) store(key string, v any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.entries[key] = entry{value: v, fetchedAt: c.now()}
}

// Invalidate drops every entry whose key starts with one of prefixes.
// Fetches already in flight still answer their waiters but are not cached.
func (c *Cache) Invalidate(prefixes ...string) {
	if len(prefixes) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for key := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = make(map[string]entry)
}

// Len returns the number of cached entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
