package query

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Default cache thresholds.
const (
	// DefaultStaleTime is the age past which a cached value is refreshed in
	// the background on its next access.
	DefaultStaleTime = 5 * time.Minute
	// DefaultRetentionTime is how long an unused cached value survives after
	// its last subscriber goes away.
	DefaultRetentionTime = 10 * time.Minute

	defaultJanitorInterval = time.Minute
)

// Options configures a cache client. Zero values fall back to the defaults.
type Options struct {
	StaleTime       time.Duration
	RetentionTime   time.Duration
	JanitorInterval time.Duration
}

// Client is a key-addressed read cache. A read either returns a cached value
// (immediately, even when stale, with a background refetch) or runs the
// underlying fetch. Writers invalidate key prefixes; subscribers are notified
// so they can refetch.
type Client struct {
	entries map[string]*entry
	subs    map[int64]*Subscription
	stop    chan struct{}
	done    chan struct{}
	opts    Options
	nextSub int64
	// gen counts invalidations. A miss fetch that overlaps an invalidation
	// must not cache its result: it may have read pre-write state.
	gen int64
	mu  sync.Mutex
}

type entry struct {
	fetchedAt  time.Time
	lastAccess time.Time
	value      any
	key        Key
	refetching bool
}

// NewClient creates a cache client and starts its eviction janitor.
func NewClient(opts Options) *Client {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.RetentionTime <= 0 {
		opts.RetentionTime = DefaultRetentionTime
	}
	if opts.JanitorInterval <= 0 {
		opts.JanitorInterval = defaultJanitorInterval
	}

	c := &Client{
		entries: make(map[string]*entry),
		subs:    make(map[int64]*Subscription),
		opts:    opts,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Close stops the eviction janitor. Cached values are discarded.
func (c *Client) Close() {
	close(c.stop)
	<-c.done
}

// Fetch returns the value for key, consulting the cache first.
//
// A fresh cached value is returned as-is. A stale cached value is returned
// immediately while a single background refetch refreshes the entry
// (stale-while-revalidate); if that refetch fails the stale value stays, so
// readers keep the last-known-good state. A miss runs fn synchronously and
// caches the result only on success — and only when no invalidation ran while
// the fetch was in flight, so a write completing mid-read never leaves its
// pre-write state cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	ks := key.String()
	now := time.Now()

	c.mu.Lock()
	if e, ok := c.entries[ks]; ok {
		if cached, ok := e.value.(T); ok {
			e.lastAccess = now
			if now.Sub(e.fetchedAt) > c.opts.StaleTime && !e.refetching {
				e.refetching = true
				go c.refetch(ks, key, e, func(ctx context.Context) (any, error) { return fn(ctx) })
			}
			c.mu.Unlock()
			return cached, nil
		}
		// Type mismatch for this key; drop the entry and fetch anew.
		delete(c.entries, ks)
	}
	startGen := c.gen
	c.mu.Unlock()

	value, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if c.gen == startGen {
		c.entries[ks] = &entry{
			key:        key,
			value:      value,
			fetchedAt:  time.Now(),
			lastAccess: time.Now(),
		}
	}
	c.mu.Unlock()

	return value, nil
}

// refetch refreshes a stale entry in the background. Once started it runs to
// completion; the reader that triggered it has already returned.
func (c *Client) refetch(ks string, key Key, e *entry, fn func(context.Context) (any, error)) {
	value, err := fn(context.Background())

	c.mu.Lock()
	defer c.mu.Unlock()

	// The result only applies to the entry this refetch was spawned for. If
	// the key was invalidated, or invalidated and re-cached, in the meantime,
	// this value may predate a completed write; drop it.
	if cur, ok := c.entries[ks]; !ok || cur != e {
		return
	}
	e.refetching = false

	if err != nil {
		slog.Debug("background refetch failed, keeping stale value", "key", ks, "error", err)
		return
	}

	e.value = value
	e.fetchedAt = time.Now()
	notifySubscribersLocked(c, key)
}

// Invalidate drops every cached entry under prefix and notifies subscribers
// whose interest overlaps it. Readers observe the change on their next fetch.
func (c *Client) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	removed := 0
	for ks, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, ks)
			removed++
		}
	}

	notifySubscribersLocked(c, prefix)
	slog.Debug("invalidated cache prefix", "prefix", prefix.String(), "entries", removed)
}

// Len returns the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Client) janitor() {
	defer close(c.done)

	ticker := time.NewTicker(c.opts.JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictIdle()
		case <-c.stop:
			return
		}
	}
}

// evictIdle removes entries that no subscriber pins and that nothing has
// read within the retention window.
func (c *Client) evictIdle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for ks, e := range c.entries {
		if now.Sub(e.lastAccess) <= c.opts.RetentionTime {
			continue
		}
		pinned := false
		for _, sub := range c.subs {
			if e.key.HasPrefix(sub.prefix) {
				pinned = true
				break
			}
		}
		if !pinned {
			delete(c.entries, ks)
		}
	}
}
