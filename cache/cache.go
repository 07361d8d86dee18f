package cache

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	assetmanager "github.com/xiubox/asset-manager"
)

// State identifies which variant an entry currently holds.
type State uint8

const (
	// StatePending marks a registered asset whose load has not been requested.
	StatePending State = iota

	// StateResolved marks an asset whose load has been dispatched.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// entry is the per-key state. A pending entry carries only the path; a
// resolved entry additionally carries the handle. Entries are rewritten
// in place under the cache lock.
type entry[H any] struct {
	handle H
	path   string
	state  State
}

// Cache maps comparable keys to asset handles. Pending entries are
// promoted to resolved on first access, dispatching the load through the
// bound loader exactly once per registration. Safe for concurrent use.
type Cache[K comparable, H assetmanager.Handle[H]] struct {
	mu      sync.RWMutex
	entries map[K]entry[H]
	loader  assetmanager.Loader[H]
	metrics Metrics
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	metrics Metrics
}

// WithMetrics installs a metrics hook. The hook is invoked with the
// cache lock held and must not block.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// New creates an empty cache bound to loader. The cache holds the loader
// reference for its whole lifetime and never mutates it.
func New[K comparable, H assetmanager.Handle[H]](loader assetmanager.Loader[H], opts ...Option) *Cache[K, H] {
	o := options{metrics: NopMetrics{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, H]{
		entries: make(map[K]entry[H]),
		loader:  loader,
		metrics: o.metrics,
	}
}

// InsertLazy registers key as pending on path. No load is dispatched; a
// previous entry for key, resolved or not, is overwritten.
func (c *Cache[K, H]) InsertLazy(key K, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLazy(key, path)
}

// InsertLazyMany applies InsertLazy for every pair under a single lock
// acquisition. No other operation interleaves between the rows.
func (c *Cache[K, H]) InsertLazyMany(pairs []assetmanager.Pair[K]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range pairs {
		c.insertLazy(p.Key, p.Path)
	}
}

// InsertLoaded registers key and dispatches its load immediately,
// storing the resulting handle as resolved.
func (c *Cache[K, H]) InsertLoaded(key K, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLoaded(key, path)
}

// InsertLoadedMany applies InsertLoaded for every pair under a single
// lock acquisition, dispatching one load per pair.
func (c *Cache[K, H]) InsertLoadedMany(pairs []assetmanager.Pair[K]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range pairs {
		c.insertLoaded(p.Key, p.Path)
	}
}

// Apply registers every row according to its style under a single lock
// acquisition: lazy rows become pending entries, eager rows dispatch
// immediately. Rows are applied in order, so a later row for the same
// key wins.
func (c *Cache[K, H]) Apply(regs []assetmanager.Registration[K]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range regs {
		if r.Style == assetmanager.LoadEager {
			c.insertLoaded(r.Key, r.Path)
		} else {
			c.insertLazy(r.Key, r.Path)
		}
	}
}

// Resolve promotes a pending entry: it dispatches the load for the
// registered path and rewrites the entry as resolved. Resolved entries
// and unregistered keys are left untouched.
func (c *Cache[K, H]) Resolve(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolve(key)
}

// ResolveMany applies Resolve for every key under a single lock
// acquisition.
func (c *Cache[K, H]) ResolveMany(keys []K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.resolve(key)
	}
}

// Get returns a clone of the handle registered under key. A pending
// entry is promoted first, dispatching its load; the check and the
// rewrite happen under one lock hold, so concurrent Gets for the same
// pending key dispatch exactly once. The second return value reports
// whether key is registered.
func (c *Cache[K, H]) Get(key K) (H, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(key)
}

// GetMany applies Get for every key under a single lock acquisition.
// Handles are returned in input order; unregistered keys are dropped, so
// the result may be shorter than keys.
func (c *Cache[K, H]) GetMany(keys []K) []H {
	c.mu.Lock()
	defer c.mu.Unlock()
	handles := make([]H, 0, len(keys))
	for _, key := range keys {
		if h, ok := c.get(key); ok {
			handles = append(handles, h)
		}
	}
	return handles
}

// Len reports the number of registered entries.
func (c *Cache[K, H]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Each calls fn for every entry under the read lock until fn returns
// false. Iteration order is unspecified. fn must not call back into the
// cache.
func (c *Cache[K, H]) Each(fn func(key K, state State, path string) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for key, e := range c.entries {
		if !fn(key, e.state, e.path) {
			return
		}
	}
}

// insertLazy, insertLoaded, resolve and get implement the operations
// with the write lock held.

func (c *Cache[K, H]) insertLazy(key K, path string) {
	if _, ok := c.entries[key]; ok {
		Logger().Debug("registration overwritten", zap.Any("key", key), zap.String("path", path))
	}
	c.entries[key] = entry[H]{state: StatePending, path: path}
}

func (c *Cache[K, H]) insertLoaded(key K, path string) {
	if _, ok := c.entries[key]; ok {
		Logger().Debug("registration overwritten", zap.Any("key", key), zap.String("path", path))
	}
	c.entries[key] = entry[H]{state: StateResolved, path: path, handle: c.dispatch(key, path)}
}

func (c *Cache[K, H]) resolve(key K) {
	e, ok := c.entries[key]
	if !ok || e.state == StateResolved {
		return
	}
	c.entries[key] = entry[H]{state: StateResolved, path: e.path, handle: c.dispatch(key, e.path)}
}

func (c *Cache[K, H]) get(key K) (H, bool) {
	e, ok := c.entries[key]
	if !ok {
		c.metrics.Miss()
		var zero H
		return zero, false
	}
	if e.state == StatePending {
		e = entry[H]{state: StateResolved, path: e.path, handle: c.dispatch(key, e.path)}
		c.entries[key] = e
	}
	c.metrics.Hit()
	return e.handle.Clone(), true
}

// dispatch issues one load request through the loader.
func (c *Cache[K, H]) dispatch(key K, path string) H {
	c.metrics.Dispatch()
	Logger().Debug("load dispatched", zap.Any("key", key), zap.String("path", path))
	return c.loader.Load(path)
}
