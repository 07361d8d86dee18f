// Package cache provides the keyed handle cache with read-through
// promotion.
//
// Each entry is a two-variant state: pending (a registered path whose
// load has not been requested) or resolved (a handle returned by the
// loader). Entries are rewritten in place under one lock, which is what
// makes the promotion race-free.
//
// # Entry Lifecycle
//
// Entries move through two states:
//
//	pending(path)    - registered, no load dispatched
//	resolved(handle) - load dispatched, handle stored
//
// Transitions:
//
//	InsertLazy             -> pending (overwrite, no dispatch)
//	InsertLoaded           -> resolved (overwrite, one dispatch)
//	Resolve, Get on pending -> resolved (one dispatch)
//	Resolve, Get on resolved-> unchanged (no dispatch)
//
// Nothing demotes a resolved entry except overwriting it with a new
// registration, and there is no eviction.
//
// # Usage
//
//	c := cache.New[string](ld)
//
//	// Register without loading
//	c.InsertLazy("grass", "textures/grass.png")
//
//	// Register and load now
//	c.InsertLoaded("tank", "models/tank.glb")
//
//	// First Get dispatches the load, later Gets reuse the handle
//	h, ok := c.Get("grass")
//
// # At-Most-Once Dispatch
//
// Get performs its check-then-act (inspect state, maybe dispatch a load,
// maybe rewrite the entry) under a single exclusive lock hold. Two
// goroutines racing on Get for the same pending key therefore dispatch
// exactly one load; the loser of the race observes the resolved entry.
//
// The batch operations hold the lock for the whole batch, so no other
// mutator interleaves between their rows.
//
// # Silent Miss
//
// Resolve on an unregistered key is a no-op and Get reports absence via
// its second return value. Absence is not an error at this layer.
package cache
