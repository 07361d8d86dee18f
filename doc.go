// Package assetmanager provides a concurrent keyed cache for handles to
// externally-loaded assets, with lazy and eager load dispatch.
//
// Applications register assets under enumerated keys, either lazily (the
// load is deferred until first access) or eagerly (the load is requested
// at registration time). Retrieval promotes lazy entries on demand while
// guaranteeing that each registration dispatches at most one load, no
// matter how many goroutines race on the first access.
//
// # Architecture Overview
//
// The library is organized into small packages with distinct responsibilities:
//
//	assetmanager/        Root package with Handle, Loader and registration types
//	├── cache/           Keyed handle cache with read-through promotion
//	├── loader/          Async loader: file, archive and custom fetch backends
//	├── archive/         lz4-compressed asset pack format
//	├── manifest/        YAML bulk-registration manifests
//	├── metrics/         Prometheus collector for cache counters
//	└── cmd/
//	    ├── preload/     Manifest-driven preloader with optional TUI
//	    └── pack/        Asset archive builder
//
// # Quick Start
//
// Register assets and fetch them by key:
//
//	type Sound int
//	const (
//	    Click Sound = iota
//	    Explosion
//	)
//
//	ld := loader.NewFile("assets")
//	sounds := cache.New[Sound](ld)
//
//	sounds.InsertLazy(Click, "sfx/click.ogg")
//	sounds.InsertLoaded(Explosion, "sfx/explosion.ogg") // load starts now
//
//	h, ok := sounds.Get(Click) // first Get dispatches the load
//	if ok {
//	    data, err := h.Bytes() // available once h.Ready()
//	    _ = data
//	    _ = err
//	}
//
// # Load Dispatch
//
// "Load" at this layer means "request dispatched", never "bytes
// available". Cache operations do not block on I/O; handles expose the
// asynchronous completion state (Ready, Done, Wait). A key registered
// lazily dispatches on its first Resolve or Get; re-registering a key
// resets it, and the next access dispatches again.
//
// # Thread Safety
//
// Cache, loader and archive types are safe for concurrent use. The cache
// serializes each operation's whole check-then-act sequence under one
// lock, so concurrent Gets for the same pending key trigger exactly one
// load request.
package assetmanager
