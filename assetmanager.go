package assetmanager

import "fmt"

// Handle is a lightweight reference to a resource owned by an external
// loading subsystem. Clone duplicates the reference cheaply; it never
// triggers a new load.
type Handle[H any] interface {
	Clone() H
}

// Loader turns an asset path into a handle. Load returns immediately with
// a handle for a load in progress (or already complete); it never fails
// synchronously and is cheap to call repeatedly for the same path. Load
// failures surface asynchronously through the handle.
type Loader[H Handle[H]] interface {
	Load(path string) H
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc[H Handle[H]] func(path string) H

// Load calls f.
func (f LoaderFunc[H]) Load(path string) H { return f(path) }

// LoadStyle selects when a registered asset's load is dispatched.
type LoadStyle uint8

const (
	// LoadLazy defers the load until the first Resolve or Get for the key.
	LoadLazy LoadStyle = iota

	// LoadEager dispatches the load at registration time.
	LoadEager
)

func (s LoadStyle) String() string {
	switch s {
	case LoadLazy:
		return "lazy"
	case LoadEager:
		return "eager"
	default:
		return fmt.Sprintf("LoadStyle(%d)", uint8(s))
	}
}

// ParseLoadStyle maps the textual form used in manifests to a LoadStyle.
// "loaded" is accepted as a synonym for "eager".
func ParseLoadStyle(s string) (LoadStyle, error) {
	switch s {
	case "lazy":
		return LoadLazy, nil
	case "eager", "loaded":
		return LoadEager, nil
	default:
		return 0, fmt.Errorf("unknown load style %q", s)
	}
}

// Pair is one key/path row for the single-style batch operations.
type Pair[K comparable] struct {
	Key  K
	Path string
}

// Registration is one row of a mixed bulk registration: a key, the path
// to load it from, and when to dispatch the load.
type Registration[K comparable] struct {
	Key   K
	Path  string
	Style LoadStyle
}
