package loader

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/xiubox/asset-manager/archive"
)

// Async dispatches fetches to background goroutines and hands out
// handles immediately. Safe for concurrent use.
type Async struct {
	fetch func(path string) ([]byte, error)

	mu      sync.Mutex
	handles map[string]Handle
}

// NewFile returns a loader reading assets from the filesystem under
// root. Asset paths are slash-separated and relative to root; an empty
// root means paths are used as given.
func NewFile(root string) *Async {
	return NewFunc(func(path string) ([]byte, error) {
		if root != "" {
			path = filepath.Join(root, filepath.FromSlash(path))
		}
		return os.ReadFile(path)
	})
}

// NewArchive returns a loader reading assets out of a.
func NewArchive(a *archive.Archive) *Async {
	return NewFunc(a.ReadFile)
}

// NewFunc returns a loader backed by an arbitrary fetch function. fetch
// may be called from multiple goroutines, one call per distinct path in
// flight.
func NewFunc(fetch func(path string) ([]byte, error)) *Async {
	return &Async{
		fetch:   fetch,
		handles: make(map[string]Handle),
	}
}

// Load returns a handle for path. The first call for a path starts its
// fetch; repeat calls return clones of the same handle while the fetch
// is in flight or after it succeeded.
func (l *Async) Load(path string) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.handles[path]; ok {
		return h.Clone()
	}

	h := Handle{st: &state{path: path, done: make(chan struct{})}}
	l.handles[path] = h
	go l.run(h.st)
	return h.Clone()
}

// Pending reports the number of fetches still in flight.
func (l *Async) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, h := range l.handles {
		if !h.Ready() {
			n++
		}
	}
	return n
}

func (l *Async) run(st *state) {
	Logger().Debug("fetch started", zap.String("path", st.path))
	st.data, st.err = l.fetch(st.path)
	if st.err != nil {
		Logger().Warn("fetch failed", zap.String("path", st.path), zap.Error(st.err))
		// Forget the entry before done closes; a Load issued after a
		// failed Wait then always refetches.
		l.mu.Lock()
		delete(l.handles, st.path)
		l.mu.Unlock()
	} else {
		Logger().Debug("fetch finished", zap.String("path", st.path), zap.Int("bytes", len(st.data)))
	}
	close(st.done)
}
