package loader

import "context"

// state is shared by every clone of a handle. data and err are written
// exactly once, before done is closed; done closing publishes them.
type state struct {
	path string
	done chan struct{}
	data []byte
	err  error
}

// Handle is a cheaply copyable reference to one asset fetch. Clones
// share the fetch's completion state; cloning never re-triggers a fetch.
// Handles come from a loader; the zero Handle is not valid.
type Handle struct {
	st *state
}

// Clone returns a handle sharing the same fetch.
func (h Handle) Clone() Handle { return Handle{st: h.st} }

// Path returns the asset path the handle was created for.
func (h Handle) Path() string { return h.st.path }

// Done returns a channel that is closed when the fetch completes.
func (h Handle) Done() <-chan struct{} { return h.st.done }

// Ready reports whether the fetch has completed, successfully or not.
func (h Handle) Ready() bool {
	select {
	case <-h.st.done:
		return true
	default:
		return false
	}
}

// Bytes returns the fetched data. Before completion it returns nil and
// no error; gate on Ready, Done or Wait to distinguish "not yet" from an
// empty asset. After completion it returns the data or the fetch error.
func (h Handle) Bytes() ([]byte, error) {
	if !h.Ready() {
		return nil, nil
	}
	return h.st.data, h.st.err
}

// Wait blocks until the fetch completes or ctx is done. It returns the
// fetch error, if any.
func (h Handle) Wait(ctx context.Context) error {
	select {
	case <-h.st.done:
		return h.st.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
