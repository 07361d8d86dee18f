package cache

// Metrics receives cache activity counts. Implementations are called
// with the cache lock held and must not block; counter increments are
// fine, I/O is not.
type Metrics interface {
	// Hit is called when Get or GetMany finds a registered entry.
	Hit()

	// Miss is called when Get or GetMany finds no entry for a key.
	Miss()

	// Dispatch is called each time a load request is issued, whatever
	// operation triggered it.
	Dispatch()
}

// NopMetrics discards all counts. It is the default hook.
type NopMetrics struct{}

func (NopMetrics) Hit()      {}
func (NopMetrics) Miss()     {}
func (NopMetrics) Dispatch() {}
