package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xiubox/asset-manager/cache"
)

type testHandle struct {
	rec *struct{ path string }
}

func (h testHandle) Clone() testHandle { return testHandle{rec: h.rec} }

type testLoader struct{}

func (testLoader) Load(path string) testHandle {
	return testHandle{rec: &struct{ path string }{path: path}}
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := New(reg)

	c := cache.New[string](testLoader{}, cache.WithMetrics(col))
	c.InsertLazy("grass", "textures/grass.png")
	c.InsertLoaded("tank", "models/tank.glb") // dispatch

	c.Get("grass")   // hit, dispatch
	c.Get("grass")   // hit
	c.Get("missing") // miss

	if got := testutil.ToFloat64(col.Hits); got != 2 {
		t.Fatalf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(col.Misses); got != 1 {
		t.Fatalf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(col.Dispatches); got != 2 {
		t.Fatalf("dispatches = %v, want 2", got)
	}
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	// promauto panics when the same counters are registered twice
	defer func() {
		if recover() == nil {
			t.Fatal("expected a duplicate registration panic")
		}
	}()
	New(reg)
}
