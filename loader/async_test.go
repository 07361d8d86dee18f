package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xiubox/asset-manager/archive"
)

func TestAsync_LoadDedup(t *testing.T) {
	gate := make(chan struct{})
	var calls atomic.Int32
	l := NewFunc(func(path string) ([]byte, error) {
		calls.Add(1)
		<-gate
		return []byte("data:" + path), nil
	})

	h1 := l.Load("textures/grass.png")
	h2 := l.Load("textures/grass.png")
	if h1.st != h2.st {
		t.Fatal("expected clones of the same in-flight handle")
	}

	close(gate)
	if err := h1.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}

	// h2 observes the same completion
	if !h2.Ready() {
		t.Fatal("clone should be ready")
	}
	data, err := h2.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(data) != "data:textures/grass.png" {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestAsync_DistinctPaths(t *testing.T) {
	var calls atomic.Int32
	l := NewFunc(func(path string) ([]byte, error) {
		calls.Add(1)
		return []byte(path), nil
	})

	ha := l.Load("a.png")
	hb := l.Load("b.png")
	if err := ha.Wait(context.Background()); err != nil {
		t.Fatalf("Wait a: %v", err)
	}
	if err := hb.Wait(context.Background()); err != nil {
		t.Fatalf("Wait b: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
}

func TestHandle_BytesBeforeReady(t *testing.T) {
	gate := make(chan struct{})
	l := NewFunc(func(string) ([]byte, error) {
		<-gate
		return []byte("done"), nil
	})

	h := l.Load("slow.bin")
	if h.Ready() {
		t.Fatal("handle should not be ready yet")
	}
	data, err := h.Bytes()
	if data != nil || err != nil {
		t.Fatalf("Bytes before ready = %v, %v", data, err)
	}
	if h.Path() != "slow.bin" {
		t.Fatalf("Path() = %q", h.Path())
	}

	close(gate)
	<-h.Done()
	data, err = h.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(data) != "done" {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestHandle_WaitContextCanceled(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	l := NewFunc(func(string) ([]byte, error) {
		<-gate
		return nil, nil
	})

	h := l.Load("never.bin")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAsync_FailedFetchRetries(t *testing.T) {
	var calls atomic.Int32
	l := NewFunc(func(path string) ([]byte, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("disk on fire")
		}
		return []byte("recovered"), nil
	})

	h := l.Load("flaky.bin")
	if err := h.Wait(context.Background()); err == nil {
		t.Fatal("expected the first fetch to fail")
	}

	// The failed entry is forgotten, so the next Load refetches
	h2 := l.Load("flaky.bin")
	if err := h2.Wait(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	data, err := h2.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(data) != "recovered" {
		t.Fatalf("unexpected data %q", data)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
}

func TestAsync_Pending(t *testing.T) {
	gate := make(chan struct{})
	l := NewFunc(func(string) ([]byte, error) {
		<-gate
		return nil, nil
	})

	h := l.Load("slow.bin")
	if got := l.Pending(); got != 1 {
		t.Fatalf("expected 1 pending, got %d", got)
	}

	close(gate)
	if err := h.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if got := l.Pending(); got != 0 {
		t.Fatalf("expected 0 pending, got %d", got)
	}
}

func TestNewFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sfx"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sfx", "click.ogg"), []byte("click!"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewFile(dir)
	h := l.Load("sfx/click.ogg")
	if err := h.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	data, err := h.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(data) != "click!" {
		t.Fatalf("unexpected data %q", data)
	}

	// Missing files fail through the handle, not through Load
	h = l.Load("sfx/missing.ogg")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Wait(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestNewArchive(t *testing.T) {
	b := archive.NewBuilder()
	if err := b.Add("maps/level1.dat", []byte("level one")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	a, err := archive.Open(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	l := NewArchive(a)
	h := l.Load("maps/level1.dat")
	if err := h.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	data, err := h.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(data) != "level one" {
		t.Fatalf("unexpected data %q", data)
	}

	// Entries absent from the archive fail through the handle
	h = l.Load("maps/level2.dat")
	if err := h.Wait(context.Background()); !errors.Is(err, archive.ErrNotExist) {
		t.Fatalf("expected archive.ErrNotExist, got %v", err)
	}
}
