package archive

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"
)

// Builder accumulates named blobs in memory, compressing each one as it
// is added, and writes the finished archive with WriteTo. Add is safe to
// call from multiple goroutines. Archives cannot be appended to once
// written.
type Builder struct {
	mu      sync.Mutex
	entries []builderEntry
	names   map[string]struct{}
}

type builderEntry struct {
	name       string
	size       int64
	compressed []byte
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{names: make(map[string]struct{})}
}

// Add compresses data and records it under name. Entry names are unique
// within an archive; slashes are the path separator by convention.
func (b *Builder) Add(name string, data []byte) error {
	if name == "" {
		return errors.New("empty entry name")
	}

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("compress %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("compress %s: %w", name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	b.names[name] = struct{}{}
	b.entries = append(b.entries, builderEntry{
		name:       name,
		size:       int64(len(data)),
		compressed: buf.Bytes(),
	})
	return nil
}

// Len reports the number of entries added so far.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// WriteTo writes the archive to w and returns the number of bytes
// written. Entries appear in the order they were added.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	header := Header{Version: Version, Created: time.Now().Unix()}
	var offset int64
	for _, e := range b.entries {
		header.Index = append(header.Index, IndexEntry{
			Name:           e.name,
			Offset:         offset,
			Size:           e.size,
			CompressedSize: int64(len(e.compressed)),
		})
		offset += int64(len(e.compressed))
	}

	var hdr bytes.Buffer
	if err := gob.NewEncoder(&hdr).Encode(header); err != nil {
		return 0, fmt.Errorf("encode header: %w", err)
	}

	var written int64
	n, err := w.Write([]byte(magic))
	written += int64(n)
	if err != nil {
		return written, err
	}

	var lenBuf [lenSize]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(hdr.Len()))
	n, err = w.Write(lenBuf[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	n, err = w.Write(hdr.Bytes())
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, e := range b.entries {
		n, err := w.Write(e.compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
