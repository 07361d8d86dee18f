package archive

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pierrec/lz4/v4"
)

// Archive reads blobs out of an asset pack. All methods are safe for
// concurrent use; every read goes through the io.ReaderAt with its own
// decompressor.
type Archive struct {
	r       io.ReaderAt
	index   map[string]IndexEntry
	created int64
	dataOff int64
}

// Open reads the archive header from r, whose total length is size
// bytes. The header and every index entry are validated before any blob
// is read. r must stay valid for the life of the Archive; it is read
// concurrently and never written.
func Open(r io.ReaderAt, size int64) (*Archive, error) {
	var head [len(magic) + lenSize]byte
	if _, err := r.ReadAt(head[:], 0); err != nil {
		return nil, fmt.Errorf("%w: short file", ErrFormat)
	}
	if string(head[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrFormat)
	}

	hdrLen := binary.LittleEndian.Uint64(head[len(magic):])
	if hdrLen == 0 || hdrLen > maxHeaderSize {
		return nil, fmt.Errorf("%w: header length %d", ErrFormat, hdrLen)
	}
	dataOff := int64(len(magic)) + lenSize + int64(hdrLen)
	if dataOff > size {
		return nil, fmt.Errorf("%w: truncated header", ErrFormat)
	}
	hdrBytes := make([]byte, hdrLen)
	if _, err := r.ReadAt(hdrBytes, int64(len(magic)+lenSize)); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrFormat)
	}

	var header Header
	if err := gob.NewDecoder(bytes.NewReader(hdrBytes)).Decode(&header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, header.Version)
	}

	a := &Archive{
		r:       r,
		index:   make(map[string]IndexEntry, len(header.Index)),
		created: header.Created,
		dataOff: dataOff,
	}

	// Every entry must lie inside the data section, and its claimed
	// size must be reachable from its compressed size.
	dataSize := size - dataOff
	for _, e := range header.Index {
		if e.Offset < 0 || e.Size < 0 || e.CompressedSize < 0 ||
			e.CompressedSize > dataSize || e.Offset > dataSize-e.CompressedSize ||
			e.Size > e.CompressedSize*maxRatio {
			return nil, fmt.Errorf("%w: corrupt index entry %q", ErrFormat, e.Name)
		}
		a.index[e.Name] = e
	}
	return a, nil
}

// OpenFile opens path and reads its archive header. The returned closer
// owns the underlying file and must be closed after the last read.
func OpenFile(path string) (*Archive, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	a, err := Open(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, f, nil
}

// ReadFile returns the decompressed contents of the named entry.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	e, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}

	section := io.NewSectionReader(a.r, a.dataOff+e.Offset, e.CompressedSize)
	data := make([]byte, e.Size)
	if _, err := io.ReadFull(lz4.NewReader(section), data); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Stat returns the index entry for name.
func (a *Archive) Stat(name string) (IndexEntry, bool) {
	e, ok := a.index[name]
	return e, ok
}

// Names returns every entry name in sorted order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.index))
	for name := range a.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of entries.
func (a *Archive) Len() int { return len(a.index) }

// Created returns the archive's build time.
func (a *Archive) Created() time.Time { return time.Unix(a.created, 0) }
