package archive

import "errors"

const (
	magic = "APK\x00"

	// Version is the pack format version written by Builder.
	Version = 1

	// Header length prefix follows the magic.
	lenSize = 8

	// Sanity bound for the decoded header length.
	maxHeaderSize = 1 << 24

	// No lz4 frame inflates past this ratio, so an index size beyond
	// CompressedSize*maxRatio cannot come from a well-formed archive.
	maxRatio = 256
)

var (
	// ErrFormat reports data that is not an archive or carries a
	// corrupt or unsupported header.
	ErrFormat = errors.New("not an asset archive")

	// ErrNotExist reports an entry name absent from the index.
	ErrNotExist = errors.New("entry does not exist")

	// ErrDuplicate reports an entry name added to a builder twice.
	ErrDuplicate = errors.New("duplicate entry name")
)

// IndexEntry locates one named blob inside an archive.
type IndexEntry struct {
	Name           string
	Offset         int64 // from the start of the data section
	Size           int64 // uncompressed
	CompressedSize int64
}

// Header is the gob-encoded archive header.
type Header struct {
	Version int64
	Created int64 // unix seconds
	Index   []IndexEntry
}
