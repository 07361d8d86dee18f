// Package archive implements the asset pack format.
//
// A pack is a single file holding many named blobs. The archive itself
// is not compressed; every blob is compressed individually with lz4, so
// any blob can be located through the index and decompressed without
// touching the rest of the file. Archives are read through an
// io.ReaderAt and support concurrent reads.
//
// # Layout
//
//	4 bytes   magic "APK\x00"
//	8 bytes   header length, little endian
//	n bytes   gob-encoded Header (version, build time, blob index)
//	...       blob data, one lz4 frame per entry
//
// Open validates the header and the whole index up front, so a
// corrupt or truncated pack fails with ErrFormat before any blob is
// touched.
package archive
