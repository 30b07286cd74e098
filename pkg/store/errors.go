// Package store persists a table collection as a single sectioned binary
// file: a fixed header, then one snappy-compressed, CRC32-checked section
// per table.
package store

import "errors"

var (
	// ErrBadSignature indicates the file does not start with the treeseq
	// signature.
	ErrBadSignature = errors.New("store: bad file signature")

	// ErrBadVersion indicates a format version this build cannot read.
	ErrBadVersion = errors.New("store: unsupported format version")

	// ErrTruncated indicates the file ends before a declared structure does.
	ErrTruncated = errors.New("store: truncated file")

	// ErrCorrupted indicates a section whose checksum or contents do not
	// match its declaration.
	ErrCorrupted = errors.New("store: corrupted section")
)
