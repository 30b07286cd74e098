// Package metadata attaches typed, application-defined payloads to table
// rows as opaque byte blobs. A payload type registers once per table kind
// with a named codec strategy; thereafter values round-trip through the
// table's metadata column and raw rows decode back to typed values, with
// "no metadata" kept distinct from "decode failed" and "no such row".
package metadata

import (
	"errors"
	"fmt"
)

// ErrMissingSerializer indicates a registration that named no codec
// strategy at all.
var ErrMissingSerializer = errors.New("metadata: missing serializer")

// UnsupportedSerializerError indicates a registration naming a codec
// strategy the registry does not recognize.
type UnsupportedSerializerError struct {
	Name string
}

func (e *UnsupportedSerializerError) Error() string {
	return fmt.Sprintf("metadata: unsupported serializer %q", e.Name)
}

// RoundtripError indicates that the chosen codec failed to encode a value
// or decode a byte sequence. It wraps the underlying codec error.
type RoundtripError struct {
	Op    string // "encode" or "decode"
	Cause error
}

func (e *RoundtripError) Error() string {
	return fmt.Sprintf("metadata: %s failed: %v", e.Op, e.Cause)
}

func (e *RoundtripError) Unwrap() error { return e.Cause }

func encodeErr(err error) error { return &RoundtripError{Op: "encode", Cause: err} }
func decodeErr(err error) error { return &RoundtripError{Op: "decode", Cause: err} }
