// ABOUTME: Binary layout primitives for the treeseq file format
// ABOUTME: Little-endian buffer writer and bounds-checked reader

package store

import (
	"encoding/binary"
	"math"

	"github.com/coalescent/treeseq/pkg/tables"
)

const (
	// FileSignature opens every treeseq file (16 bytes).
	FileSignature = "treeseq01\x00\x00\x00\x00\x00\x00\x00"

	// FormatVersion is the file format version this build reads and writes.
	FormatVersion = uint32(1)

	// headerSize is signature(16) + version(4) + uuid(16) +
	// sequenceLength(8) + sectionCount(4).
	headerSize = 48
)

// writer accumulates little-endian encoded fields.
type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) { w.buf = append(w.buf, v) }

func (w *writer) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) i32(v tables.RowID) { w.u32(uint32(v)) }

func (w *writer) f64(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

func (w *writer) bytes(b []byte) {
	w.u32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *writer) str(s string) { w.bytes([]byte(s)) }

// reader consumes little-endian encoded fields with bounds checks. The
// first out-of-bounds read latches err and subsequent reads return zero
// values, so decoders check err once at the end.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) remain() int { return len(r.buf) - r.off }

func (r *reader) u8() uint8 {
	if r.err != nil || r.remain() < 1 {
		r.err = ErrTruncated
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *reader) u32() uint32 {
	if r.err != nil || r.remain() < 4 {
		r.err = ErrTruncated
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) i32() tables.RowID { return tables.RowID(int32(r.u32())) }

func (r *reader) f64() float64 {
	if r.err != nil || r.remain() < 8 {
		r.err = ErrTruncated
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v
}

func (r *reader) bytes() []byte {
	n := int(r.u32())
	if r.err != nil || r.remain() < n {
		r.err = ErrTruncated
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) str() string { return string(r.bytes()) }
