package leutil

import (
	"errors"
	"math"
)

// ErrShortBuffer is returned by the Checked readers when b does not carry
// enough bytes for the requested field.
var ErrShortBuffer = errors.New("leutil: short buffer")

// AddOverflowSafe adds a and b, reporting ok=false rather than wrapping when
// the sum would overflow the platform int.
func AddOverflowSafe(a, b int) (sum int, ok bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Slice returns b[off:off+n], or ok=false if that range is out of bounds.
func Slice(b []byte, off, n int) (s []byte, ok bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, safe := AddOverflowSafe(off, n)
	if !safe || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// CheckedU16 reads a uint16 at off, failing rather than truncating silently.
func CheckedU16(b []byte, off int) (uint16, error) {
	s, ok := Slice(b, off, 2)
	if !ok {
		return 0, ErrShortBuffer
	}
	return U16(s), nil
}

// CheckedU32 reads a uint32 at off, failing rather than truncating silently.
func CheckedU32(b []byte, off int) (uint32, error) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, ErrShortBuffer
	}
	return U32(s), nil
}

// CheckedU64 reads a uint64 at off, failing rather than truncating silently.
func CheckedU64(b []byte, off int) (uint64, error) {
	s, ok := Slice(b, off, 8)
	if !ok {
		return 0, ErrShortBuffer
	}
	return U64(s), nil
}

// CheckListBounds verifies that a list header of size headerLen, followed by
// count entries of entrySize bytes each, fits within a buffer of length
// bufLen. It is overflow-safe: count*entrySize is never computed without a
// bounds check first.
func CheckListBounds(bufLen, headerLen, count, entrySize int) (need int, err error) {
	if count < 0 || entrySize < 0 {
		return 0, ErrShortBuffer
	}
	total := count * entrySize
	if entrySize != 0 && total/entrySize != count {
		return 0, ErrShortBuffer
	}
	need, ok := AddOverflowSafe(headerLen, total)
	if !ok || need > bufLen {
		return need, ErrShortBuffer
	}
	return need, nil
}
