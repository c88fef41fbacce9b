// Package leutil decodes the little-endian (and occasionally big-endian)
// integers that make up the hive file format. Every function is a pure,
// allocation-free read with a zero-value fallback for short buffers; callers
// that need a hard failure on truncation use the Checked variants in
// bounds.go instead.
package leutil

import "encoding/binary"

// U16 reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// I32 reads a little-endian, signed int32 from b. Cell sizes are signed: the
// sign bit carries the allocation state.
func I32(b []byte) int32 {
	if len(b) < 4 {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

// U32BE reads a big-endian uint32. Only REG_DWORD_BIG_ENDIAN uses this.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// PutU32 writes a little-endian uint32 into b, which must be at least 4
// bytes. Used to recover the 4 inline bytes vk stores in place of a data
// offset when the data length's high bit marks it inline.
func PutU32(b []byte, v uint32) {
	if len(b) < 4 {
		return
	}
	binary.LittleEndian.PutUint32(b, v)
}
