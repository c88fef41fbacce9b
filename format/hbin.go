package format

import (
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
)

// HBIN describes one hive bin header. FileOffset is relative to the start of
// the hive-bins data region (the first bin is always 0); Size is a multiple
// of HBINAlignment.
type HBIN struct {
	FileOffset uint32
	Size       uint32
}

// ParseHBIN decodes a hive bin header at the start of b. It does not look at
// anything past the header; the bin's cells are framed separately by
// DecodeCell as the caller walks them.
func ParseHBIN(b []byte) (HBIN, error) {
	if len(b) < HBINHeaderSize {
		return HBIN{}, hiveerr.New(hiveerr.Validation, "hive bin header shorter than 32 bytes")
	}
	sig := leutil.U32(b[hbinSignatureOffset:])
	if sig != HBINSignature {
		return HBIN{}, hiveerr.New(hiveerr.Validation, "hive bin signature mismatch")
	}
	size := leutil.U32(b[hbinSizeOffset:])
	if size == 0 || size%HBINAlignment != 0 {
		return HBIN{}, hiveerr.New(hiveerr.Validation, "hive bin size not a multiple of 4096")
	}
	return HBIN{
		FileOffset: leutil.U32(b[hbinFileOffsetOff:]),
		Size:       size,
	}, nil
}
