package format

import (
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
	"github.com/forensicmatt/hivewalk/internal/strdecode"
)

// Sanity limits rejecting grossly malformed NK records before they can be
// used to drive further reads. These are generous relative to anything
// observed in real hives; they exist to stop a corrupted count field from
// turning into an unbounded allocation or loop downstream.
const (
	MaxSubkeyCount = 16 * 1024 * 1024
	MaxValueCount  = 4 * 1024 * 1024
	MaxNKNameLen   = 32 * 1024
	MaxClassLen    = 32 * 1024
)

// NKRecord is the decoded, signature-stripped payload of an nk cell: a
// registry key node. Offsets are relative to the first hive bin; 0xFFFFFFFF
// means "none".
type NKRecord struct {
	Flags                    uint16
	LastWriteRaw             uint64
	ParentOffset             uint32
	SubkeyCount              uint32
	VolatileSubkeyCount      uint32
	SubkeyListOffset         uint32
	VolatileSubkeyListOffset uint32
	ValueCount               uint32
	ValueListOffset          uint32
	SecurityOffset           uint32
	ClassNameOffset          uint32
	MaxNameLen               uint32
	MaxClassLen              uint32
	MaxValueNameLen          uint32
	MaxValueDataLen          uint32
	ClassLength              uint16
	Name                     string
}

// IsCompressedName reports whether Name was stored codepage-compressed
// rather than as UTF-16LE.
func (n NKRecord) IsCompressedName() bool {
	return n.Flags&NKFlagCompressedName != 0
}

// DecodeNK parses a signature-stripped nk payload.
func DecodeNK(payload []byte) (NKRecord, error) {
	if len(payload) < NKFixedHeaderSize {
		return NKRecord{}, hiveerr.New(hiveerr.Validation, "nk payload shorter than fixed header")
	}

	flags := leutil.U16(payload[nkFlagsOffset:])
	nameLen := leutil.U16(payload[nkNameLenOffset:])
	classLen := leutil.U16(payload[nkClassLenOffset:])

	subkeyCount := leutil.U32(payload[nkSubkeyCountOffset:])
	volSubkeyCount := leutil.U32(payload[nkVolSubkeyCountOffset:])
	valueCount := leutil.U32(payload[nkValueCountOffset:])

	if subkeyCount > MaxSubkeyCount || volSubkeyCount > MaxSubkeyCount {
		return NKRecord{}, hiveerr.New(hiveerr.Validation, "nk subkey count exceeds sanity limit")
	}
	if valueCount > MaxValueCount {
		return NKRecord{}, hiveerr.New(hiveerr.Validation, "nk value count exceeds sanity limit")
	}
	if int(nameLen) > MaxNKNameLen || int(classLen) > MaxClassLen {
		return NKRecord{}, hiveerr.New(hiveerr.Validation, "nk name or class length exceeds sanity limit")
	}

	nameRaw, ok := leutil.Slice(payload, nkNameOffset, int(nameLen))
	if !ok {
		return NKRecord{}, hiveerr.New(hiveerr.Validation, "nk name extends past payload")
	}

	var name string
	if flags&NKFlagCompressedName != 0 {
		name = strdecode.ASCII(nameRaw)
	} else {
		name = strdecode.UTF16LE(nameRaw, false)
	}

	return NKRecord{
		Flags:                    flags,
		LastWriteRaw:             leutil.U64(payload[nkLastWriteOffset:]),
		ParentOffset:             leutil.U32(payload[nkParentOffset:]),
		SubkeyCount:              subkeyCount,
		VolatileSubkeyCount:      volSubkeyCount,
		SubkeyListOffset:         leutil.U32(payload[nkSubkeyListOffset:]),
		VolatileSubkeyListOffset: leutil.U32(payload[nkVolSubkeyListOffset:]),
		ValueCount:               valueCount,
		ValueListOffset:          leutil.U32(payload[nkValueListOffset:]),
		SecurityOffset:           leutil.U32(payload[nkSecurityOffset:]),
		ClassNameOffset:          leutil.U32(payload[nkClassNameOffset:]),
		MaxNameLen:               leutil.U32(payload[nkMaxNameLenOffset:]),
		MaxClassLen:              leutil.U32(payload[nkMaxClassLenOffset:]),
		MaxValueNameLen:          leutil.U32(payload[nkMaxValueNameOffset:]),
		MaxValueDataLen:          leutil.U32(payload[nkMaxValueDataOffset:]),
		ClassLength:              classLen,
		Name:                     name,
	}, nil
}
