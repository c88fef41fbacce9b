package format

import (
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
	"github.com/forensicmatt/hivewalk/internal/strdecode"
)

// MaxVKNameLen bounds a vk name length the same way MaxNKNameLen bounds an
// nk name: a sanity ceiling, not a format limit.
const MaxVKNameLen = 32 * 1024

// VKRecord is the decoded, signature-stripped payload of a vk cell: one
// named value attached to a key. DataLength and DataInline follow the
// inline-data convention in spec.md §4.7: bit 31 of the raw length field set
// means the data (at most 4 bytes, its length in the low 31 bits) is stored
// in the offset field itself, kept in InlineBytes, rather than in a separate
// cell.
type VKRecord struct {
	NameLength  uint16
	DataLength  uint32
	DataOffset  uint32
	Type        uint32
	Flags       uint16
	DataInline  bool
	InlineBytes [4]byte
	Name        string
}

// NameIsASCII reports whether the value's name was stored codepage-
// compressed rather than as UTF-16LE.
func (v VKRecord) NameIsASCII() bool {
	return v.Flags&VKFlagASCIIName != 0
}

// DecodeVK parses a signature-stripped vk payload.
func DecodeVK(payload []byte) (VKRecord, error) {
	if len(payload) < VKFixedHeaderSize {
		return VKRecord{}, hiveerr.New(hiveerr.Validation, "vk payload shorter than fixed header")
	}

	nameLen := leutil.U16(payload[vkNameLenOffset:])
	if int(nameLen) > MaxVKNameLen {
		return VKRecord{}, hiveerr.New(hiveerr.Validation, "vk name length exceeds sanity limit")
	}

	rawDataLen := leutil.U32(payload[vkDataLenOffset:])
	rawDataOff := leutil.U32(payload[vkDataOffOffset:])
	flags := leutil.U16(payload[vkFlagsOffset:])

	rec := VKRecord{
		NameLength: nameLen,
		Type:       leutil.U32(payload[vkTypeOffset:]),
		Flags:      flags,
	}

	if rawDataLen&VKDataInlineBit != 0 {
		rec.DataInline = true
		rec.DataLength = rawDataLen & VKDataLengthMask
		if rec.DataLength > 4 {
			rec.DataLength = 4
		}
		var buf [4]byte
		leutil.PutU32(buf[:], rawDataOff)
		rec.InlineBytes = buf
	} else {
		rec.DataLength = rawDataLen
		rec.DataOffset = rawDataOff
	}

	nameRaw, ok := leutil.Slice(payload, vkNameOffset, int(nameLen))
	if !ok {
		return VKRecord{}, hiveerr.New(hiveerr.Validation, "vk name extends past payload")
	}
	if flags&VKFlagASCIIName != 0 {
		rec.Name = strdecode.ASCII(nameRaw)
	} else {
		rec.Name = strdecode.UTF16LE(nameRaw, false)
	}

	return rec, nil
}
