package hive

import (
	"github.com/forensicmatt/hivewalk/bigdata"
	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
	"github.com/forensicmatt/hivewalk/internal/strdecode"
)

// ValueKey is a lazily-materializing view of a vk cell. Name() is already
// decoded (names are short and cheap); Data() and Decode() resolve and
// interpret the value's data bytes on demand, following the teacher's
// hive/vk.go split between "what the cell says" and "what it points at".
type ValueKey struct {
	h   *Hive
	rec format.VKRecord
}

// Name returns the value's name. The empty string names the key's
// unnamed, "default" value.
func (v ValueKey) Name() string { return v.rec.Name }

// Type returns the raw REG_* type code.
func (v ValueKey) Type() uint32 { return v.rec.Type }

// RawLength returns the value's declared data length.
func (v ValueKey) RawLength() uint32 { return v.rec.DataLength }

// Data resolves and returns the value's raw bytes, following inline
// storage, a directly-referenced cell, or a db big-data chain as the vk
// record dictates.
func (v ValueKey) Data() ([]byte, error) {
	if v.rec.DataInline {
		n := int(v.rec.DataLength)
		if n > 4 {
			n = 4
		}
		return append([]byte(nil), v.rec.InlineBytes[:n]...), nil
	}
	if v.rec.DataLength == 0 {
		return []byte{}, nil
	}

	// The referenced cell's own signature, not the declared data length,
	// decides whether it's a db chain: spec.md §3 is explicit that a
	// referenced cell is segmented "if that cell's signature is db".
	total := int(v.rec.DataLength)
	payload, err := v.h.RawCell(v.rec.DataOffset)
	if err != nil {
		return nil, err
	}
	isDB, db, raw, err := format.DecodeDataCell(payload)
	if err != nil {
		return nil, err
	}
	if isDB {
		return bigdata.Assemble(v.h, db, total)
	}
	if len(raw) < total {
		return nil, hiveerr.New(hiveerr.Validation, "referenced value data shorter than declared length")
	}
	return raw[:total], nil
}

// ValueKind labels the Go shape Decode produces for a given REG_* type.
type ValueKind int

const (
	KindBytes ValueKind = iota
	KindString
	KindMultiString
	KindInt32
	KindUint64
)

// Decoded is the type-directed interpretation of a value's raw bytes.
// Exactly one of Bytes, Str, Strs, I32, or U64 is meaningful, selected by
// Kind; the others are left zero. REG_NONE, REG_BINARY, the resource types
// and unrecognized types come back as the raw bytes (KindBytes); Decode does
// not render them as a hex string.
type Decoded struct {
	Kind  ValueKind
	Bytes []byte
	Str   string
	Strs  []string
	I32   int32
	U64   uint64
}

// Decode resolves the value's data and interprets it according to its
// REG_* type. Unrecognized type codes decode as KindBytes, passing the raw
// data through unchanged rather than failing: a forward-compatible type
// code is not a parse error.
func (v ValueKey) Decode() (Decoded, error) {
	raw, err := v.Data()
	if err != nil {
		return Decoded{}, err
	}
	return decodeTyped(v.rec.Type, raw, v.rec.NameIsASCII()), nil
}

// decodeTyped interprets raw value bytes by REG_* type. ascii mirrors
// spec.md §4.7: when VK_VALUE_COMP_NAME is set on the value, string-typed
// data is 8-bit codepage bytes rather than UTF-16LE, the same flag that
// governs the value's own name encoding.
func decodeTyped(regType uint32, raw []byte, ascii bool) Decoded {
	switch regType {
	case format.RegSZ, format.RegExpandSZ, format.RegLink:
		if ascii {
			s := strdecode.ASCII(raw)
			if len(s) > 0 && s[len(s)-1] == 0 {
				s = s[:len(s)-1]
			}
			return Decoded{Kind: KindString, Str: s}
		}
		return Decoded{Kind: KindString, Str: strdecode.UTF16LE(raw, true)}
	case format.RegMultiSZ:
		if ascii {
			return Decoded{Kind: KindMultiString, Strs: strdecode.SplitMultiSZASCII(raw)}
		}
		return Decoded{Kind: KindMultiString, Strs: strdecode.SplitMultiSZ(raw)}
	case format.RegDWORD:
		return Decoded{Kind: KindInt32, I32: leutil.I32(raw)}
	case format.RegDWORDBigEndian:
		return Decoded{Kind: KindInt32, I32: int32(leutil.U32BE(raw))}
	case format.RegQWORD:
		return Decoded{Kind: KindUint64, U64: leutil.U64(raw)}
	case format.RegNone,
		format.RegBinary,
		format.RegResourceList,
		format.RegFullResourceDescriptor,
		format.RegResourceRequirementsList:
		return Decoded{Kind: KindBytes, Bytes: raw}
	default:
		return Decoded{Kind: KindBytes, Bytes: raw}
	}
}
