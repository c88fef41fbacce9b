package format

import (
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
)

// Kind tags which variant a decoded Cell turned out to hold.
type Kind int

const (
	KindNK Kind = iota
	KindVK
	KindSK
	KindLF
	KindLH
	KindLI
	KindRI
	KindDB
	KindFree
	KindUnknown
)

// peekCellHeader reads and validates the signed 4-byte size prefix at the
// start of b without requiring the rest of the cell to already be present:
// callers that read a cell in two phases (peek the 4-byte prefix to learn
// how much to read, then read that many bytes) need the decoded size before
// they can size their second read, so the "does the full cell fit in b"
// check is left to ParseCellHeader/DecodeCell, called once the full cell is
// in hand.
func peekCellHeader(b []byte) (size int, free bool, err error) {
	if len(b) < CellHeaderSize {
		return 0, false, hiveerr.New(hiveerr.Validation, "cell header shorter than 4 bytes")
	}
	raw := leutil.I32(b)
	free = raw > 0
	abs := int(raw)
	if abs < 0 {
		abs = -abs
	}
	if abs < CellHeaderSize {
		return 0, false, hiveerr.New(hiveerr.Validation, "cell size smaller than its own header")
	}
	if abs%CellAlignment != 0 {
		return 0, false, hiveerr.New(hiveerr.Validation, "cell size not a multiple of 8")
	}
	return abs, free, nil
}

// PeekCellSize reads just the signed 4-byte size prefix at the start of b
// (b need only hold those 4 bytes) and reports the cell's absolute size and
// allocation state, ahead of reading the rest of the cell. Callers read
// exactly that many bytes next and pass them to ParseCellHeader or
// DecodeCell for the full, size-checked decode.
func PeekCellSize(b []byte) (size int, free bool, err error) {
	return peekCellHeader(b)
}

// ParseCellHeader reads the signed 4-byte size prefix at the start of b and
// validates that b holds the cell's full declared size. A positive size
// marks a free cell; the hive format stores allocated cells with a negative
// size, so the on-disk sign is inverted from what callers want: Size here
// is always the absolute, positive byte count, and Free carries the
// allocation state separately.
func ParseCellHeader(b []byte) (size int, free bool, err error) {
	size, free, err = peekCellHeader(b)
	if err != nil {
		return 0, false, err
	}
	if size > len(b) {
		return 0, false, hiveerr.New(hiveerr.Validation, "cell size extends past buffer")
	}
	return size, free, nil
}

// Variant is the decoded form of one cell: the size-prefix framing plus,
// for allocated cells with a recognized signature, the per-type record. A
// cell whose bytes were already known (by the caller's context, not by
// signature sniffing) to be a bare offset array never reaches Variant;
// DecodeOffsetArray reads those directly.
type Variant struct {
	Kind  Kind
	Size  int
	NK    NKRecord
	VK    VKRecord
	SK    SKRecord
	Index IndexList
	DB    DBRecord
	Raw   []byte
}

// DecodeCell frames one cell starting at b[0] and, if it is allocated and
// carries a recognized 2-byte signature, dispatches to the matching
// per-type decoder. b must hold at least the cell's full size; callers
// reading from a buffered Source slice exactly that much first.
func DecodeCell(b []byte) (Variant, error) {
	size, free, err := ParseCellHeader(b)
	if err != nil {
		return Variant{}, err
	}
	if free {
		return Variant{Kind: KindFree, Size: size}, nil
	}

	payload := b[CellHeaderSize:size]
	if len(payload) < SignatureSize {
		return Variant{}, hiveerr.New(hiveerr.Validation, "allocated cell shorter than a signature")
	}
	sig := [2]byte{payload[0], payload[1]}
	rest := payload[SignatureSize:]

	switch sig {
	case SigNK:
		rec, err := DecodeNK(rest)
		if err != nil {
			return Variant{}, err
		}
		return Variant{Kind: KindNK, Size: size, NK: rec}, nil
	case SigVK:
		rec, err := DecodeVK(rest)
		if err != nil {
			return Variant{}, err
		}
		return Variant{Kind: KindVK, Size: size, VK: rec}, nil
	case SigSK:
		rec, err := DecodeSK(rest)
		if err != nil {
			return Variant{}, err
		}
		return Variant{Kind: KindSK, Size: size, SK: rec}, nil
	case SigLF, SigLH, SigLI, SigRI:
		idx, err := ParseIndexList(sig, rest)
		if err != nil {
			return Variant{}, err
		}
		return Variant{Kind: kindForIndexSig(sig), Size: size, Index: idx}, nil
	case SigDB:
		db, err := DecodeDB(rest)
		if err != nil {
			return Variant{}, err
		}
		return Variant{Kind: KindDB, Size: size, DB: db}, nil
	default:
		return Variant{Kind: KindUnknown, Size: size, Raw: payload}, nil
	}
}

func kindForIndexSig(sig [2]byte) Kind {
	switch sig {
	case SigLF:
		return KindLF
	case SigLH:
		return KindLH
	case SigLI:
		return KindLI
	default:
		return KindRI
	}
}
