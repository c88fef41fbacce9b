package format

import (
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
)

// MaxIndexEntries bounds a list's claimed entry count before it is trusted
// to size a slice or drive a loop.
const MaxIndexEntries = 16 * 1024 * 1024

// IndexEntry is one element of an lf, lh, li, or ri list. CellOffset points
// at an nk cell for lf/lh/li, or at another lf/lh/li cell for ri. Hint holds
// the lf name-hint or lh hash; it is zero and unused for li and ri.
type IndexEntry struct {
	CellOffset uint32
	Hint       uint32
}

// IndexList is the decoded, signature-stripped payload shared by the four
// subkey index cell variants. The subkeys package turns this flat
// representation into the cursor contract spec.md §4.5 describes; format
// itself only frames the bytes.
type IndexList struct {
	Signature [2]byte
	Entries   []IndexEntry
}

// ParseIndexList decodes a signature-stripped lf/lh/li/ri payload. sig picks
// the entry width: lf and lh carry an (offset, hint) pair per entry; li and
// ri carry a bare offset.
func ParseIndexList(sig [2]byte, payload []byte) (IndexList, error) {
	if len(payload) < idxListOffset {
		return IndexList{}, hiveerr.New(hiveerr.Validation, "index list payload shorter than header")
	}
	count := leutil.U16(payload[idxCountOffset:])
	if int(count) > MaxIndexEntries {
		return IndexList{}, hiveerr.New(hiveerr.Validation, "index list count exceeds sanity limit")
	}

	wide := sig == SigLF || sig == SigLH
	entrySize := LIRIEntrySize
	if wide {
		entrySize = LFLHEntrySize
	}

	need, err := leutil.CheckListBounds(len(payload), idxListOffset, int(count), entrySize)
	if err != nil {
		return IndexList{}, hiveerr.New(hiveerr.Validation, "index list entries extend past payload")
	}
	_ = need

	entries := make([]IndexEntry, 0, count)
	off := idxListOffset
	for i := 0; i < int(count); i++ {
		e := IndexEntry{CellOffset: leutil.U32(payload[off:])}
		if wide {
			e.Hint = leutil.U32(payload[off+4:])
		}
		entries = append(entries, e)
		off += entrySize
	}

	return IndexList{Signature: sig, Entries: entries}, nil
}
