package hive

import (
	"time"

	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/strdecode"
	"github.com/forensicmatt/hivewalk/subkeys"
)

// NodeKey is a lazily-materializing view of an nk cell: its value list and
// subkey index are only resolved the first time NextValue or NextSubkey is
// called, and each keeps its own monotonic cursor from that point on, per
// spec.md §4.6. A NodeKey is a plain value; `clone := nk` gives clone an
// independent pair of cursors, since every field here is itself a value
// (the subkey cursor, built over subkeys.Index, is value-semantic for
// exactly this reason — see subkeys' package doc).
type NodeKey struct {
	h   *Hive
	rec format.NKRecord

	valuesInit   bool
	valueOffsets []uint32
	nextValuePos int

	subkeysInit bool
	subkeyCur   subkeys.Index
}

// NodeKeyAt resolves the cell at offsetRel and requires it to be an nk.
func (h *Hive) NodeKeyAt(offsetRel uint32) (NodeKey, error) {
	v, err := h.ResolveCell(offsetRel)
	if err != nil {
		return NodeKey{}, err
	}
	if v.Kind != format.KindNK {
		return NodeKey{}, hiveerr.New(hiveerr.Validation, "cell offset does not reference an nk cell")
	}
	return NodeKey{h: h, rec: v.NK}, nil
}

// Name returns the key's own name (not its full path).
func (n NodeKey) Name() string { return n.rec.Name }

// NameIsCompressed reports whether the key's own name was stored codepage-
// compressed (flag 0x0020) rather than as UTF-16LE, per spec.md §3's
// invariant on nk name encoding.
func (n NodeKey) NameIsCompressed() bool { return n.rec.IsCompressedName() }

// LastWritten returns the key's last-written timestamp.
func (n NodeKey) LastWritten() time.Time { return format.FiletimeToTime(n.rec.LastWriteRaw) }

// LastWrittenRaw returns the raw FILETIME, for callers that want it
// unconverted.
func (n NodeKey) LastWrittenRaw() uint64 { return n.rec.LastWriteRaw }

// ValueCount and SubkeyCount return the counts recorded in the nk cell
// itself, available without materializing either list.
func (n NodeKey) ValueCount() uint32  { return n.rec.ValueCount }
func (n NodeKey) SubkeyCount() uint32 { return n.rec.SubkeyCount }

// ClassName resolves and decodes the key's class name, if it has one.
// Class names are always stored as UTF-16LE, never codepage-compressed.
func (n NodeKey) ClassName() (string, bool, error) {
	if n.rec.ClassNameOffset == format.InvalidOffset || n.rec.ClassLength == 0 {
		return "", false, nil
	}
	raw, err := n.h.readBytesAt(n.rec.ClassNameOffset, int(n.rec.ClassLength))
	if err != nil {
		return "", false, err
	}
	return strdecode.UTF16LE(raw, false), true, nil
}

// ensureValues materializes the value-offset array on first use. A
// reference to a value list whose entries run past the cell's own declared
// size is truncated rather than rejected outright: spec.md treats trailing
// garbage past a valid prefix as tolerable noise, not corruption serious
// enough to abandon the whole key.
func (n *NodeKey) ensureValues() error {
	if n.valuesInit {
		return nil
	}
	n.valuesInit = true
	if n.rec.ValueListOffset == format.InvalidOffset || n.rec.ValueCount == 0 {
		return nil
	}
	payload, err := n.h.resolveRaw(n.rec.ValueListOffset)
	if err != nil {
		return err
	}
	want := int(n.rec.ValueCount)
	if max := len(payload) / 4; want > max {
		want = max
	}
	offsets, err := format.DecodeOffsetArray(payload, want)
	if err != nil {
		return err
	}
	n.valueOffsets = offsets
	return nil
}

// NextValue advances the key's value cursor and returns the next value, or
// ok=false once every value has been returned. Once exhausted it keeps
// returning ok=false rather than erroring or wrapping around. A zero offset
// within the authoritative prefix is skipped rather than resolved: spec.md
// §3 and §8 both call out that a value list's trailing zero entries "skip
// them without terminating."
func (n *NodeKey) NextValue() (vk ValueKey, ok bool, err error) {
	if err := n.ensureValues(); err != nil {
		return ValueKey{}, false, err
	}
	for n.nextValuePos < len(n.valueOffsets) {
		off := n.valueOffsets[n.nextValuePos]
		n.nextValuePos++
		if off == 0 {
			continue
		}

		v, err := n.h.ResolveCell(off)
		if err != nil {
			return ValueKey{}, false, err
		}
		if v.Kind != format.KindVK {
			return ValueKey{}, false, hiveerr.New(hiveerr.Validation, "value list entry does not reference a vk cell")
		}
		return ValueKey{h: n.h, rec: v.VK}, true, nil
	}
	return ValueKey{}, false, nil
}

// ensureSubkeys materializes the subkey index cursor on first use. A key
// with no subkeys leaves subkeyCur nil, which NextSubkey treats the same as
// an exhausted cursor.
func (n *NodeKey) ensureSubkeys() error {
	if n.subkeysInit {
		return nil
	}
	n.subkeysInit = true
	if n.rec.SubkeyListOffset == format.InvalidOffset || n.rec.SubkeyCount == 0 {
		return nil
	}
	v, err := n.h.ResolveCell(n.rec.SubkeyListOffset)
	if err != nil {
		return err
	}
	cur, err := subkeys.New(v)
	if err != nil {
		return err
	}
	n.subkeyCur = cur
	return nil
}

// NextSubkey advances the key's subkey cursor and returns the next child
// node key, or ok=false once every subkey has been returned.
func (n *NodeKey) NextSubkey() (child NodeKey, ok bool, err error) {
	if err := n.ensureSubkeys(); err != nil {
		return NodeKey{}, false, err
	}
	if n.subkeyCur == nil {
		return NodeKey{}, false, nil
	}
	next, off, ok, err := n.subkeyCur.Next(n.h)
	if err != nil {
		return NodeKey{}, false, err
	}
	if !ok {
		n.subkeyCur = nil
		return NodeKey{}, false, nil
	}
	n.subkeyCur = next
	child, err = n.h.NodeKeyAt(off)
	if err != nil {
		return NodeKey{}, false, err
	}
	return child, true, nil
}

// Security resolves the key's security descriptor, if it has one. A
// missing security offset is not an error: ok is simply false.
func (n NodeKey) Security() (desc SecurityKey, ok bool, err error) {
	if n.rec.SecurityOffset == format.InvalidOffset {
		return SecurityKey{}, false, nil
	}
	v, err := n.h.ResolveCell(n.rec.SecurityOffset)
	if err != nil {
		return SecurityKey{}, false, err
	}
	if v.Kind != format.KindSK {
		return SecurityKey{}, false, hiveerr.New(hiveerr.Validation, "security offset does not reference an sk cell")
	}
	return SecurityKey{rec: v.SK}, true, nil
}
