package hive

import (
	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/hiveerr"
)

// Hive is an opened registry hive: a parsed base block plus a windowed view
// over the bytes that follow it. All cell offsets passed to its methods are
// relative to the first hive bin, exactly as they're stored on disk.
type Hive struct {
	base   format.BaseBlock
	win    *window
	binOff int64
}

// Open reads and validates the base block from src and returns a Hive ready
// to resolve cells. src's position is left undefined; every subsequent read
// seeks explicitly.
func Open(src Source) (*Hive, error) {
	hdr := make([]byte, format.HeaderSize)
	if err := readAt(src, 0, hdr); err != nil {
		return nil, err
	}
	base, err := format.ParseBaseBlock(hdr)
	if err != nil {
		return nil, err
	}
	return &Hive{
		base:   base,
		win:    newWindow(src),
		binOff: format.HeaderSize,
	}, nil
}

// Base returns the hive's parsed base block.
func (h *Hive) Base() format.BaseBlock { return h.base }

// RootOffset returns the relative cell offset of the hive's root node key.
func (h *Hive) RootOffset() uint32 { return h.base.RootCellOffset }

// Root resolves and decodes the root node key.
func (h *Hive) Root() (NodeKey, error) {
	return h.NodeKeyAt(h.base.RootCellOffset)
}

// checkRange validates a relative offset falls within the hive's declared
// bins region before it is ever added to binOff and dereferenced.
func (h *Hive) checkRange(offsetRel uint32) error {
	if offsetRel == format.InvalidOffset {
		return hiveerr.New(hiveerr.Validation, "attempted to resolve the sentinel offset")
	}
	if uint64(offsetRel) >= uint64(h.base.HiveBinsDataSize) {
		return hiveerr.New(hiveerr.Validation, "cell offset outside hive-bins data region")
	}
	return nil
}

// ResolveCell reads and frames the cell at offsetRel, dispatching to its
// signature-matched per-type decoder. It satisfies subkeys.Resolver.
func (h *Hive) ResolveCell(offsetRel uint32) (format.Variant, error) {
	if err := h.checkRange(offsetRel); err != nil {
		return format.Variant{}, err
	}
	abs := h.binOff + int64(offsetRel)

	head, err := h.win.read(abs, format.CellHeaderSize)
	if err != nil {
		return format.Variant{}, err
	}
	size, _, err := format.PeekCellSize(head)
	if err != nil {
		return format.Variant{}, err
	}

	full, err := h.win.read(abs, size)
	if err != nil {
		return format.Variant{}, err
	}
	return format.DecodeCell(full)
}

// resolveRaw reads a cell's framing and returns its payload bytes verbatim,
// without signature dispatch. Value lists and db segment-offset arrays are
// bare uint32 arrays with no signature of their own; the caller already
// knows how many entries to expect from the owning nk or db record.
func (h *Hive) resolveRaw(offsetRel uint32) ([]byte, error) {
	if err := h.checkRange(offsetRel); err != nil {
		return nil, err
	}
	abs := h.binOff + int64(offsetRel)

	head, err := h.win.read(abs, format.CellHeaderSize)
	if err != nil {
		return nil, err
	}
	size, free, err := format.PeekCellSize(head)
	if err != nil {
		return nil, err
	}
	if free {
		return nil, hiveerr.New(hiveerr.Validation, "offset array points at a free cell")
	}

	full, err := h.win.read(abs, size)
	if err != nil {
		return nil, err
	}
	if _, _, err := format.ParseCellHeader(full); err != nil {
		return nil, err
	}
	return full[format.CellHeaderSize:], nil
}

// RawCell returns the cell payload at offsetRel verbatim, with no signature
// dispatch. It satisfies bigdata.Reader: both a value list and a db
// segment-offset array are bare uint32 arrays that never carry a signature
// of their own.
func (h *Hive) RawCell(offsetRel uint32) ([]byte, error) {
	return h.resolveRaw(offsetRel)
}

// readBytesAt returns the first n bytes of the raw cell payload at
// offsetRel, framed by resolveRaw but with no signature dispatch, and fails
// if the payload is shorter than n. NodeKey.ClassName uses it to read a
// key's class-name bytes.
func (h *Hive) readBytesAt(offsetRel uint32, n int) ([]byte, error) {
	payload, err := h.resolveRaw(offsetRel)
	if err != nil {
		return nil, err
	}
	if len(payload) < n {
		return nil, hiveerr.New(hiveerr.Validation, "referenced data cell shorter than declared length")
	}
	return payload[:n], nil
}
