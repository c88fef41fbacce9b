package hive

import (
	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/hiveerr"
)

// HiveBin is one decoded bin header plus its absolute file location, as
// produced by a sequential scan over every bin in the file.
//
// Nothing in NodeKey/ValueKey/SecurityKey resolution ever uses this: those
// always seek straight to an offset named by a parent record. BinIterator
// and CellIterator exist for the other access pattern spec.md §4.3
// describes — walking the bins and their cells in storage order, with no
// reference to the key tree at all — grounded on the teacher's
// HBINIterator/CellIterator (hive/hbin.go, hive/cell_iter.go), adapted from
// a zero-copy mmap view to reads through the windowed Source.
type HiveBin struct {
	AbsOffset uint32
	Header    format.HBIN
}

// BinIterator walks every hive bin in file order.
type BinIterator struct {
	h    *Hive
	next uint32
	done bool
}

// Bins starts a sequential scan of every hive bin in h, beginning with the
// one immediately after the base block.
func (h *Hive) Bins() *BinIterator {
	return &BinIterator{h: h, next: uint32(format.HeaderSize)}
}

// Next decodes the next bin header and advances past it. ok is false once
// the cursor reaches the end of the hive-bins data region (the normal
// end-of-scan case) or a bin header fails to parse (a genuine error,
// distinguishable via err). A malformed bin never corrupts a sibling bin's
// data; it simply ends the scan at that point.
func (it *BinIterator) Next() (bin HiveBin, ok bool, err error) {
	if it.done {
		return HiveBin{}, false, nil
	}
	limit := uint32(format.HeaderSize) + it.h.base.HiveBinsDataSize
	if it.next >= limit {
		it.done = true
		return HiveBin{}, false, nil
	}

	hdr, rerr := it.h.win.read(int64(it.next), format.HBINHeaderSize)
	if rerr != nil {
		it.done = true
		return HiveBin{}, false, rerr
	}
	hb, perr := format.ParseHBIN(hdr)
	if perr != nil {
		it.done = true
		return HiveBin{}, false, perr
	}

	bin = HiveBin{AbsOffset: it.next, Header: hb}
	next := it.next + hb.Size
	if next <= it.next {
		it.done = true
		return HiveBin{}, false, hiveerr.New(hiveerr.Validation, "hive bin size did not advance the scan")
	}
	it.next = next
	return bin, true, nil
}

// CellIterator walks one bin's cells in storage order, independent of
// which cells are actually reachable from the key tree.
type CellIterator struct {
	h    *Hive
	bin  HiveBin
	pos  int
	done bool
	err  error
}

// Cells starts a sequential cell scan over bin.
func (h *Hive) Cells(bin HiveBin) *CellIterator {
	return &CellIterator{h: h, bin: bin, pos: format.HBINHeaderSize}
}

// Next decodes the cell at the iterator's current position, relative to
// the hive-bins data region (the same relative offsets NodeKey/ValueKey
// store), and advances past it. ok is false once the bin is exhausted or a
// framing error was hit; Err distinguishes the two. Per spec.md §4.3, a
// framing error here ends only this bin's enumeration: it is never
// returned to BinIterator and never stops a later bin's scan.
func (it *CellIterator) Next() (offsetRel uint32, v format.Variant, ok bool) {
	if it.done {
		return 0, format.Variant{}, false
	}
	limit := int(it.bin.Header.Size)
	if it.pos >= limit {
		it.done = true
		return 0, format.Variant{}, false
	}

	abs := int64(it.bin.AbsOffset) + int64(it.pos)
	head, err := it.h.win.read(abs, format.CellHeaderSize)
	if err != nil {
		it.done, it.err = true, err
		return 0, format.Variant{}, false
	}
	size, _, err := format.PeekCellSize(head)
	if err != nil {
		it.done, it.err = true, err
		return 0, format.Variant{}, false
	}
	if it.pos+size > limit {
		it.done, it.err = true, hiveerr.New(hiveerr.Validation, "cell extends past its hive bin")
		return 0, format.Variant{}, false
	}

	full, err := it.h.win.read(abs, size)
	if err != nil {
		it.done, it.err = true, err
		return 0, format.Variant{}, false
	}
	variant, err := format.DecodeCell(full)
	if err != nil {
		it.done, it.err = true, err
		return 0, format.Variant{}, false
	}

	offsetRel = uint32(abs) - format.HeaderSize
	it.pos += size
	return offsetRel, variant, true
}

// Err reports the error, if any, that ended the most recent Next call.
// A nil Err after ok=false means the bin was simply exhausted.
func (it *CellIterator) Err() error { return it.err }
