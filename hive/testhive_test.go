package hive

import (
	"bytes"
	"encoding/binary"

	"github.com/forensicmatt/hivewalk/format"
)

// cellBuilder assembles a single hive bin's worth of cells by hand, the
// same shape real hive bytes take, so tests can exercise Hive without a
// real .hiv fixture on disk.
type cellBuilder struct {
	buf []byte // bin payload, starting right after the 32-byte bin header
}

// addCell appends a framed, allocated cell (sig + payload, padded to an
// 8-byte boundary) and returns its offset relative to the first hive bin.
func (b *cellBuilder) addCell(sig [2]byte, payload []byte) uint32 {
	body := append(append([]byte{}, sig[:]...), payload...)
	return b.addRaw(body)
}

// addRaw appends a framed, allocated cell with no 2-byte signature
// convention of its own: an offset array or a literal value-data blob.
func (b *cellBuilder) addRaw(body []byte) uint32 {
	total := format.CellHeaderSize + len(body)
	if rem := total % format.CellAlignment; rem != 0 {
		pad := format.CellAlignment - rem
		body = append(body, make([]byte, pad)...)
		total += pad
	}
	rel := uint32(format.HBINHeaderSize + len(b.buf))
	cell := make([]byte, total)
	binary.LittleEndian.PutUint32(cell, uint32(int32(-total)))
	copy(cell[format.CellHeaderSize:], body)
	b.buf = append(b.buf, cell...)
	return rel
}

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u16le(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func utf16le(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

// nkPayload builds a fixed nk header (74 bytes before the name) followed
// by the raw name bytes, matching the field layout in format/consts.go.
func nkPayload(flags uint16, parent, subkeyCount, subkeyList, valueCount, valueList, security, classOff uint32, name string) []byte {
	nameBytes := []byte(name)
	if flags&format.NKFlagCompressedName == 0 {
		nameBytes = utf16le(name)
	}
	p := make([]byte, format.NKFixedHeaderSize)
	binary.LittleEndian.PutUint16(p[0x00:], flags)
	binary.LittleEndian.PutUint64(p[0x02:], 0)
	binary.LittleEndian.PutUint32(p[0x0E:], parent)
	binary.LittleEndian.PutUint32(p[0x12:], subkeyCount)
	binary.LittleEndian.PutUint32(p[0x16:], 0)
	binary.LittleEndian.PutUint32(p[0x1A:], subkeyList)
	binary.LittleEndian.PutUint32(p[0x1E:], format.InvalidOffset)
	binary.LittleEndian.PutUint32(p[0x22:], valueCount)
	binary.LittleEndian.PutUint32(p[0x26:], valueList)
	binary.LittleEndian.PutUint32(p[0x2A:], security)
	binary.LittleEndian.PutUint32(p[0x2E:], classOff)
	binary.LittleEndian.PutUint16(p[0x46:], uint16(len(nameBytes)))
	return append(p, nameBytes...)
}

// vkPayload builds a fixed vk header followed by the raw name bytes.
func vkPayload(dataLen uint32, dataOffset uint32, regType uint32, flags uint16, name string) []byte {
	nameBytes := []byte(name)
	if flags&format.VKFlagASCIIName == 0 {
		nameBytes = utf16le(name)
	}
	p := make([]byte, format.VKFixedHeaderSize)
	binary.LittleEndian.PutUint16(p[0x00:], uint16(len(nameBytes)))
	binary.LittleEndian.PutUint32(p[0x02:], dataLen)
	binary.LittleEndian.PutUint32(p[0x06:], dataOffset)
	binary.LittleEndian.PutUint32(p[0x0A:], regType)
	binary.LittleEndian.PutUint16(p[0x0E:], flags)
	return append(p, nameBytes...)
}

// testHive is a small, hand-built single-bin hive exercising: a root key
// with an inline DWORD value and a security descriptor, one child key
// reached through an li subkey list, and a REG_SZ value on the child whose
// data lives in an externally-referenced raw cell.
type testHive struct {
	data       []byte
	rootSecOff uint32
}

func buildTestHive() testHive {
	b := &cellBuilder{}

	// Reserve offsets by building inner-to-outer: the string data cell and
	// its owning value list come first since nothing else depends on their
	// position, only on the offset returned.
	strDataOff := b.addRaw(utf16le("hello"))

	childValueListOff := uint32(0) // patched after the child vk cell exists
	childVKOff := b.addCell(format.SigVK, vkPayload(10, strDataOff, format.RegSZ, 0, "Greeting"))
	childValueListOff = b.addRaw(u32le(childVKOff))

	childNKOff := b.addCell(format.SigNK, nkPayload(0, 0, 0, format.InvalidOffset, 1, childValueListOff, format.InvalidOffset, format.InvalidOffset, "Child"))

	subkeyListOff := b.addCell(format.SigLI, append(u16le(1), u32le(childNKOff)...))

	rootValueListOff := uint32(0)
	rootVKOff := b.addCell(format.SigVK, vkPayload(0x80000004, 0x2A, format.RegDWORD, 0, "Count"))
	rootValueListOff = b.addRaw(u32le(rootVKOff))

	// A minimal, valid self-relative security descriptor: header only, no
	// owner/group/SACL/DACL.
	secDesc := make([]byte, 0x14)
	secDesc[0] = 1
	skPayload := append(append(u16le(0), u32le(format.InvalidOffset)...), u32le(format.InvalidOffset)...)
	skPayload = append(skPayload, u32le(1)...)          // reference count
	skPayload = append(skPayload, u32le(uint32(len(secDesc)))...)
	skPayload = append(skPayload, secDesc...)
	rootSecOff := b.addCell(format.SigSK, skPayload)

	rootNKOff := b.addCell(format.SigNK, nkPayload(0, format.InvalidOffset, 1, subkeyListOff, 1, rootValueListOff, rootSecOff, format.InvalidOffset, "CsiTool-CreateHive-{00000000-0000-0000-0000-000000000000}"))

	return testHive{data: assembleHiveBytes(b.buf, rootNKOff), rootSecOff: rootSecOff}
}

// assembleHiveBytes wraps a bin payload in a base block and a bin header,
// padding the bin out to a 4096-byte multiple as the format requires.
func assembleHiveBytes(binPayload []byte, rootOff uint32) []byte {
	const binHeaderLen = format.HBINHeaderSize
	total := binHeaderLen + len(binPayload)
	padded := ((total + format.HBINAlignment - 1) / format.HBINAlignment) * format.HBINAlignment
	bin := make([]byte, padded)
	binary.LittleEndian.PutUint32(bin[0x00:], format.HBINSignature)
	binary.LittleEndian.PutUint32(bin[0x04:], 0)
	binary.LittleEndian.PutUint32(bin[0x08:], uint32(padded))
	copy(bin[binHeaderLen:], binPayload)

	base := make([]byte, format.HeaderSize)
	binary.LittleEndian.PutUint32(base[0x00:], format.REGFSignature)
	binary.LittleEndian.PutUint32(base[0x24:], rootOff)
	binary.LittleEndian.PutUint32(base[0x28:], uint32(padded))

	return append(base, bin...)
}

func (t testHive) source() Source {
	return FromReadSeeker(bytes.NewReader(t.data))
}
