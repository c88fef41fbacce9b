// Package format decodes the fixed-layout structures of the Windows
// Registry hive file: the base block, hive bins, and the cell header that
// frames every node key, value key, security key, index, and big-data
// record. It knows nothing about how cells connect into a tree; that is
// hive's and walk's job.
package format

const (
	// HeaderSize is the size of the REGF base block, always 4096 bytes.
	HeaderSize = 4096

	// HBINHeaderSize is the size of a hive bin's own header.
	HBINHeaderSize = 0x20

	// CellHeaderSize is the 4-byte signed-size prefix on every cell.
	CellHeaderSize = 4

	// HBINAlignment is the required alignment of a hive bin (4 KiB).
	HBINAlignment = 0x1000

	// CellAlignment is the required alignment of a cell (8 bytes).
	CellAlignment = 8

	// InvalidOffset is the sentinel meaning "no such child/list".
	InvalidOffset = 0xFFFFFFFF

	// SignatureSize is the length, in bytes, of a cell's 2-byte type tag.
	SignatureSize = 2
)

// Cell signatures (the two bytes immediately following the size prefix).
var (
	SigNK = [2]byte{'n', 'k'}
	SigVK = [2]byte{'v', 'k'}
	SigLF = [2]byte{'l', 'f'}
	SigLH = [2]byte{'l', 'h'}
	SigLI = [2]byte{'l', 'i'}
	SigRI = [2]byte{'r', 'i'}
	SigSK = [2]byte{'s', 'k'}
	SigDB = [2]byte{'d', 'b'}
)

// REGFSignature and HBINSignature are the file- and bin-level magic values.
const (
	REGFSignature uint32 = 0x66676572 // "regf"
	HBINSignature uint32 = 0x6E696268 // "hbin"
)

// NK flag bits.
const (
	NKFlagCompressedName uint16 = 0x0020
)

// VK flag bits and the data-length inline sentinel.
const (
	VKFlagASCIIName  uint16 = 0x0001
	VKDataInlineBit  uint32 = 0x80000000
	VKDataLengthMask uint32 = 0x7FFFFFFF
)

// Registry value type codes (spec.md §4.7).
const (
	RegNone                     uint32 = 0
	RegSZ                       uint32 = 1
	RegExpandSZ                 uint32 = 2
	RegBinary                   uint32 = 3
	RegDWORD                    uint32 = 4
	RegDWORDBigEndian           uint32 = 5
	RegLink                     uint32 = 6
	RegMultiSZ                  uint32 = 7
	RegResourceList             uint32 = 8
	RegFullResourceDescriptor   uint32 = 9
	RegResourceRequirementsList uint32 = 10
	RegQWORD                    uint32 = 11
)

// Field offsets within the REGF base block (absolute, from the start of the
// 4096-byte header).
const (
	regfSignatureOffset    = 0x000
	regfPrimarySeqOffset   = 0x004
	regfSecondarySeqOffset = 0x008
	regfTimeStampOffset    = 0x00C
	regfMajorVerOffset     = 0x014
	regfMinorVerOffset     = 0x018
	regfTypeOffset         = 0x01C
	regfFormatOffset       = 0x020
	regfRootCellOffset     = 0x024
	regfDataSizeOffset     = 0x028
	regfClusterOffset      = 0x02C
	regfFileNameOffset     = 0x030
	regfFileNameSize       = 64
	regfCheckSumOffset     = 0x1FC
	regfBootTypeOffset     = 0xFF8
	regfBootRecovOffset    = 0xFFC
)

// Field offsets within a hive bin header.
const (
	hbinSignatureOffset = 0x00
	hbinFileOffsetOff   = 0x04
	hbinSizeOffset      = 0x08
	hbinTimestampOffset = 0x10
)

// Field offsets within an NK (node key) payload.
const (
	nkFlagsOffset          = 0x00
	nkLastWriteOffset      = 0x02
	nkParentOffset         = 0x0E
	nkSubkeyCountOffset    = 0x12
	nkVolSubkeyCountOffset = 0x16
	nkSubkeyListOffset     = 0x1A
	nkVolSubkeyListOffset  = 0x1E
	nkValueCountOffset     = 0x22
	nkValueListOffset      = 0x26
	nkSecurityOffset       = 0x2A
	nkClassNameOffset      = 0x2E
	nkMaxNameLenOffset     = 0x32
	nkMaxClassLenOffset    = 0x36
	nkMaxValueNameOffset   = 0x3A
	nkMaxValueDataOffset   = 0x3E
	nkWorkVarOffset        = 0x42
	nkNameLenOffset        = 0x46
	nkClassLenOffset       = 0x48
	nkNameOffset           = 0x4A

	// NKFixedHeaderSize is the size of the fixed NK header, after the 2-byte
	// signature, up to (but not including) the variable-length name.
	NKFixedHeaderSize = nkNameOffset
)

// Field offsets within a VK (value key) payload.
const (
	vkNameLenOffset = 0x00
	vkDataLenOffset = 0x02
	vkDataOffOffset = 0x06
	vkTypeOffset    = 0x0A
	vkFlagsOffset   = 0x0E
	vkNameOffset    = 0x12

	// VKFixedHeaderSize is the size of the fixed VK header, after the 2-byte
	// signature, up to (but not including) the variable-length name.
	VKFixedHeaderSize = vkNameOffset
)

// Field offsets within an SK (security key) payload.
const (
	skFlinkOffset            = 0x02
	skBlinkOffset            = 0x06
	skReferenceCountOffset   = 0x0A
	skDescriptorLengthOffset = 0x0E
	skDescriptorOffset       = 0x12

	// SKFixedHeaderSize is the size of the fixed SK header before the
	// descriptor bytes.
	SKFixedHeaderSize = skDescriptorOffset
)

// Field offsets shared by the lf/lh/li/ri index list payloads. Like nk and
// vk (and unlike sk, whose payload opens with a 2-byte reserved field),
// these carry no leading reserved field: count sits immediately after the
// 2-byte signature.
const (
	idxCountOffset = 0x00
	idxListOffset  = 0x02

	// IdxListOffset is the start of the variable-length offset/entry array
	// in any of the four subkey index variants.
	IdxListOffset = idxListOffset

	// LFLHEntrySize is the size of one lf/lh entry: a 4-byte cell offset
	// plus a 4-byte hint or hash.
	LFLHEntrySize = 8

	// LIRIEntrySize is the size of one li or ri entry: a bare 4-byte offset.
	LIRIEntrySize = 4
)

// Field offsets within a db (big-data) header payload. Like the index
// lists, db carries no leading reserved field: segment count sits right
// after the signature.
const (
	dbCountOffset = 0x00
	dbListOffset  = 0x02

	// DBHeaderSize is the size of the fixed db header.
	DBHeaderSize = 0x06
)
