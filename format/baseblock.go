package format

import (
	"time"

	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
	"github.com/forensicmatt/hivewalk/internal/strdecode"
)

// BaseBlock is the fixed 4096-byte header at the start of every hive file.
//
//	Offset  Size  Field
//	0x000   4     'r' 'e' 'g' 'f'
//	0x004   4     Primary sequence number
//	0x008   4     Secondary sequence number
//	0x00C   8     Last written FILETIME
//	0x014   4     Major version
//	0x018   4     Minor version
//	0x01C   4     File type
//	0x020   4     File format
//	0x024   4     Root cell offset (relative to first hive bin)
//	0x028   4     Hive-bins data size
//	0x02C   4     Clustering factor
//	0x030   64    Internal file name, UTF-16LE
//	0x070   396   Reserved
//	0x1FC   4     Checksum (read, never verified)
//	0x200   3576  Reserved
//	0xFF8   4     Boot type
//	0xFFC   4     Boot recover
//
// Equal primary/secondary sequence numbers mean the hive was shut down
// cleanly; the field is retained but never enforced (spec.md §3).
type BaseBlock struct {
	PrimarySequence   uint32
	SecondarySequence uint32
	LastWrittenRaw    uint64
	MajorVersion      uint32
	MinorVersion      uint32
	FileType          uint32
	FileFormat        uint32
	RootCellOffset    uint32
	HiveBinsDataSize  uint32
	ClusteringFactor  uint32
	InternalFileName  string
	Checksum          uint32
	BootType          uint32
	BootRecover       uint32
}

// LastWritten returns LastWrittenRaw decoded as a time.Time.
func (b BaseBlock) LastWritten() time.Time {
	return FiletimeToTime(b.LastWrittenRaw)
}

// ParseBaseBlock validates and decodes the 4096-byte base block. Reserved
// regions and the checksum are read but never verified, matching spec.md §4.2.
func ParseBaseBlock(b []byte) (BaseBlock, error) {
	if len(b) < HeaderSize {
		return BaseBlock{}, hiveerr.New(hiveerr.Validation, "base block shorter than 4096 bytes")
	}
	sig := leutil.U32(b[regfSignatureOffset:])
	if sig != REGFSignature {
		return BaseBlock{}, hiveerr.New(hiveerr.Validation, "base block signature mismatch")
	}

	nameRaw, _ := leutil.Slice(b, regfFileNameOffset, regfFileNameSize)

	return BaseBlock{
		PrimarySequence:   leutil.U32(b[regfPrimarySeqOffset:]),
		SecondarySequence: leutil.U32(b[regfSecondarySeqOffset:]),
		LastWrittenRaw:    leutil.U64(b[regfTimeStampOffset:]),
		MajorVersion:      leutil.U32(b[regfMajorVerOffset:]),
		MinorVersion:      leutil.U32(b[regfMinorVerOffset:]),
		FileType:          leutil.U32(b[regfTypeOffset:]),
		FileFormat:        leutil.U32(b[regfFormatOffset:]),
		RootCellOffset:    leutil.U32(b[regfRootCellOffset:]),
		HiveBinsDataSize:  leutil.U32(b[regfDataSizeOffset:]),
		ClusteringFactor:  leutil.U32(b[regfClusterOffset:]),
		InternalFileName:  strdecode.UTF16LE(nameRaw, true),
		Checksum:          leutil.U32(b[regfCheckSumOffset:]),
		BootType:          leutil.U32(b[regfBootTypeOffset:]),
		BootRecover:       leutil.U32(b[regfBootRecovOffset:]),
	}, nil
}
