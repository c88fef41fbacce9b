package format

import (
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
)

// MaxDBSegments bounds a db header's claimed segment count.
const MaxDBSegments = 1 * 1024 * 1024

// DBRecord is the decoded, signature-stripped payload of a db cell: the
// header that precedes a value's data when that data is too large for a
// single cell. SegmentListOffset points at a bare offset array (the same
// shape DecodeOffsetArray reads) whose entries are the actual data segment
// cells, in order.
type DBRecord struct {
	SegmentCount      uint16
	SegmentListOffset uint32
}

// DecodeDB parses a signature-stripped db payload.
func DecodeDB(payload []byte) (DBRecord, error) {
	if len(payload) < DBHeaderSize {
		return DBRecord{}, hiveerr.New(hiveerr.Validation, "db payload shorter than fixed header")
	}
	count := leutil.U16(payload[dbCountOffset:])
	if int(count) > MaxDBSegments {
		return DBRecord{}, hiveerr.New(hiveerr.Validation, "db segment count exceeds sanity limit")
	}
	return DBRecord{
		SegmentCount:      count,
		SegmentListOffset: leutil.U32(payload[dbListOffset:]),
	}, nil
}

// DecodeDataCell inspects a referenced value-data cell's raw payload (the
// bytes right after its 4-byte size prefix) and reports whether it's a db
// big-data header or plain value bytes. Per spec.md §3, this decision is
// made by peeking the cell's own signature, not by comparing the value's
// declared length against some threshold: a general DecodeCell dispatch
// would be wrong here, since a non-db data cell's first two bytes are
// ordinary value bytes that might coincidentally equal some other cell
// type's signature (nk, vk, ...) and send it down the wrong decode path.
func DecodeDataCell(payload []byte) (isDB bool, db DBRecord, raw []byte, err error) {
	if len(payload) >= SignatureSize && payload[0] == SigDB[0] && payload[1] == SigDB[1] {
		rec, derr := DecodeDB(payload[SignatureSize:])
		if derr != nil {
			return false, DBRecord{}, nil, derr
		}
		return true, rec, nil, nil
	}
	return false, DBRecord{}, payload, nil
}

// DecodeOffsetArray reads a bare array of little-endian uint32 cell offsets:
// the shape used both by a value list (one vk offset per value) and by a
// db segment list (one data-segment offset per chunk). The caller supplies
// the expected count; DecodeOffsetArray refuses to read past what the
// payload actually holds.
func DecodeOffsetArray(payload []byte, count int) ([]uint32, error) {
	if count < 0 || count > MaxIndexEntries {
		return nil, hiveerr.New(hiveerr.Validation, "offset array count exceeds sanity limit")
	}
	need, err := leutil.CheckListBounds(len(payload), 0, count, 4)
	if err != nil {
		return nil, hiveerr.New(hiveerr.Validation, "offset array extends past payload")
	}
	_ = need
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		out[i] = leutil.U32(payload[i*4:])
	}
	return out, nil
}
