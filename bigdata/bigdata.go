// Package bigdata reassembles a value's data when it was too large for one
// cell and was instead split across a chain of segments referenced by a db
// cell, per spec.md §4.7's big-data handling. It is grounded on the
// teacher's hive/db.go (ParseDB, ResolveList) but flattened from a view
// type with a separate resolve step into a single Assemble call, since
// hivewalk never needs to inspect a db cell's structure for its own sake.
package bigdata

import (
	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/hiveerr"
)

// Reader fetches raw, undispatched cell payloads by relative offset.
// hive.Hive's RawCell method satisfies this.
type Reader interface {
	RawCell(offsetRel uint32) ([]byte, error)
}

// Assemble follows a db record's segment list and concatenates every
// segment's bytes in order, then truncates the result to totalLen. Segment
// cells routinely run a little past the value's declared length since
// they're sized to the cell allocator's granularity, not the value's exact
// byte count; that slack is expected and silently dropped.
func Assemble(r Reader, db format.DBRecord, totalLen int) ([]byte, error) {
	if totalLen < 0 {
		return nil, hiveerr.New(hiveerr.Validation, "negative declared data length")
	}

	listPayload, err := r.RawCell(db.SegmentListOffset)
	if err != nil {
		return nil, err
	}
	offsets, err := format.DecodeOffsetArray(listPayload, int(db.SegmentCount))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, totalLen)
	for _, off := range offsets {
		seg, err := r.RawCell(off)
		if err != nil {
			return nil, err
		}
		out = append(out, seg...)
		if len(out) >= totalLen {
			break
		}
	}
	if len(out) < totalLen {
		return nil, hiveerr.New(hiveerr.Validation, "big-data segments shorter than declared value length")
	}
	return out[:totalLen], nil
}
