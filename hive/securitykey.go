package hive

import (
	"github.com/forensicmatt/hivewalk/format"
	"github.com/forensicmatt/hivewalk/secdesc"
)

// SecurityKey is a view of an sk cell: the descriptor bytes plus the
// ref-counting fields the hive uses to share one sk cell across many nk
// cells. hivewalk never follows Flink/Blink; those link sk cells into the
// hive's shared ring, which is irrelevant to reading a single node's
// descriptor.
type SecurityKey struct {
	rec format.SKRecord
}

// ReferenceCount returns how many nk cells share this sk cell.
func (s SecurityKey) ReferenceCount() uint32 { return s.rec.ReferenceCount }

// Descriptor parses the security descriptor bytes. A parse failure here
// does not invalidate the owning NodeKey: callers treat it as "no
// descriptor available" per spec.md §4.8 rather than aborting traversal.
func (s SecurityKey) Descriptor() (secdesc.SecurityDescriptor, error) {
	return secdesc.Parse(s.rec.Descriptor)
}
