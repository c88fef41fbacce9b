// Package secdesc parses the SECURITY_DESCRIPTOR_RELATIVE bytes stored in
// an sk cell into structured Go values: owner and group SIDs, and the SACL
// and DACL access control lists. It is grounded on the standalone
// SDDL-string parser retrieved alongside the other examples, adapted from
// string emission to plain structs, since spec.md §4.8 only requires that
// the descriptor parse successfully, not that it round-trip through SDDL
// text.
package secdesc

import (
	"fmt"

	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
)

// Control bit that marks a self-relative descriptor. sk cells store the
// self-relative form; Parse treats every descriptor as self-relative and
// does not check this bit.
const controlSelfRelative uint16 = 0x8000

// SID is a Windows security identifier: S-Revision-Authority-Sub1-Sub2-...
type SID struct {
	Revision       byte
	Authority      uint64
	SubAuthorities []uint32
}

// String renders the SID in its canonical S-1-5-... form.
func (s SID) String() string {
	out := fmt.Sprintf("S-%d-%d", s.Revision, s.Authority)
	for _, sub := range s.SubAuthorities {
		out += fmt.Sprintf("-%d", sub)
	}
	return out
}

// ACE is one access control entry.
type ACE struct {
	Type       byte
	Flags      byte
	AccessMask uint32
	SID        SID
}

// ACL is an access control list: a SACL or a DACL.
type ACL struct {
	Revision byte
	Entries  []ACE
}

// SecurityDescriptor is the decoded form of an sk cell's descriptor bytes.
// Owner, Group, Sacl, and Dacl are nil when their offset field was zero,
// which is valid: not every descriptor sets all four.
type SecurityDescriptor struct {
	Revision byte
	Control  uint16
	Owner    *SID
	Group    *SID
	Sacl     *ACL
	Dacl     *ACL
}

const (
	offControl = 0x02
	offOwner   = 0x04
	offGroup   = 0x08
	offSacl    = 0x0C
	offDacl    = 0x10
	headerLen  = 0x14
)

// Parse decodes a self-relative security descriptor. Each of owner, group,
// sacl, and dacl is bounds-checked against len(data) before being
// dereferenced, so a corrupt offset fails as a hiveerr.SecurityDescriptor
// error instead of panicking.
func Parse(data []byte) (SecurityDescriptor, error) {
	if len(data) < headerLen {
		return SecurityDescriptor{}, hiveerr.New(hiveerr.SecurityDescriptor, "descriptor shorter than its own header")
	}

	sd := SecurityDescriptor{
		Revision: data[0],
		Control:  leutil.U16(data[offControl:]),
	}

	ownerOff := leutil.U32(data[offOwner:])
	groupOff := leutil.U32(data[offGroup:])
	saclOff := leutil.U32(data[offSacl:])
	daclOff := leutil.U32(data[offDacl:])

	if ownerOff != 0 {
		sid, err := parseSID(data, int(ownerOff))
		if err != nil {
			return SecurityDescriptor{}, err
		}
		sd.Owner = &sid
	}
	if groupOff != 0 {
		sid, err := parseSID(data, int(groupOff))
		if err != nil {
			return SecurityDescriptor{}, err
		}
		sd.Group = &sid
	}
	if saclOff != 0 && sd.Control&0x0010 != 0 { // SE_SACL_PRESENT
		acl, err := parseACL(data, int(saclOff))
		if err != nil {
			return SecurityDescriptor{}, err
		}
		sd.Sacl = &acl
	}
	if daclOff != 0 && sd.Control&0x0004 != 0 { // SE_DACL_PRESENT
		acl, err := parseACL(data, int(daclOff))
		if err != nil {
			return SecurityDescriptor{}, err
		}
		sd.Dacl = &acl
	}

	return sd, nil
}

func parseSID(data []byte, off int) (SID, error) {
	if off < 0 || off+8 > len(data) {
		return SID{}, hiveerr.New(hiveerr.SecurityDescriptor, "SID offset out of range")
	}
	revision := data[off]
	subCount := int(data[off+1])

	var authority uint64
	for i := 0; i < 6; i++ {
		authority = authority<<8 | uint64(data[off+2+i])
	}

	subStart := off + 8
	need, err := leutil.CheckListBounds(len(data), subStart, subCount, 4)
	if err != nil {
		return SID{}, hiveerr.New(hiveerr.SecurityDescriptor, "SID sub-authority array out of range")
	}
	_ = need

	subs := make([]uint32, subCount)
	for i := 0; i < subCount; i++ {
		subs[i] = leutil.U32(data[subStart+i*4:])
	}

	return SID{Revision: revision, Authority: authority, SubAuthorities: subs}, nil
}

func parseACL(data []byte, off int) (ACL, error) {
	const aclHeaderLen = 8
	if off < 0 || off+aclHeaderLen > len(data) {
		return ACL{}, hiveerr.New(hiveerr.SecurityDescriptor, "ACL offset out of range")
	}
	revision := data[off]
	aceCount := int(leutil.U16(data[off+4:]))

	entries := make([]ACE, 0, aceCount)
	pos := off + aclHeaderLen
	for i := 0; i < aceCount; i++ {
		ace, size, err := parseACE(data, pos)
		if err != nil {
			return ACL{}, err
		}
		entries = append(entries, ace)
		pos += size
	}

	return ACL{Revision: revision, Entries: entries}, nil
}

func parseACE(data []byte, off int) (ACE, int, error) {
	const aceHeaderLen = 8
	if off < 0 || off+aceHeaderLen > len(data) {
		return ACE{}, 0, hiveerr.New(hiveerr.SecurityDescriptor, "ACE header out of range")
	}
	aceType := data[off]
	aceFlags := data[off+1]
	aceSize := int(leutil.U16(data[off+2:]))
	if aceSize < aceHeaderLen || off+aceSize > len(data) {
		return ACE{}, 0, hiveerr.New(hiveerr.SecurityDescriptor, "ACE size out of range")
	}
	accessMask := leutil.U32(data[off+4:])

	sid, err := parseSID(data, off+8)
	if err != nil {
		return ACE{}, 0, err
	}

	return ACE{Type: aceType, Flags: aceFlags, AccessMask: accessMask, SID: sid}, aceSize, nil
}
