package format

import (
	"github.com/forensicmatt/hivewalk/hiveerr"
	"github.com/forensicmatt/hivewalk/internal/leutil"
)

// MaxDescriptorLength bounds an sk cell's claimed descriptor size before it
// is trusted to slice the payload.
const MaxDescriptorLength = 256 * 1024

// SKRecord is the decoded, signature-stripped payload of an sk cell. Flink
// and Blink link sk cells into the hive's shared security-descriptor ring;
// hivewalk never follows them; one NodeKey's SecurityOffset is resolved
// in isolation.
type SKRecord struct {
	Flink            uint32
	Blink            uint32
	ReferenceCount   uint32
	DescriptorLength uint32
	Descriptor       []byte
}

// DecodeSK parses a signature-stripped sk payload.
func DecodeSK(payload []byte) (SKRecord, error) {
	if len(payload) < SKFixedHeaderSize {
		return SKRecord{}, hiveerr.New(hiveerr.Validation, "sk payload shorter than fixed header")
	}

	descLen := leutil.U32(payload[skDescriptorLengthOffset:])
	if descLen > MaxDescriptorLength {
		return SKRecord{}, hiveerr.New(hiveerr.Validation, "sk descriptor length exceeds sanity limit")
	}

	desc, ok := leutil.Slice(payload, skDescriptorOffset, int(descLen))
	if !ok {
		return SKRecord{}, hiveerr.New(hiveerr.Validation, "sk descriptor extends past payload")
	}

	return SKRecord{
		Flink:            leutil.U32(payload[skFlinkOffset:]),
		Blink:            leutil.U32(payload[skBlinkOffset:]),
		ReferenceCount:   leutil.U32(payload[skReferenceCountOffset:]),
		DescriptorLength: descLen,
		Descriptor:       desc,
	}, nil
}
