package format

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeNKCompressedName(t *testing.T) {
	name := []byte("ROOT")
	buf := make([]byte, NKFixedHeaderSize+len(name))
	binary.LittleEndian.PutUint16(buf[nkFlagsOffset:], NKFlagCompressedName)
	binary.LittleEndian.PutUint64(buf[nkLastWriteOffset:], 0xfeedface)
	binary.LittleEndian.PutUint32(buf[nkParentOffset:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(buf[nkSubkeyCountOffset:], 1)
	binary.LittleEndian.PutUint32(buf[nkSubkeyListOffset:], 0x200)
	binary.LittleEndian.PutUint32(buf[nkVolSubkeyListOffset:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(buf[nkValueCountOffset:], 2)
	binary.LittleEndian.PutUint32(buf[nkValueListOffset:], 0x300)
	binary.LittleEndian.PutUint16(buf[nkNameLenOffset:], uint16(len(name)))
	copy(buf[nkNameOffset:], name)

	nk, err := DecodeNK(buf)
	require.NoError(t, err)
	require.Equal(t, "ROOT", nk.Name)
	require.Equal(t, uint32(1), nk.SubkeyCount)
	require.Equal(t, uint32(2), nk.ValueCount)
	require.Equal(t, uint32(0xFFFFFFFF), nk.ParentOffset)
	require.True(t, nk.IsCompressedName())
}

func TestDecodeNKUTF16Name(t *testing.T) {
	name := []byte{'A', 0, 'B', 0, 'C', 0}
	buf := make([]byte, NKFixedHeaderSize+len(name))
	binary.LittleEndian.PutUint16(buf[nkNameLenOffset:], uint16(len(name)))
	copy(buf[nkNameOffset:], name)

	nk, err := DecodeNK(buf)
	require.NoError(t, err)
	require.Equal(t, "ABC", nk.Name)
	require.False(t, nk.IsCompressedName())
}

func TestDecodeNKTruncated(t *testing.T) {
	_, err := DecodeNK(make([]byte, 4))
	require.Error(t, err)
}

func TestDecodeNKSanityLimit(t *testing.T) {
	buf := make([]byte, NKFixedHeaderSize)
	binary.LittleEndian.PutUint32(buf[nkSubkeyCountOffset:], MaxSubkeyCount+1)
	_, err := DecodeNK(buf)
	require.Error(t, err)
}
