package format

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHBINSuccess(t *testing.T) {
	buf := make([]byte, HBINHeaderSize)
	binary.LittleEndian.PutUint32(buf[hbinSignatureOffset:], HBINSignature)
	binary.LittleEndian.PutUint32(buf[hbinFileOffsetOff:], 0x1000)
	binary.LittleEndian.PutUint32(buf[hbinSizeOffset:], 0x2000)

	hb, err := ParseHBIN(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), hb.FileOffset)
	require.Equal(t, uint32(0x2000), hb.Size)
}

func TestParseHBINBadSignature(t *testing.T) {
	buf := make([]byte, HBINHeaderSize)
	copy(buf, []byte{'n', 'o', 'p', 'e'})
	_, err := ParseHBIN(buf)
	require.Error(t, err)
}

func TestParseHBINUnalignedSize(t *testing.T) {
	buf := make([]byte, HBINHeaderSize)
	binary.LittleEndian.PutUint32(buf[hbinSignatureOffset:], HBINSignature)
	binary.LittleEndian.PutUint32(buf[hbinSizeOffset:], 0x123)
	_, err := ParseHBIN(buf)
	require.Error(t, err)
}
