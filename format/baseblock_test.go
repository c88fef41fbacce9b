package format

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBaseBlockSuccess(t *testing.T) {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[regfSignatureOffset:], REGFSignature)
	binary.LittleEndian.PutUint32(buf[regfPrimarySeqOffset:], 2810)
	binary.LittleEndian.PutUint32(buf[regfSecondarySeqOffset:], 2809)
	binary.LittleEndian.PutUint64(buf[regfTimeStampOffset:], 130216723045201708)
	binary.LittleEndian.PutUint32(buf[regfMajorVerOffset:], 1)
	binary.LittleEndian.PutUint32(buf[regfMinorVerOffset:], 3)
	binary.LittleEndian.PutUint32(buf[regfRootCellOffset:], 32)
	binary.LittleEndian.PutUint32(buf[regfDataSizeOffset:], 3563520)
	binary.LittleEndian.PutUint32(buf[regfCheckSumOffset:], 1151707345)

	bb, err := ParseBaseBlock(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(2810), bb.PrimarySequence)
	require.Equal(t, uint32(2809), bb.SecondarySequence)
	require.Equal(t, uint32(32), bb.RootCellOffset)
	require.Equal(t, uint32(3563520), bb.HiveBinsDataSize)
	require.Equal(t, uint32(1), bb.MajorVersion)
	require.Equal(t, uint32(3), bb.MinorVersion)
	require.Equal(t, uint32(1151707345), bb.Checksum)
}

func TestParseBaseBlockBadSignature(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf, []byte{'B', 'A', 'D', '!'})
	_, err := ParseBaseBlock(buf)
	require.Error(t, err)
}

func TestParseBaseBlockTruncated(t *testing.T) {
	_, err := ParseBaseBlock(make([]byte, 10))
	require.Error(t, err)
}
