package leutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegerReaders(t *testing.T) {
	buf := []byte{0x78, 0x56, 0x34, 0x12, 0x01, 0x00, 0x00, 0x00}
	require.Equal(t, uint16(0x5678), U16(buf))
	require.Equal(t, uint32(0x12345678), U32(buf))
	require.Equal(t, uint64(0x0000000112345678), U64(buf))
	require.Equal(t, int32(-2147483648), I32([]byte{0x00, 0x00, 0x00, 0x80}))
	require.Equal(t, uint32(0x12345678), U32BE([]byte{0x12, 0x34, 0x56, 0x78}))
}

func TestIntegerReadersShortBuffer(t *testing.T) {
	require.Equal(t, uint16(0), U16(nil))
	require.Equal(t, uint32(0), U32([]byte{1, 2}))
	require.Equal(t, uint64(0), U64([]byte{1}))
}

func TestPutU32RoundTrip(t *testing.T) {
	var buf [4]byte
	PutU32(buf[:], 0x12345678)
	require.Equal(t, uint32(0x12345678), U32(buf[:]))
}
