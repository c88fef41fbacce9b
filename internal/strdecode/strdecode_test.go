package strdecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUTF16LE(t *testing.T) {
	// "Hi" encoded as UTF-16LE.
	b := []byte{'H', 0, 'i', 0}
	require.Equal(t, "Hi", UTF16LE(b, false))
}

func TestUTF16LEStripTrailingNull(t *testing.T) {
	b := []byte{'H', 0, 'i', 0, 0, 0}
	require.Equal(t, "Hi", UTF16LE(b, true))
}

func TestUTF16LEOddTrailingByte(t *testing.T) {
	b := []byte{'H', 0, 'i', 0, 0xFF}
	require.Equal(t, "Hi", UTF16LE(b, false), "expected the odd trailing byte to be dropped")
}

// TestUTF16LEValidSurrogatePair exercises the happy path for a supplementary
// plane character: U+1F600 (grinning face) encodes as the surrogate pair
// D83D DE00.
func TestUTF16LEValidSurrogatePair(t *testing.T) {
	b := []byte{0x3D, 0xD8, 0x00, 0xDE}
	require.Equal(t, "\U0001F600", UTF16LE(b, false))
}

// TestUTF16LELoneSurrogatesAreDropped exercises spec.md §4.1's "trap =
// ignore" requirement: a lone high surrogate and a lone low surrogate are
// both dropped from the output, not replaced with U+FFFD.
func TestUTF16LELoneSurrogatesAreDropped(t *testing.T) {
	// Lone high surrogate (D800) between two plain letters.
	loneHigh := []byte{'A', 0, 0x00, 0xD8, 'B', 0}
	require.Equal(t, "AB", UTF16LE(loneHigh, false))

	// Lone low surrogate (DC00) between two plain letters.
	loneLow := []byte{'A', 0, 0x00, 0xDC, 'B', 0}
	require.Equal(t, "AB", UTF16LE(loneLow, false))

	// A high surrogate at the very end of the buffer, with no low half to pair with.
	highAtEnd := []byte{'A', 0, 0x00, 0xD8}
	require.Equal(t, "A", UTF16LE(highAtEnd, false))
}

func TestASCIIPlain(t *testing.T) {
	require.Equal(t, "CsiTool", ASCII([]byte("CsiTool")))
}

func TestASCIIExtendedCodepage(t *testing.T) {
	// 0xE9 in Windows-1252 is U+00E9 (é).
	require.Equal(t, "é", ASCII([]byte{0xE9}))
}

func TestSplitMultiSZ(t *testing.T) {
	// "a\0b\0" as UTF-16LE: two NUL-terminated strings.
	b := []byte{'a', 0, 0, 0, 'b', 0, 0, 0}
	require.Equal(t, []string{"a", "b"}, SplitMultiSZ(b))
}

func TestSplitMultiSZEmpty(t *testing.T) {
	require.Empty(t, SplitMultiSZ(nil))
}

func TestSplitMultiSZASCII(t *testing.T) {
	b := []byte{'a', 0, 'b', 0}
	require.Equal(t, []string{"a", "b"}, SplitMultiSZASCII(b))
}
