package leutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexUpper(t *testing.T) {
	require.Equal(t, "DEADBEEF", HexUpper([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	require.Equal(t, "", HexUpper(nil))
}
