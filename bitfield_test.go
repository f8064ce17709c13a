package cnext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateBitFieldReadSingleBit(t *testing.T) {
	require.Equal(t, "((flags >> 3) & 1)", GenerateBitFieldRead("flags", 3, 1))
}

func TestGenerateBitFieldReadMultiBit(t *testing.T) {
	require.Equal(t, "((flags >> 4) & 0xF)", GenerateBitFieldRead("flags", 4, 4))
}
