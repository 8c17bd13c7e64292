package h264

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/hostheader/codec"
)

func ue(v uint32) string {
	bin := strconv.FormatUint(uint64(v)+1, 2)
	return strings.Repeat("0", len(bin)-1) + bin
}

func se(v int32) string {
	return ue(codec.MapSigned(v))
}

func bin(v uint64, n int) string {
	s := strconv.FormatUint(v, 2)
	return strings.Repeat("0", n-len(s)) + s
}

// rawBits returns the bit strings of every element, empty for tokens.
func rawBits(t *testing.T, s *codec.ElementStream) []string {
	t.Helper()
	require.True(t, s.Sealed())
	out := make([]string, s.Len())
	for i := range out {
		e := s.Element(i)
		out[i] = e.BitString()
	}
	return out
}
