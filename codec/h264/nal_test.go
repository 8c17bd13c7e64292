package h264

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/utils"
)

func TestEndMarkers(t *testing.T) {
	t.Parallel()

	eos, err := BuildEndOfSequenceHeader()
	require.NoError(t, err)
	require.Equal(t, hostheader.EndOfSequenceHeader, eos.Kind())
	require.Equal(t, []string{"00001010"}, rawBits(t, eos))

	eost, err := BuildEndOfStreamHeader()
	require.NoError(t, err)
	require.Equal(t, hostheader.EndOfStreamHeader, eost.Kind())
	require.Equal(t, []string{"00001011"}, rawBits(t, eost))
}

func TestAccessUnitDelimiter(t *testing.T) {
	t.Parallel()

	for pt := range uint8(8) {
		s, err := BuildAccessUnitDelimiter(pt)
		require.NoError(t, err)
		out, err := codec.AssembleStream(s, codec.TokenValues{})
		require.NoError(t, err)
		require.Equal(t, []byte{0, 0, 0, 1, 0x09, pt<<5 | 0x10}, out)
	}

	_, err := BuildAccessUnitDelimiter(8)
	var pv utils.PreconditionViolatedError
	require.True(t, errors.As(err, &pv))
}

func TestSEIBufferingPeriod(t *testing.T) {
	t.Parallel()

	s, err := BuildSEIBufferingPeriod(SEIParameters{InitialCPBRemovalDelay: 0x12345, InitialCPBRemovalDelayOffset: 0x15})
	require.NoError(t, err)
	require.Equal(t, []codec.ElementKind{
		codec.ElementStartcodeRawData,
		codec.ElementRawData,
		codec.ElementInsertByteAlignH264,
		codec.ElementRawData,
	}, s.Kinds())
	require.Equal(t, bin(0x06, 8)+bin(0, 8)+bin(6, 8)+"1"+bin(0x12345, 20)+bin(0x15, 20), rawBits(t, s)[1])

	out, err := codec.AssembleStream(s, codec.TokenValues{})
	require.NoError(t, err)
	require.Len(t, out, 4+3+6+1)
	require.Equal(t, byte(0x80), out[len(out)-1])

	s, err = BuildSEIBufferingPeriod(SEIParameters{InitialCPBRemovalDelay: 5, DelayLength: 24})
	require.NoError(t, err)
	require.Equal(t, bin(0x06, 8)+bin(0, 8)+bin(7, 8)+"1"+bin(5, 24)+bin(0, 24), rawBits(t, s)[1])
}

func TestSEIBufferingPeriodValidation(t *testing.T) {
	t.Parallel()

	tests := []SEIParameters{
		{DelayLength: 33},
		{DelayLength: -1},
		{InitialCPBRemovalDelay: 1 << 20},
		{InitialCPBRemovalDelayOffset: 1 << 8, DelayLength: 8},
	}
	for _, p := range tests {
		_, err := BuildSEIBufferingPeriod(p)
		var pv utils.PreconditionViolatedError
		require.True(t, errors.As(err, &pv), "%+v", p)
	}
}

func TestBackwardZeroBSlice(t *testing.T) {
	t.Parallel()

	s, err := BuildBackwardZeroBSlice(3)
	require.NoError(t, err)
	require.Equal(t, []codec.ElementKind{codec.ElementRawData, codec.ElementInsertByteAlignH264}, s.Kinds())
	require.Equal(t, strings.Repeat("101111", 3), rawBits(t, s)[0])

	s, err = BuildBackwardZeroBSlice(255)
	require.NoError(t, err)
	require.Equal(t, 14, s.Len())
	require.Equal(t, strings.Repeat("101111", 255), s.BitString())

	_, err = BuildBackwardZeroBSlice(0)
	var pv utils.PreconditionViolatedError
	require.True(t, errors.As(err, &pv))
}

func TestTrailingBits(t *testing.T) {
	t.Parallel()

	s, err := BuildTrailingBits()
	require.NoError(t, err)
	require.Equal(t, []codec.ElementKind{codec.ElementInsertByteAlignH264}, s.Kinds())
	require.Zero(t, s.BitLen())
}
