package h264

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/utils"
)

func cifSequence() SequenceParameters {
	return SequenceParameters{
		Profile:         ProfileBaseline,
		Level:           Level3,
		MaxNumRefFrames: 1,
		WidthInMbs:      22,
		HeightInMbs:     18,
	}
}

func TestBuildSequenceHeader(t *testing.T) {
	t.Parallel()

	s, err := BuildSequenceHeader(cifSequence())
	require.NoError(t, err)
	require.Equal(t, hostheader.H264, s.Codec())
	require.Equal(t, hostheader.SequenceHeader, s.Kind())
	require.Equal(t, []codec.ElementKind{
		codec.ElementStartcodeRawData, codec.ElementRawData, codec.ElementRawData,
	}, s.Kinds())

	bits := rawBits(t, s)
	require.Equal(t, bin(1, 32), bits[0])
	require.Equal(t, bin(0x6742c01eab, 40), bits[1])
	require.Equal(t, "010"+"0"+ue(21)+ue(17)+"11"+"0"+"0"+"1"+"00000", bits[2])

	out, err := codec.AssembleStream(s, codec.TokenValues{})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 1, 0x67, 0x42, 0xc0, 0x1e, 0xab, 0x40, 0xb0, 0x4b, 0x20}, out)
}

func TestSequenceProfileAndLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prof  Profile
		level Level
		want  string
	}{
		{"main 4.1", ProfileMain, Level41, bin(0x674dc029, 32) + "1" + "010" + "1" + "011"},
		{"baseline 1b", ProfileBaseline, Level1b, bin(0x6742d00b, 32) + "1" + "010" + "1" + "011"},
		{"high 4", ProfileHigh, Level4, bin(0x67640028, 32) + "1" + "010" + "1" + "1" + "0" + "0" + "010" + "1" + "011"},
		{"high 1b", ProfileHigh, Level1b, bin(0x67640009, 32) + "1" + "010" + "1" + "1" + "0" + "0" + "010" + "1" + "011"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := cifSequence()
			p.Profile, p.Level = tt.prof, tt.level
			s, err := BuildSequenceHeader(p)
			require.NoError(t, err)
			require.Equal(t, tt.want, rawBits(t, s)[1])
		})
	}
}

func TestSequenceCropAndVUI(t *testing.T) {
	t.Parallel()

	p := cifSequence()
	p.HeightInMbs = 68
	p.Crop = &CropParameters{Bottom: 4}
	p.VUI = &VUIParameters{
		TimeScale:                          60,
		CPBSizeScale:                       2,
		BitRateValueMinus1:                 3124,
		CPBSizeValueMinus1:                 12499,
		CBR:                                true,
		InitialCPBRemovalDelayLengthMinus1: 19,
		CPBRemovalDelayLengthMinus1:        23,
		DPBOutputDelayLengthMinus1:         23,
		TimeOffsetLength:                   24,
	}
	s, err := BuildSequenceHeader(p)
	require.NoError(t, err)

	want := "010" + "0" + ue(21) + ue(67) + "11" +
		"1" + ue(0) + ue(0) + ue(0) + ue(4) +
		"1" + "00001" + bin(1, 32) + bin(60, 32) + "1" +
		"1" + ue(0) + bin(0, 4) + bin(2, 4) + ue(3124) + ue(12499) + "1" +
		bin(19, 5) + bin(23, 5) + bin(23, 5) + bin(24, 5) + "0000" + "1"
	for len(want)%8 != 0 {
		want += "0"
	}

	// The variable part spills over 120 bits into further raw elements.
	require.Greater(t, s.Len(), 3)
	got := ""
	for i, b := range rawBits(t, s)[2:] {
		require.Equal(t, codec.ElementRawData, s.Element(i+2).Kind)
		require.LessOrEqual(t, len(b), codec.MaxElementBits)
		got += b
	}
	require.Equal(t, want, got)
}

func TestSequenceValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *SequenceParameters)
	}{
		{"level", func(p *SequenceParameters) { p.Level = 33 }},
		{"width", func(p *SequenceParameters) { p.WidthInMbs = 0 }},
		{"time scale", func(p *SequenceParameters) { p.VUI = &VUIParameters{} }},
		{"scale", func(p *SequenceParameters) { p.VUI = &VUIParameters{TimeScale: 1, BitRateScale: 16} }},
		{"hrd length", func(p *SequenceParameters) { p.VUI = &VUIParameters{TimeScale: 1, TimeOffsetLength: 32} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := cifSequence()
			tt.mutate(&p)
			_, err := BuildSequenceHeader(p)
			var pv utils.PreconditionViolatedError
			require.True(t, errors.As(err, &pv), "%v", err)
		})
	}
}

func TestSequenceUnknownProfile(t *testing.T) {
	t.Parallel()

	p := cifSequence()
	p.Profile = 88
	_, err := BuildSequenceHeader(p)
	var uv utils.UnreachableVariantError
	require.ErrorAs(t, err, &uv)
	require.Equal(t, 88, uv.Value)
}

func TestSequenceHighProfileAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width uint32
		want  []byte
	}{
		// The variable part ends on a byte boundary of the whole payload.
		{"width 10", 10, []byte{0, 0, 0, 1, 0x67, 0x64, 0x00, 0x28, 0xac, 0x56, 0x82, 0x82, 0x59}},
		{"width 22", 22, []byte{0, 0, 0, 1, 0x67, 0x64, 0x00, 0x28, 0xac, 0x56, 0x81, 0x60, 0x96, 0x40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := cifSequence()
			p.Profile, p.Level, p.WidthInMbs = ProfileHigh, Level4, tt.width
			s, err := BuildSequenceHeader(p)
			require.NoError(t, err)
			require.Zero(t, s.BitLen()%8)

			out, err := codec.AssembleStream(s, codec.TokenValues{})
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}

	for w := uint32(1); w <= 64; w++ {
		p := cifSequence()
		p.Profile, p.Level, p.WidthInMbs = ProfileHigh, Level4, w
		s, err := BuildSequenceHeader(p)
		require.NoError(t, err)
		require.Zero(t, s.BitLen()%8, "width %d", w)
	}
}

func TestLevelIDC(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint8(11), Level1b.IDC())
	require.Equal(t, uint8(11), Level11.IDC())
	require.Equal(t, uint8(51), Level51.IDC())
	require.Equal(t, "High", ProfileHigh.String())
	require.Equal(t, "Profile(1)", Profile(1).String())
}
