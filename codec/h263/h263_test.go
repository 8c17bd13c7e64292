package h263

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/utils"
)

func bin(v uint64, n int) string {
	s := strconv.FormatUint(v, 2)
	return strings.Repeat("0", n-len(s)) + s
}

func TestBuildSequenceHeader(t *testing.T) {
	t.Parallel()

	s, err := BuildSequenceHeader(8)
	require.NoError(t, err)
	require.Equal(t, hostheader.H263, s.Codec())
	require.Equal(t, []codec.ElementKind{codec.ElementStartcodeRawData}, s.Kinds())
	require.Equal(t,
		bin(0x1b0, 32)+bin(8, 8)+bin(0x1b5, 32)+"0"+"0001"+"0"+"01"+bin(0x100, 32),
		s.BitString())

	out, err := codec.AssembleStream(s, codec.TokenValues{})
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x00, 0x00, 0x01, 0xb0, 0x08,
		0x00, 0x00, 0x01, 0xb5, 0x09,
		0x00, 0x00, 0x01, 0x00,
	}, out)
}

func TestPictureHeaderStandardFormat(t *testing.T) {
	t.Parallel()

	p := PictureParameters{TemporalRef: 0x1a5, CodingType: CodingP, SourceFormat: FormatQCIF, FrameRate: 15}
	s, err := BuildPictureHeader(p)
	require.NoError(t, err)
	require.Equal(t, hostheader.PictureHeader, s.Kind())
	require.Equal(t, []codec.ElementKind{
		codec.ElementStartcodeRawData, codec.ElementFrameQScale, codec.ElementRawData,
	}, s.Kinds())
	head, tail := s.Element(0), s.Element(2)
	require.Equal(t, bin(0x20, 22)+bin(0xa5, 8)+"1"+"0000"+"010"+"1"+"0000", head.BitString())
	require.Equal(t, "00", tail.BitString())
	require.True(t, p.CustomPCF())

	// 43 header bits, PQUANT and two spare bits, zero padded.
	out, err := codec.AssembleStream(s, codec.TokenValues{FrameQScale: 31})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0x82, 0x96, 0x0a, 0x1f, 0x00}, out)
}

func TestPictureHeaderExtendedFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    PictureParameters
		tail string
	}{
		{
			name: "cif clock",
			p:    PictureParameters{TemporalRef: 3, SourceFormat: FormatExtended, FrameRate: 30, Width: 320, Height: 240},
			tail: "001" + "110" + "0" + bin(0, 10) + "1000" +
				"000" + "00" + "0" + "00" + "1" + "0" +
				"0001" + bin(79, 9) + "1" + bin(60, 9),
		},
		{
			name: "custom clock",
			p: PictureParameters{
				TemporalRef: 0x305, CodingType: CodingP, SourceFormat: FormatExtended,
				FrameRate: 25, Width: 2048, Height: 1152, RoundingType: true,
			},
			tail: "001" + "110" + "1" + bin(0, 10) + "1000" +
				"001" + "00" + "1" + "00" + "1" + "0" +
				"0001" + bin(511, 9) + "1" + bin(288, 9) +
				"1" + bin(72, 7) + "11",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := BuildPictureHeader(tt.p)
			require.NoError(t, err)
			require.Equal(t, []codec.ElementKind{
				codec.ElementStartcodeRawData, codec.ElementFrameQScale, codec.ElementRawData,
			}, s.Kinds())
			head, tail := s.Element(0), s.Element(2)
			prefix := bin(0x20, 22) + bin(uint64(tt.p.TemporalRef&0xff), 8) + "1" + "0000" + "111"
			require.Equal(t, prefix+tt.tail, head.BitString())
			require.Equal(t, "0", tail.BitString())
		})
	}
}

func TestPictureValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    PictureParameters
	}{
		{"odd width", PictureParameters{SourceFormat: FormatExtended, Width: 322, Height: 240}},
		{"too wide", PictureParameters{SourceFormat: FormatExtended, Width: 2052, Height: 240}},
		{"too tall", PictureParameters{SourceFormat: FormatExtended, Width: 320, Height: 2048}},
		{"slow clock", PictureParameters{SourceFormat: FormatExtended, Width: 320, Height: 240, FrameRate: 14}},
		{"temporal reference", PictureParameters{SourceFormat: FormatCIF, TemporalRef: 1024}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildPictureHeader(tt.p)
			var pv utils.PreconditionViolatedError
			require.True(t, errors.As(err, &pv), "%v", err)
		})
	}

	var uv utils.UnreachableVariantError
	_, err := BuildPictureHeader(PictureParameters{SourceFormat: 5})
	require.True(t, errors.As(err, &uv))
	_, err = BuildPictureHeader(PictureParameters{SourceFormat: FormatCIF, CodingType: 2})
	require.True(t, errors.As(err, &uv))
}

func TestBuildGOBHeader(t *testing.T) {
	t.Parallel()

	s, err := BuildGOBHeader(17, 2)
	require.NoError(t, err)
	require.Equal(t, hostheader.GOBHeader, s.Kind())
	require.Equal(t, []codec.ElementKind{codec.ElementStartcodeRawData, codec.ElementSliceQScale}, s.Kinds())
	require.Equal(t, bin(1, 17)+bin(17, 5)+"10", s.BitString())

	out, err := codec.AssembleStream(s, codec.TokenValues{SliceQScale: 4})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0xc6, 0x20}, out)

	_, err = BuildGOBHeader(32, 0)
	var pv utils.PreconditionViolatedError
	require.True(t, errors.As(err, &pv))
	_, err = BuildGOBHeader(1, 4)
	require.True(t, errors.As(err, &pv))
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	dst := make([]byte, codec.MaxHeaderBytes)
	n, err := PrepareGOBHeader(dst, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 4+8+4, n)

	n, err = PrepareSequenceHeader(dst, 1)
	require.NoError(t, err)
	elements, err := codec.UnmarshalElements(dst[:n])
	require.NoError(t, err)
	require.Len(t, elements, 1)
	require.Equal(t, uint8(112), elements[0].Size)

	_, err = PreparePictureHeader(dst, PictureParameters{SourceFormat: 0})
	require.ErrorContains(t, err, "h263: picture header")
}
