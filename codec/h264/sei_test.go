package h264

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/utils"
)

var (
	alignedSEI   = []codec.ElementKind{codec.ElementStartcodeRawData, codec.ElementRawData}
	unalignedSEI = []codec.ElementKind{
		codec.ElementStartcodeRawData, codec.ElementRawData,
		codec.ElementInsertByteAlignH264, codec.ElementRawData,
	}
)

func TestBuildSEIPictureTiming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		p     SEIPictureTimingParameters
		kinds []codec.ElementKind
		want  []byte
	}{
		{
			name: "delays only",
			p: SEIPictureTimingParameters{
				CPBDPBDelaysPresent: true,
				CPBRemovalDelay:     0x1234,
				DPBOutputDelay:      0x56,
			},
			kinds: alignedSEI,
			want:  []byte{0, 0, 0, 1, 0x06, 0x01, 0x06, 0x00, 0x12, 0x34, 0x00, 0x00, 0x56, 0x80},
		},
		{
			name: "full timestamp with negative offset",
			p: SEIPictureTimingParameters{
				CPBDPBDelaysPresent:   true,
				CPBRemovalDelay:       10,
				DPBOutputDelay:        20,
				CPBRemovalDelayLength: 16,
				DPBOutputDelayLength:  16,
				PicStructPresent:      true,
				ClockTimestamps: []*ClockTimestamp{{
					FullTimestamp: true,
					NFrames:       7,
					Seconds:       30,
					Minutes:       15,
					Hours:         10,
					TimeOffset:    -3,
				}},
				TimeOffsetLength: 5,
			},
			kinds: unalignedSEI,
			want: []byte{
				0, 0, 0, 1, 0x06, 0x01, 0x0a,
				0x00, 0x0a, 0x00, 0x14, 0x08, 0x04, 0x07, 0x78, 0xf5, 0x76, 0x80,
			},
		},
		{
			name: "second field of a pair with partial clock",
			p: SEIPictureTimingParameters{
				PicStructPresent: true,
				PicStruct:        3,
				ClockTimestamps: []*ClockTimestamp{nil, {
					CTType:         2,
					NuitFieldBased: true,
					CountingType:   1,
					CntDropped:     true,
					SecondsPresent: true,
					Seconds:        5,
					MinutesPresent: true,
					Minutes:        4,
				}},
			},
			kinds: alignedSEI,
			want:  []byte{0, 0, 0, 1, 0x06, 0x01, 0x05, 0x36, 0x84, 0x80, 0x45, 0x88, 0x80},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := BuildSEIPictureTiming(tt.p)
			require.NoError(t, err)
			require.Equal(t, hostheader.SEIHeader, s.Kind())
			require.Equal(t, tt.kinds, s.Kinds())

			out, err := codec.AssembleStream(s, codec.TokenValues{})
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestSEIPictureTimingValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    SEIPictureTimingParameters
	}{
		{"delay length", SEIPictureTimingParameters{CPBDPBDelaysPresent: true, CPBRemovalDelayLength: 33}},
		{"delay width", SEIPictureTimingParameters{CPBDPBDelaysPresent: true, DPBOutputDelay: 1 << 24}},
		{"pic struct", SEIPictureTimingParameters{PicStructPresent: true, PicStruct: 9}},
		{"too many clocks", SEIPictureTimingParameters{
			PicStructPresent: true,
			ClockTimestamps:  []*ClockTimestamp{{}, {}},
		}},
		{"hours", SEIPictureTimingParameters{
			PicStructPresent: true,
			ClockTimestamps:  []*ClockTimestamp{{FullTimestamp: true, Hours: 24}},
		}},
		{"minutes without seconds", SEIPictureTimingParameters{
			PicStructPresent: true,
			ClockTimestamps:  []*ClockTimestamp{{MinutesPresent: true}},
		}},
		{"time offset", SEIPictureTimingParameters{
			PicStructPresent: true,
			TimeOffsetLength: 4,
			ClockTimestamps:  []*ClockTimestamp{{TimeOffset: 8}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildSEIPictureTiming(tt.p)
			var pv utils.PreconditionViolatedError
			require.ErrorAs(t, err, &pv)
		})
	}
}

func TestBuildSEIFramePacking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		p     SEIFramePackingParameters
		kinds []codec.ElementKind
		want  []byte
	}{
		{
			name:  "cancel",
			p:     SEIFramePackingParameters{Cancel: true},
			kinds: unalignedSEI,
			want:  []byte{0, 0, 0, 1, 0x06, 0x2d, 0x01, 0xd0, 0x80},
		},
		{
			name: "side by side",
			p: SEIFramePackingParameters{
				Type:                      FramePackingSideBySide,
				ContentInterpretationType: 1,
				RepetitionPeriod:          1,
			},
			kinds: unalignedSEI,
			want:  []byte{0, 0, 0, 1, 0x06, 0x2d, 0x07, 0x81, 0x81, 0x00, 0x00, 0x00, 0x01, 0x20, 0x80},
		},
		{
			// temporal interleaving carries no grid positions
			name: "temporal",
			p: SEIFramePackingParameters{
				ID:                        2,
				Type:                      FramePackingTemporal,
				ContentInterpretationType: 2,
				CurrentFrameIsFrame0:      true,
				GridPosition:              [4]uint8{1, 2, 3, 4},
			},
			kinds: unalignedSEI,
			want:  []byte{0, 0, 0, 1, 0x06, 0x2d, 0x05, 0x60, 0xa0, 0x84, 0x00, 0xa0, 0x80},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := BuildSEIFramePacking(tt.p)
			require.NoError(t, err)
			require.Equal(t, tt.kinds, s.Kinds())

			out, err := codec.AssembleStream(s, codec.TokenValues{})
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestSEIFramePackingValidation(t *testing.T) {
	t.Parallel()

	_, err := BuildSEIFramePacking(SEIFramePackingParameters{Type: 6})
	var uv utils.UnreachableVariantError
	require.ErrorAs(t, err, &uv)

	for _, p := range []SEIFramePackingParameters{
		{ID: 1 << 16},
		{ContentInterpretationType: 3},
		{RepetitionPeriod: 16385},
		{GridPosition: [4]uint8{0, 0, 16, 0}},
	} {
		_, err := BuildSEIFramePacking(p)
		var pv utils.PreconditionViolatedError
		require.ErrorAs(t, err, &pv, "%+v", p)
	}

	// A cancel message ignores the arrangement fields.
	_, err = BuildSEIFramePacking(SEIFramePackingParameters{Cancel: true, Type: 6})
	require.NoError(t, err)
}
