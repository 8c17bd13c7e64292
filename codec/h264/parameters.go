package h264

import (
	"fmt"

	"github.com/ugparu/hostheader/utils"
)

// Profile is the profile_idc written into the sequence parameter set.
type Profile uint8

const (
	ProfileBaseline Profile = 66
	ProfileMain     Profile = 77
	ProfileHigh     Profile = 100
)

func (p Profile) valid() bool {
	return p == ProfileBaseline || p == ProfileMain || p == ProfileHigh
}

func (p Profile) String() string {
	switch p {
	case ProfileBaseline:
		return "Baseline"
	case ProfileMain:
		return "Main"
	case ProfileHigh:
		return "High"
	}
	return fmt.Sprintf("Profile(%d)", uint8(p))
}

// Level is ten times the H.264 level number. Level 1b has its own value since
// it shares level_idc 11 with level 1.1.
type Level uint8

const (
	Level1  Level = 10
	Level1b Level = 111
	Level11 Level = 11
	Level12 Level = 12
	Level13 Level = 13
	Level2  Level = 20
	Level21 Level = 21
	Level22 Level = 22
	Level3  Level = 30
	Level31 Level = 31
	Level32 Level = 32
	Level4  Level = 40
	Level41 Level = 41
	Level42 Level = 42
	Level5  Level = 50
	Level51 Level = 51
)

func (l Level) valid() bool {
	switch l {
	case Level1, Level1b, Level11, Level12, Level13, Level2, Level21, Level22,
		Level3, Level31, Level32, Level4, Level41, Level42, Level5, Level51:
		return true
	}
	return false
}

// IDC returns the level_idc field value.
func (l Level) IDC() uint8 {
	if l == Level1b {
		return uint8(Level11)
	}
	return uint8(l)
}

// FrameType selects the slice syntax. P, B and I carry their slice_type
// values; IDR slices are coded as I slices in an IDR NAL unit.
type FrameType uint8

const (
	FrameP   FrameType = 0
	FrameB   FrameType = 1
	FrameI   FrameType = 2
	FrameIDR FrameType = 5
)

func (f FrameType) valid() bool {
	return f == FrameP || f == FrameB || f == FrameI || f == FrameIDR
}

func (f FrameType) sliceType() uint32 {
	if f == FrameIDR {
		return uint32(FrameI)
	}
	return uint32(f)
}

func (f FrameType) intra() bool {
	return f == FrameI || f == FrameIDR
}

func (f FrameType) String() string {
	switch f {
	case FrameP:
		return "P"
	case FrameB:
		return "B"
	case FrameI:
		return "I"
	case FrameIDR:
		return "IDR"
	}
	return fmt.Sprintf("FrameType(%d)", uint8(f))
}

// CropParameters are the frame cropping offsets of the sequence parameter set.
type CropParameters struct {
	Left   uint32
	Right  uint32
	Top    uint32
	Bottom uint32
}

// VUIParameters carry the timing and NAL HRD fields of the VUI block. The
// encoder this layout comes from used NumUnitsInTick 1, BitRateScale 0 and
// CPBSizeScale 2.
type VUIParameters struct {
	NumUnitsInTick uint32 // 0 selects 1.
	TimeScale      uint32

	BitRateScale       uint8 // 4 bits.
	CPBSizeScale       uint8 // 4 bits.
	BitRateValueMinus1 uint32
	CPBSizeValueMinus1 uint32
	CBR                bool

	InitialCPBRemovalDelayLengthMinus1 uint8 // 5 bits.
	CPBRemovalDelayLengthMinus1        uint8 // 5 bits.
	DPBOutputDelayLengthMinus1         uint8 // 5 bits.
	TimeOffsetLength                   uint8 // 5 bits.
}

func (v *VUIParameters) validate() error {
	if v.TimeScale == 0 {
		return utils.PreconditionViolatedError{Reason: "vui time_scale is zero"}
	}
	if v.BitRateScale > maxScale || v.CPBSizeScale > maxScale {
		return utils.PreconditionViolatedError{Reason: "vui scale exceeds 4 bits"}
	}
	for _, l := range []uint8{
		v.InitialCPBRemovalDelayLengthMinus1, v.CPBRemovalDelayLengthMinus1,
		v.DPBOutputDelayLengthMinus1, v.TimeOffsetLength,
	} {
		if l > maxFieldLength {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("vui hrd length %d exceeds 5 bits", l)}
		}
	}
	return nil
}

// SequenceParameters describe one sequence parameter set.
type SequenceParameters struct {
	Profile         Profile
	Level           Level
	MaxNumRefFrames uint32
	WidthInMbs      uint32
	HeightInMbs     uint32
	VUI             *VUIParameters  // nil omits the VUI block.
	Crop            *CropParameters // nil disables frame cropping.
}

// Validate checks the parameters against the syntax the builder can emit.
func (p *SequenceParameters) Validate() error {
	if !p.Profile.valid() {
		return utils.UnreachableVariantError{Type: "h264 profile", Value: int(p.Profile)}
	}
	if !p.Level.valid() {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("unsupported level %d", p.Level)}
	}
	if p.WidthInMbs == 0 || p.HeightInMbs == 0 {
		return utils.PreconditionViolatedError{Reason: "zero picture size in macroblocks"}
	}
	if p.VUI != nil {
		return p.VUI.validate()
	}
	return nil
}

// PictureParameters describe one picture parameter set. The zero value is the
// fixed CAVLC picture header.
type PictureParameters struct {
	CABAC                bool
	Transform8x8         bool
	ConstrainedIntraPred bool
	CbQPOffset           int8 // chroma_qp_index_offset, -12..12.
	CrQPOffset           int8 // second_chroma_qp_index_offset, -12..12.
}

// Validate checks the chroma QP offsets.
func (p *PictureParameters) Validate() error {
	for _, o := range []int8{p.CbQPOffset, p.CrQPOffset} {
		if o < -maxChromaQPOffset || o > maxChromaQPOffset {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("chroma qp offset %d", o)}
		}
	}
	return nil
}

// extended reports whether the High profile tail of the PPS is needed.
func (p *PictureParameters) extended() bool {
	return p.Transform8x8 || p.CbQPOffset != p.CrQPOffset
}

// SliceParameters describe one slice header.
type SliceParameters struct {
	FrameType      FrameType
	FrameNumber    uint32 // Reduced modulo 32 for frame_num; POC lsb is twice that.
	FirstMBAddress uint32
	// MBSkipRun > 0 builds a slice made only of skipped macroblocks.
	MBSkipRun                  uint32
	DisableDeblockingFilterIdc uint8 // 0..2.
	AlphaOffsetDiv2            int8  // -6..6, written when the filter is not disabled.
	BetaOffsetDiv2             int8  // -6..6, written when the filter is not disabled.
	UsesLongTermRef            bool
	IsLongTermRef              bool
	IDRPicID                   uint16
	StartCodePrefixSize        int // 3 or 4; 0 selects 4.
}

// Validate checks the parameters against the syntax the builder can emit.
func (p *SliceParameters) Validate() error {
	if !p.FrameType.valid() {
		return utils.UnreachableVariantError{Type: "h264 frame type", Value: int(p.FrameType)}
	}
	if p.DisableDeblockingFilterIdc > maxDeblockIdc {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("disable_deblocking_filter_idc %d", p.DisableDeblockingFilterIdc)}
	}
	for _, o := range []int8{p.AlphaOffsetDiv2, p.BetaOffsetDiv2} {
		if o < -maxDeblockOffset || o > maxDeblockOffset {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("deblocking offset %d", o)}
		}
	}
	switch p.StartCodePrefixSize {
	case 0, shortStartCode, longStartCode:
	default:
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("start code prefix of %d bytes", p.StartCodePrefixSize)}
	}
	if p.MBSkipRun > 0 && p.FrameType.intra() {
		return utils.PreconditionViolatedError{Reason: "skip run in an intra slice"}
	}
	return nil
}

func (p *SliceParameters) startCodeSize() int {
	if p.StartCodePrefixSize == 0 {
		return longStartCode
	}
	return p.StartCodePrefixSize
}

func (p *SliceParameters) frameNum() uint32 {
	return p.FrameNumber % maxFrameNum
}

// SEIParameters describe a buffering period SEI message.
type SEIParameters struct {
	InitialCPBRemovalDelay       uint32
	InitialCPBRemovalDelayOffset uint32
	// DelayLength is the width of both delay fields and must match
	// initial_cpb_removal_delay_length_minus1+1 of the VUI. 0 selects 20.
	DelayLength int
}

func (p *SEIParameters) delayLength() int {
	if p.DelayLength == 0 {
		return defaultSEIDelayLen
	}
	return p.DelayLength
}

// Validate checks the delay field width.
func (p *SEIParameters) Validate() error {
	if p.DelayLength < 0 || p.DelayLength > maxSEIDelayBits {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("sei delay length %d", p.DelayLength)}
	}
	return nil
}
