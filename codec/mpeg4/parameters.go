package mpeg4

import (
	"fmt"

	"github.com/ugparu/hostheader/utils"
)

// Profile is the video_object_type_indication of the video object layer.
type Profile uint8

const (
	ProfileSimple         Profile = 1
	ProfileAdvancedSimple Profile = 3
)

func (p Profile) String() string {
	switch p {
	case ProfileSimple:
		return "SP"
	case ProfileAdvancedSimple:
		return "ASP"
	}
	return fmt.Sprintf("Profile(%d)", uint8(p))
}

// CodingType is vop_coding_type.
type CodingType uint8

const (
	CodingI CodingType = 0
	CodingP CodingType = 1
)

func (c CodingType) String() string {
	switch c {
	case CodingI:
		return "I"
	case CodingP:
		return "P"
	}
	return fmt.Sprintf("CodingType(%d)", uint8(c))
}

func checkCodingType(c CodingType) error {
	if c != CodingI && c != CodingP {
		return utils.UnreachableVariantError{Type: "mpeg4 coding type", Value: int(c)}
	}
	return nil
}

// SearchRange is vop_fcode_forward, selecting the motion vector range.
type SearchRange uint8

const (
	SearchRange32  SearchRange = 2
	SearchRange64  SearchRange = 3
	SearchRange128 SearchRange = 4
)

func checkSearchRange(r SearchRange) error {
	if r < SearchRange32 || r > SearchRange128 {
		return utils.UnreachableVariantError{Type: "mpeg4 search range", Value: int(r)}
	}
	return nil
}

func checkTimeResolution(res uint32) error {
	if res == 0 || res > maxTimeResolution {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("vop_time_increment_resolution %d", res)}
	}
	return nil
}

// VBVParameters are the six vbv_parameters fields, 15 bits each.
type VBVParameters struct {
	FirstHalfBitRate        uint32
	LatterHalfBitRate       uint32
	FirstHalfVBVBufferSize  uint32
	LatterHalfVBVBufferSize uint32
	FirstHalfVBVOccupancy   uint32
	LatterHalfVBVOccupancy  uint32
}

func (v *VBVParameters) fields() [6]uint32 {
	return [6]uint32{
		v.FirstHalfBitRate, v.LatterHalfBitRate,
		v.FirstHalfVBVBufferSize, v.LatterHalfVBVBufferSize,
		v.FirstHalfVBVOccupancy, v.LatterHalfVBVOccupancy,
	}
}

// SequenceParameters describe the visual object sequence down to the video
// object layer.
type SequenceParameters struct {
	Profile         Profile
	ProfileAndLevel uint8
	BFrames         bool // Clears low_delay.
	// VOLControl writes vol_control_parameters. Without it the layer signals
	// no control parameters and VBV is not allowed.
	VOLControl            bool
	VBV                   *VBVParameters
	VOPTimeResolution     uint32 // 1..65535.
	FixedVOPTimeIncrement uint32 // 0 signals a variable VOP rate.
	Width                 uint32 // Pixels, 13 bits.
	Height                uint32 // Pixels, 13 bits.
	ResyncMarkers         bool   // Clears resync_marker_disable.
}

// Validate checks the parameters against the syntax the builder can emit.
func (p *SequenceParameters) Validate() error {
	if p.Profile != ProfileSimple && p.Profile != ProfileAdvancedSimple {
		return utils.UnreachableVariantError{Type: "mpeg4 profile", Value: int(p.Profile)}
	}
	if err := checkTimeResolution(p.VOPTimeResolution); err != nil {
		return err
	}
	if p.FixedVOPTimeIncrement >= p.VOPTimeResolution {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("fixed_vop_time_increment %d", p.FixedVOPTimeIncrement)}
	}
	if p.Width == 0 || p.Height == 0 || p.Width > maxDimension || p.Height > maxDimension {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("picture size %dx%d", p.Width, p.Height)}
	}
	if p.VBV != nil {
		if !p.VOLControl {
			return utils.PreconditionViolatedError{Reason: "vbv parameters without vol control"}
		}
		for _, f := range p.VBV.fields() {
			if f > maxVBVField {
				return utils.PreconditionViolatedError{Reason: fmt.Sprintf("vbv field %d exceeds 15 bits", f)}
			}
		}
	}
	return nil
}

// VOPParameters describe one video object plane header.
type VOPParameters struct {
	Coded             bool
	CodingType        CodingType
	TimeIncrement     uint32
	SearchRange       SearchRange // Used by coded P VOPs.
	VOPTimeResolution uint32
}

// Validate checks the parameters against the syntax the builder can emit.
func (p *VOPParameters) Validate() error {
	if err := checkCodingType(p.CodingType); err != nil {
		return err
	}
	if err := checkTimeResolution(p.VOPTimeResolution); err != nil {
		return err
	}
	if p.Coded && p.CodingType == CodingP {
		return checkSearchRange(p.SearchRange)
	}
	return nil
}

// syncPoint reports whether the VOP starts a new second of the time base.
func (p *VOPParameters) syncPoint() bool {
	return p.TimeIncrement > 1 && p.TimeIncrement%p.VOPTimeResolution == 0
}

// VideoPacketParameters describe one video packet header.
type VideoPacketParameters struct {
	CodingType      CodingType
	FCode           uint8 // P packets only, 1..7.
	MBNumber        uint32
	MBNumberLength  uint8 // 1..14.
	HeaderExtension bool
	// Repeated picture fields, written with HeaderExtension.
	TimeIncrement     uint32
	VOPTimeResolution uint32
	SearchRange       SearchRange
}

// Validate checks the parameters against the syntax the builder can emit.
func (p *VideoPacketParameters) Validate() error {
	if err := checkCodingType(p.CodingType); err != nil {
		return err
	}
	if p.CodingType == CodingP && (p.FCode == 0 || p.FCode > maxFCode) {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("fcode %d", p.FCode)}
	}
	if p.MBNumberLength == 0 || p.MBNumberLength > maxMBNumberLength {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("macroblock number length %d", p.MBNumberLength)}
	}
	if p.MBNumber>>p.MBNumberLength != 0 {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("macroblock number %d exceeds %d bits", p.MBNumber, p.MBNumberLength)}
	}
	if p.HeaderExtension {
		if err := checkTimeResolution(p.VOPTimeResolution); err != nil {
			return err
		}
		if p.CodingType == CodingP {
			return checkSearchRange(p.SearchRange)
		}
	}
	return nil
}

func (p *VideoPacketParameters) resyncBits() int {
	if p.CodingType == CodingI {
		return resyncMarkerIBits
	}
	return resyncMarkerPBase + int(p.FCode)
}
