package h263

import (
	"fmt"

	"github.com/ugparu/hostheader/utils"
)

// PictureCodingType is the picture coding type of PTYPE or PLUSPTYPE.
type PictureCodingType uint8

const (
	CodingI PictureCodingType = 0
	CodingP PictureCodingType = 1
)

// SourceFormat is the source_format field of PTYPE.
type SourceFormat uint8

const (
	FormatSubQCIF  SourceFormat = 1
	FormatQCIF     SourceFormat = 2
	FormatCIF      SourceFormat = 3
	Format4CIF     SourceFormat = 4
	FormatExtended SourceFormat = 7 // PLUSPTYPE with a custom picture format.
)

func (f SourceFormat) String() string {
	switch f {
	case FormatSubQCIF:
		return "sub-QCIF"
	case FormatQCIF:
		return "QCIF"
	case FormatCIF:
		return "CIF"
	case Format4CIF:
		return "4CIF"
	case FormatExtended:
		return "extended"
	}
	return fmt.Sprintf("SourceFormat(%d)", uint8(f))
}

// PictureParameters describe one picture header.
type PictureParameters struct {
	TemporalRef  uint16 // 8 bits, 10 with a custom picture clock.
	CodingType   PictureCodingType
	SourceFormat SourceFormat
	FrameRate    uint8 // 0 or 30 keep the CIF picture clock.
	Width        uint16
	Height       uint16 // Width and Height are written for FormatExtended only.
	RoundingType bool   // RTYPE of PLUSPTYPE.
}

// CustomPCF reports whether the frame rate needs a custom picture clock
// frequency instead of the 29.97 Hz CIF clock.
func (p *PictureParameters) CustomPCF() bool {
	return p.FrameRate != standardFrameRate && p.FrameRate != 0
}

func (p *PictureParameters) clockDivisor() uint32 {
	return customClockBase / uint32(p.FrameRate)
}

// Validate checks the parameters against the syntax the builder can emit.
func (p *PictureParameters) Validate() error {
	if p.CodingType != CodingI && p.CodingType != CodingP {
		return utils.UnreachableVariantError{Type: "h263 picture coding type", Value: int(p.CodingType)}
	}
	switch p.SourceFormat {
	case FormatSubQCIF, FormatQCIF, FormatCIF, Format4CIF:
	case FormatExtended:
		if p.Width < minDimension || p.Height < minDimension || p.Width%minDimension != 0 || p.Height%minDimension != 0 ||
			p.Width>>2-1 > maxPictureIndication || p.Height>>2 > maxPictureIndication {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("custom picture size %dx%d", p.Width, p.Height)}
		}
	default:
		return utils.UnreachableVariantError{Type: "h263 source format", Value: int(p.SourceFormat)}
	}
	if p.TemporalRef > maxExtendedTR {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("temporal reference %d", p.TemporalRef)}
	}
	if p.SourceFormat == FormatExtended && p.CustomPCF() && p.clockDivisor() > maxClockDivisor {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("frame rate %d below the custom clock range", p.FrameRate)}
	}
	return nil
}
