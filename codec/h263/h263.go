// Package h263 builds H.263 video sequence, picture and GOB headers.
package h263

import (
	"fmt"

	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/utils"
)

func seal(s *codec.ElementStream) (*codec.ElementStream, error) {
	if err := s.Seal(); err != nil {
		return nil, err
	}
	return s, nil
}

// BuildSequenceHeader builds the visual object sequence header that precedes
// short header pictures.
func BuildSequenceHeader(profileAndLevel uint8) (*codec.ElementStream, error) {
	s := codec.NewElementStream(hostheader.H263, hostheader.SequenceHeader)
	s.StartElement(codec.ElementStartcodeRawData)
	s.WriteBits(VisualObjectSequenceStartCode, bits32)
	s.WriteBits(uint32(profileAndLevel), bits8)
	s.WriteBits(VisualObjectStartCode, bits32)
	s.WriteFlag(false) // is_visual_object_identifier
	s.WriteBits(visualObjectTypeVideo, bits4)
	s.WriteFlag(false) // video_signal_type
	s.WriteBits(byteAlignedStuffing, bits2)
	s.WriteBits(VideoObjectStartCode, bits32)
	return seal(s)
}

// BuildPictureHeader builds a picture header. PQUANT is left to the frame
// qscale token; the raw element after it holds the spare bits.
func BuildPictureHeader(p PictureParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := codec.NewElementStream(hostheader.H263, hostheader.PictureHeader)
	s.StartElement(codec.ElementStartcodeRawData)
	s.WriteBits(ShortVideoStartMarker, bits22)
	s.WriteBits(uint32(p.TemporalRef&0xff), bits8)
	s.WriteBits(1, bits1) // marker
	s.WriteFlag(false)    // zero_bit
	s.WriteFlag(false)    // split_screen_indicator
	s.WriteFlag(false)    // document_camera_indicator
	s.WriteFlag(false)    // full_picture_freeze_release
	s.WriteBits(uint32(p.SourceFormat), bits3)

	if p.SourceFormat == FormatExtended {
		writePlusType(s, &p)
	} else {
		s.WriteBits(uint32(p.CodingType), bits1)
		s.WriteBits(0, bits4)
	}

	s.InsertToken(codec.ElementFrameQScale)
	s.StartElement(codec.ElementRawData)
	if p.SourceFormat != FormatExtended {
		s.WriteFlag(false) // zero_bit
	}
	s.WriteFlag(false) // pei
	return seal(s)
}

// writePlusType writes PLUSPTYPE with the full extended part, the custom
// picture format and the optional custom clock.
func writePlusType(s *codec.ElementStream, p *PictureParameters) {
	custom := p.CustomPCF()
	s.WriteBits(ufepFull, bits3)
	s.WriteBits(formatCustom, bits3)
	s.WriteFlag(custom)
	s.WriteBits(0, bits10)
	s.WriteBits(optionalReserved, bits4)

	s.WriteBits(uint32(p.CodingType), bits3)
	s.WriteBits(0, bits2)
	s.WriteFlag(p.RoundingType)
	s.WriteBits(0, bits2)
	s.WriteBits(1, bits1) // start code emulation guard
	s.WriteFlag(false)    // CPM

	s.WriteBits(aspectRatioSquare, bits4)
	s.WriteBits(uint32(p.Width>>2-1), bits9)
	s.WriteBits(1, bits1)
	s.WriteBits(uint32(p.Height>>2), bits9)
	if custom {
		s.WriteBits(1, bits1) // clock conversion code
		s.WriteBits(p.clockDivisor(), bits7)
		s.WriteBits(uint32(p.TemporalRef>>8), bits2)
	}
}

// BuildGOBHeader builds a GOB header with the slice qscale token in place of
// GQUANT.
func BuildGOBHeader(gobNumber, gobFrameID uint8) (*codec.ElementStream, error) {
	if gobNumber > maxGOBNumber || gobFrameID > maxGOBFrameID {
		return nil, utils.PreconditionViolatedError{Reason: fmt.Sprintf("gob %d frame id %d", gobNumber, gobFrameID)}
	}
	s := codec.NewElementStream(hostheader.H263, hostheader.GOBHeader)
	s.StartElement(codec.ElementStartcodeRawData)
	s.WriteBits(GOBResyncMarker, bits17)
	s.WriteBits(uint32(gobNumber), bits5)
	s.WriteBits(uint32(gobFrameID), bits2)
	s.InsertToken(codec.ElementSliceQScale)
	return seal(s)
}

func prepare(dst []byte, what string, s *codec.ElementStream, err error) (int, error) {
	if err == nil {
		var n int
		if n, err = s.MarshalTo(dst); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("h263: %s: %w", what, err)
}

// PrepareSequenceHeader writes the sequence header table into dst.
func PrepareSequenceHeader(dst []byte, profileAndLevel uint8) (int, error) {
	s, err := BuildSequenceHeader(profileAndLevel)
	return prepare(dst, "sequence header", s, err)
}

// PreparePictureHeader writes the picture header table into dst.
func PreparePictureHeader(dst []byte, p PictureParameters) (int, error) {
	s, err := BuildPictureHeader(p)
	return prepare(dst, "picture header", s, err)
}

// PrepareGOBHeader writes the GOB header table into dst.
func PrepareGOBHeader(dst []byte, gobNumber, gobFrameID uint8) (int, error) {
	s, err := BuildGOBHeader(gobNumber, gobFrameID)
	return prepare(dst, "gob header", s, err)
}
