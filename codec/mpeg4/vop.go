package mpeg4

import (
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
)

// BuildVOPHeader builds a video object plane header. A skipped VOP ends with
// vop_coded 0 and the byte alignment token. A coded VOP leaves vop_quant to
// the frame qscale token; P VOPs then carry vop_fcode_forward in a raw
// element of their own.
func BuildVOPHeader(p VOPParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := codec.NewElementStream(hostheader.MPEG4, hostheader.PictureHeader)
	s.StartElement(codec.ElementStartcodeRawData)
	s.WriteBits(VOPStartCode, bits32)
	s.WriteBits(uint32(p.CodingType), bits2)

	if p.syncPoint() {
		s.WriteBits(syncPointModulo, bits2) // modulo_time_base
	} else {
		s.WriteBits(0, bits1)
	}
	marker(s)
	s.WriteBits(p.TimeIncrement%p.VOPTimeResolution, codec.BitsToCode(p.VOPTimeResolution-1))
	marker(s)

	s.WriteFlag(p.Coded)
	if !p.Coded {
		s.InsertToken(codec.ElementInsertByteAlignMPEG4)
		return seal(s)
	}
	if p.CodingType == CodingP {
		s.WriteFlag(false) // vop_rounding_type
	}
	s.WriteBits(0, bits3) // intra_dc_vlc_thr
	s.InsertToken(codec.ElementFrameQScale)
	if p.CodingType == CodingP {
		s.StartElement(codec.ElementRawData)
		s.WriteBits(uint32(p.SearchRange), bits3)
	}
	return seal(s)
}
