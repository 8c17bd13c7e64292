package mpeg4

import (
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
)

// BuildVideoPacketHeader builds a video packet header: the resync marker and
// macroblock_number, the slice qscale token, then header_extension_code with
// the repeated picture fields when requested.
func BuildVideoPacketHeader(p VideoPacketParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := codec.NewElementStream(hostheader.MPEG4, hostheader.VideoPacketHeader)
	s.StartElement(codec.ElementRawData)
	s.WriteBits(resyncMarker, p.resyncBits())
	s.WriteBits(p.MBNumber, int(p.MBNumberLength))
	s.InsertToken(codec.ElementSliceQScale)

	s.StartElement(codec.ElementRawData)
	s.WriteFlag(p.HeaderExtension)
	if p.HeaderExtension {
		s.WriteBits(0, bits1) // modulo_time_base
		marker(s)
		s.WriteBits(p.TimeIncrement%p.VOPTimeResolution, codec.BitsToCode(p.VOPTimeResolution-1))
		marker(s)
		s.WriteBits(uint32(p.CodingType), bits2)
		s.WriteBits(0, bits3) // intra_dc_vlc_thr
		if p.CodingType == CodingP {
			s.WriteBits(uint32(p.SearchRange), bits3)
		}
	}
	return seal(s)
}
