package mpeg4

import (
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
)

func seal(s *codec.ElementStream) (*codec.ElementStream, error) {
	if err := s.Seal(); err != nil {
		return nil, err
	}
	return s, nil
}

func marker(s *codec.ElementStream) {
	s.WriteBits(1, bits1)
}

// BuildSequenceHeader builds the visual object sequence, visual object, video
// object and video object layer headers as one start code element, ending in
// the MPEG-4 byte alignment token.
func BuildSequenceHeader(p SequenceParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := codec.NewElementStream(hostheader.MPEG4, hostheader.SequenceHeader)
	s.StartElement(codec.ElementStartcodeRawData)

	s.WriteBits(VisualObjectSequenceStartCode, bits32)
	s.WriteBits(uint32(p.ProfileAndLevel), bits8)

	s.WriteBits(VisualObjectStartCode, bits32)
	s.WriteFlag(false) // is_visual_object_identifier
	s.WriteBits(visualObjectTypeVideo, bits4)
	s.WriteFlag(false) // video_signal_type
	s.WriteBits(byteAlignedStuffing, bits2)

	s.WriteBits(VideoObjectStartCode, bits32)
	s.WriteBits(VideoObjectLayerStartCode, bits32)
	s.WriteFlag(false) // random_accessible_vol
	writeLayerIdentity(s, &p)
	s.WriteBits(aspectRatioSquare, bits4)
	writeVOLControl(s, &p)

	s.WriteBits(0, bits2) // video_object_layer_shape: rectangular
	marker(s)
	s.WriteBits(p.VOPTimeResolution, bits16)
	marker(s)
	s.WriteFlag(p.FixedVOPTimeIncrement > 0)
	if p.FixedVOPTimeIncrement > 0 {
		s.WriteBits(p.FixedVOPTimeIncrement, codec.BitsToCode(p.VOPTimeResolution-1))
	}
	marker(s)
	s.WriteBits(p.Width, bits13)
	marker(s)
	s.WriteBits(p.Height, bits13)
	marker(s)

	s.WriteFlag(false) // interlaced
	s.WriteFlag(true)  // obmc_disable
	s.WriteFlag(false) // sprite_enable
	s.WriteFlag(false) // not_8_bit
	s.WriteFlag(false) // quant_type
	if p.Profile == ProfileAdvancedSimple {
		s.WriteFlag(false) // quarter_sample
	}
	s.WriteFlag(true) // complexity_estimation_disable
	s.WriteFlag(!p.ResyncMarkers)
	s.WriteFlag(false) // data_partitioned
	if p.Profile == ProfileAdvancedSimple {
		s.WriteFlag(false) // newpred_enable
		s.WriteFlag(false) // reduced_resolution_vop_enable
	}
	s.WriteFlag(false) // scalability

	s.InsertToken(codec.ElementInsertByteAlignMPEG4)
	return seal(s)
}

func writeLayerIdentity(s *codec.ElementStream, p *SequenceParameters) {
	s.WriteBits(uint32(p.Profile), bits8)
	s.WriteFlag(true) // is_object_layer_identifier
	if p.Profile == ProfileSimple {
		s.WriteBits(verIDSimple, bits4)
	} else {
		s.WriteBits(verIDAdvancedSimple, bits4)
	}
	s.WriteBits(layerPriority, bits3)
}

func writeVOLControl(s *codec.ElementStream, p *SequenceParameters) {
	s.WriteFlag(p.VOLControl)
	if !p.VOLControl {
		return
	}
	s.WriteBits(chromaFormat420, bits2)
	s.WriteFlag(!p.BFrames) // low_delay
	s.WriteFlag(p.VBV != nil)
	if p.VBV == nil {
		return
	}
	for _, f := range p.VBV.fields() {
		s.WriteBits(f, bits15)
		marker(s)
	}
}
