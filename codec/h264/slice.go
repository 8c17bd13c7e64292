package h264

import (
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
)

// BuildSliceHeader builds a slice header. The table is a start code, the NAL
// header byte, the fields up to dec_ref_pic_marking, the SQP token and the
// deblocking fields. Slice headers are not byte aligned.
//
// With MBSkipRun set the header is followed by mb_skip_run and the rbsp
// trailing bits, which makes a complete slice of skipped macroblocks.
func BuildSliceHeader(p SliceParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	kind := hostheader.SliceHeader
	if p.MBSkipRun > 0 {
		kind = hostheader.SkipSliceHeader
	}
	s := codec.NewElementStream(hostheader.H264, kind)
	writeStartCode(s, p.startCodeSize())
	writeSliceNAL(s, &p)
	writeSliceFields(s, &p)
	s.InsertToken(codec.ElementSQP)
	writeSliceDeblocking(s, &p)

	if p.MBSkipRun > 0 {
		s.WriteUE(p.MBSkipRun)
		s.InsertToken(codec.ElementInsertByteAlignH264)
	}
	return seal(s)
}

func writeSliceNAL(s *codec.ElementStream, p *SliceParameters) {
	refIdc, nalType := uint32(nalRefIdcLow), uint32(NaluNonIDR)
	if p.FrameType == FrameB {
		refIdc = 0
	}
	if p.FrameType == FrameIDR {
		nalType = NaluCodedIDR
	}
	s.StartElement(codec.ElementRawData)
	s.WriteBits(nalHeader(refIdc, nalType), bits8)
}

func writeSliceFields(s *codec.ElementStream, p *SliceParameters) {
	s.StartElement(codec.ElementRawData)
	s.WriteUE(p.FirstMBAddress)
	s.WriteUE(p.FrameType.sliceType())

	// pic_parameter_set_id ue(0) packed with frame_num.
	frameNum := p.frameNum()
	s.WriteBits(1<<frameNumBits|frameNum, bits6)
	if p.FrameType == FrameIDR {
		s.WriteUE(uint32(p.IDRPicID))
	}
	s.WriteBits(frameNum*2, pocLsbBits)

	if p.FrameType == FrameB {
		s.WriteFlag(false) // direct_spatial_mv_pred_flag
	}
	if !p.FrameType.intra() {
		s.WriteFlag(false) // num_ref_idx_active_override_flag

		s.WriteFlag(p.UsesLongTermRef) // ref_pic_list_modification_flag_l0
		if p.UsesLongTermRef {
			s.WriteUE(reorderLongTerm)
			s.WriteUE(0) // long_term_pic_num
			s.WriteUE(reorderEnd)
		}
	}
	if p.FrameType == FrameB {
		s.WriteFlag(false) // ref_pic_list_modification_flag_l1
	}

	switch {
	case p.FrameType == FrameIDR:
		s.WriteFlag(false) // no_output_of_prior_pics_flag
		s.WriteFlag(p.IsLongTermRef)
	case p.IsLongTermRef:
		s.WriteFlag(true) // adaptive_ref_pic_marking_mode_flag
		s.WriteUE(mmcoMaxLongTermIdx)
		s.WriteUE(1) // max_long_term_frame_idx_plus1
		s.WriteUE(mmcoCurrentToLong)
		s.WriteUE(0) // long_term_frame_idx
		s.WriteUE(0) // end of operations
	default:
		s.WriteFlag(false)
	}
}

func writeSliceDeblocking(s *codec.ElementStream, p *SliceParameters) {
	s.StartElement(codec.ElementRawData)
	s.WriteUE(uint32(p.DisableDeblockingFilterIdc))
	if p.DisableDeblockingFilterIdc != 1 {
		s.WriteSE(int32(p.AlphaOffsetDiv2))
		s.WriteSE(int32(p.BetaOffsetDiv2))
	}
}
