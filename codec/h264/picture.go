package h264

import (
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
)

// BuildPictureHeader builds a picture parameter set NAL unit. pic_init_qp is
// left to the QP token and the rbsp trailing bits to the alignment token.
func BuildPictureHeader(p PictureParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := codec.NewElementStream(hostheader.H264, hostheader.PictureHeader)
	writeStartCode(s, longStartCode)

	s.StartElement(codec.ElementRawData)
	s.WriteBits(nalHeader(nalRefIdcLow, NaluPPS), bits8)
	s.WriteUE(0) // pic_parameter_set_id
	s.WriteUE(0) // seq_parameter_set_id
	s.WriteFlag(p.CABAC)
	s.WriteFlag(false) // bottom_field_pic_order_in_frame_present_flag
	s.WriteUE(0)       // num_slice_groups_minus1
	s.WriteUE(0)       // num_ref_idx_l0_default_active_minus1
	s.WriteUE(0)       // num_ref_idx_l1_default_active_minus1
	s.WriteFlag(false) // weighted_pred_flag
	s.WriteBits(0, bits2)

	s.InsertToken(codec.ElementQP)

	s.StartElement(codec.ElementRawData)
	s.WriteSE(0) // pic_init_qs_minus26
	s.WriteSE(int32(p.CbQPOffset))
	s.WriteFlag(true) // deblocking_filter_control_present_flag
	s.WriteFlag(p.ConstrainedIntraPred)
	s.WriteFlag(false) // redundant_pic_cnt_present_flag
	if p.extended() {
		s.WriteFlag(p.Transform8x8)
		s.WriteFlag(false) // pic_scaling_matrix_present_flag
		s.WriteSE(int32(p.CrQPOffset))
	}

	s.InsertToken(codec.ElementInsertByteAlignH264)
	return seal(s)
}
