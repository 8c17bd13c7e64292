package h264

import (
	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
)

// writeStartCode opens the stream with a start code element of size bytes.
func writeStartCode(s *codec.ElementStream, size int) {
	s.StartElement(codec.ElementStartcodeRawData)
	s.WriteBits(1, size*bits8)
}

func nalHeader(refIdc, nalType uint32) uint32 {
	return refIdc<<nalRefIdcShift | nalType
}

// BuildSequenceHeader builds a sequence parameter set NAL unit. The table is
// a start code, the fixed profile and level fields, then the variable part
// ending in rbsp trailing bits.
func BuildSequenceHeader(p SequenceParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := codec.NewElementStream(hostheader.H264, hostheader.SequenceHeader)
	writeStartCode(s, longStartCode)
	writeSequenceFixed(s, &p)
	writeSequenceVariable(s, &p)
	return seal(s)
}

func writeSequenceFixed(s *codec.ElementStream, p *SequenceParameters) {
	s.StartElement(codec.ElementRawData)
	s.WriteBits(nalHeader(nalRefIdcHigh, NaluSPS), bits8)
	s.WriteBits(uint32(p.Profile), bits8)

	constraints, levelIdc := uint32(0), uint32(p.Level.IDC())
	if p.Profile == ProfileHigh {
		// High profile signals level 1b through level_idc 9.
		if p.Level == Level1b {
			levelIdc = levelIdc1bHigh
		}
	} else {
		constraints = constraintSet0 | constraintSet1
		if p.Level == Level1b {
			constraints |= constraintSet3
		}
	}
	s.WriteBits(constraints, bits8)
	s.WriteBits(levelIdc, bits8)

	s.WriteUE(0) // seq_parameter_set_id
	if p.Profile == ProfileHigh {
		s.WriteUE(chromaFormat420)
		s.WriteUE(0)       // bit_depth_luma_minus8
		s.WriteUE(0)       // bit_depth_chroma_minus8
		s.WriteFlag(false) // qpprime_y_zero_transform_bypass_flag
		s.WriteFlag(false) // seq_scaling_matrix_present_flag
	}
	s.WriteUE(log2MaxFrameNumMinus4)
	s.WriteUE(0) // pic_order_cnt_type
	s.WriteUE(log2MaxPocLsbMinus4)
}

func writeSequenceVariable(s *codec.ElementStream, p *SequenceParameters) {
	s.StartElement(codec.ElementRawData)
	s.WriteUE(p.MaxNumRefFrames)
	s.WriteFlag(false) // gaps_in_frame_num_value_allowed_flag
	s.WriteUE(p.WidthInMbs - 1)
	s.WriteUE(p.HeightInMbs - 1)
	s.WriteBits(0b11, bits2) // frame_mbs_only_flag, direct_8x8_inference_flag

	s.WriteFlag(p.Crop != nil)
	if c := p.Crop; c != nil {
		s.WriteUE(c.Left)
		s.WriteUE(c.Right)
		s.WriteUE(c.Top)
		s.WriteUE(c.Bottom)
	}

	s.WriteFlag(p.VUI != nil)
	if p.VUI != nil {
		writeVUI(s, p.VUI)
	}

	s.WriteFlag(true) // rbsp_stop_one_bit
	// The High profile fixed part ends mid byte.
	s.AlignZero()
}

func writeVUI(s *codec.ElementStream, v *VUIParameters) {
	s.WriteBits(aspectOverscanSignalLoc, bits5)
	tick := v.NumUnitsInTick
	if tick == 0 {
		tick = 1
	}
	s.WriteBits(tick, bits32)
	s.WriteBits(v.TimeScale, bits32)
	s.WriteFlag(true) // fixed_frame_rate_flag

	s.WriteFlag(true) // nal_hrd_parameters_present_flag
	s.WriteUE(0)      // cpb_cnt_minus1
	s.WriteBits(uint32(v.BitRateScale), bits4)
	s.WriteBits(uint32(v.CPBSizeScale), bits4)
	s.WriteUE(v.BitRateValueMinus1)
	s.WriteUE(v.CPBSizeValueMinus1)
	s.WriteFlag(v.CBR)
	s.WriteBits(uint32(v.InitialCPBRemovalDelayLengthMinus1), bits5)
	s.WriteBits(uint32(v.CPBRemovalDelayLengthMinus1), bits5)
	s.WriteBits(uint32(v.DPBOutputDelayLengthMinus1), bits5)
	s.WriteBits(uint32(v.TimeOffsetLength), bits5)

	// vcl_hrd_parameters_present_flag, low_delay_hrd_flag,
	// pic_struct_present_flag, bitstream_restriction_flag
	s.WriteBits(0, bits4)
}
