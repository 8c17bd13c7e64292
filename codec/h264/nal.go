package h264

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

// BuildEndOfSequenceHeader builds an end of sequence NAL unit. The table
// holds the NAL header byte only; the start code comes from the encoder.
func BuildEndOfSequenceHeader() (*codec.ElementStream, error) {
	s := codec.NewElementStream(hostheader.H264, hostheader.EndOfSequenceHeader)
	s.StartElement(codec.ElementRawData)
	s.WriteBits(nalHeader(0, NaluEndOfSequence), bits8)
	return seal(s)
}

// BuildEndOfStreamHeader builds an end of stream NAL unit without start code.
func BuildEndOfStreamHeader() (*codec.ElementStream, error) {
	s := codec.NewElementStream(hostheader.H264, hostheader.EndOfStreamHeader)
	s.StartElement(codec.ElementRawData)
	s.WriteBits(nalHeader(0, NaluEndOfStream), bits8)
	return seal(s)
}

// BuildAccessUnitDelimiter builds an access unit delimiter carrying
// primary_pic_type (0..7) and its rbsp trailing bits.
func BuildAccessUnitDelimiter(primaryPicType uint8) (*codec.ElementStream, error) {
	if primaryPicType > maxPrimaryPicType {
		return nil, utils.PreconditionViolatedError{Reason: fmt.Sprintf("primary_pic_type %d", primaryPicType)}
	}
	s := codec.NewElementStream(hostheader.H264, hostheader.AccessUnitDelimiterHeader)
	writeStartCode(s, longStartCode)
	s.StartElement(codec.ElementRawData)
	s.WriteBits(nalHeader(0, NaluAUD), bits8)
	s.WriteBits(uint32(primaryPicType), bits3)
	s.WriteBits(audTrailingBits, bits5)
	return seal(s)
}

// BuildSEIBufferingPeriod builds an SEI NAL unit holding one buffering period
// message for the NAL HRD of sequence parameter set 0.
func BuildSEIBufferingPeriod(p SEIParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.delayLength()
	if !fits(p.InitialCPBRemovalDelay, n) || !fits(p.InitialCPBRemovalDelayOffset, n) {
		return nil, utils.PreconditionViolatedError{Reason: fmt.Sprintf("cpb removal delay exceeds %d bits", n)}
	}

	var pl seiPayload
	pl.ue(0) // seq_parameter_set_id
	pl.u(p.InitialCPBRemovalDelay, n)
	pl.u(p.InitialCPBRemovalDelayOffset, n)
	// 1+2n bits are never byte aligned, so the table always ends with the
	// align token and a raw 0x80.
	return buildSEI(seiBufferingPeriod, pl)
}

// BuildBackwardZeroBSlice builds the slice data of a B slice whose mbCount
// macroblocks are all coded as backward predicted with zero motion.
func BuildBackwardZeroBSlice(mbCount uint8) (*codec.ElementStream, error) {
	if mbCount == 0 {
		return nil, utils.PreconditionViolatedError{Reason: "empty backward zero B slice"}
	}
	s := codec.NewElementStream(hostheader.H264, hostheader.SliceHeader)
	s.StartElement(codec.ElementRawData)
	for range mbCount {
		s.WriteUE(0) // mb_skip_run
		s.WriteBits(backwardZeroBMb, bits5)
	}
	s.InsertToken(codec.ElementInsertByteAlignH264)
	return seal(s)
}

// BuildTrailingBits builds a table holding only the rbsp trailing bits token.
func BuildTrailingBits() (*codec.ElementStream, error) {
	s := codec.NewElementStream(hostheader.H264, hostheader.FillerHeader)
	s.InsertToken(codec.ElementInsertByteAlignH264)
	return seal(s)
}
