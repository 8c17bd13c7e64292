package h264

import (
	"fmt"

	"github.com/ugparu/hostheader/codec"
)

// prepare writes the flat layout of a built header into dst.
func prepare(dst []byte, what string, s *codec.ElementStream, err error) (int, error) {
	if err != nil {
		return 0, fmt.Errorf("h264: %s: %w", what, err)
	}
	n, err := s.MarshalTo(dst)
	if err != nil {
		return 0, fmt.Errorf("h264: %s: %w", what, err)
	}
	return n, nil
}

// PrepareSequenceHeader writes the sequence parameter set table into dst and
// returns the number of bytes used.
func PrepareSequenceHeader(dst []byte, p SequenceParameters) (int, error) {
	s, err := BuildSequenceHeader(p)
	return prepare(dst, "sequence header", s, err)
}

// PreparePictureHeader writes the picture parameter set table into dst.
func PreparePictureHeader(dst []byte, p PictureParameters) (int, error) {
	s, err := BuildPictureHeader(p)
	return prepare(dst, "picture header", s, err)
}

// PrepareSliceHeader writes the slice header table into dst. A non-zero
// MBSkipRun produces a skipped slice.
func PrepareSliceHeader(dst []byte, p SliceParameters) (int, error) {
	s, err := BuildSliceHeader(p)
	return prepare(dst, "slice header", s, err)
}

// PrepareEndOfSequenceHeader writes the end of sequence table into dst.
func PrepareEndOfSequenceHeader(dst []byte) (int, error) {
	s, err := BuildEndOfSequenceHeader()
	return prepare(dst, "end of sequence", s, err)
}

// PrepareEndOfStreamHeader writes the end of stream table into dst.
func PrepareEndOfStreamHeader(dst []byte) (int, error) {
	s, err := BuildEndOfStreamHeader()
	return prepare(dst, "end of stream", s, err)
}

// PrepareAccessUnitDelimiter writes the access unit delimiter table into dst.
func PrepareAccessUnitDelimiter(dst []byte, primaryPicType uint8) (int, error) {
	s, err := BuildAccessUnitDelimiter(primaryPicType)
	return prepare(dst, "access unit delimiter", s, err)
}

// PrepareSEIBufferingPeriod writes the buffering period SEI table into dst.
func PrepareSEIBufferingPeriod(dst []byte, p SEIParameters) (int, error) {
	s, err := BuildSEIBufferingPeriod(p)
	return prepare(dst, "sei buffering period", s, err)
}

// PrepareSEIPictureTiming writes the picture timing SEI table into dst.
func PrepareSEIPictureTiming(dst []byte, p SEIPictureTimingParameters) (int, error) {
	s, err := BuildSEIPictureTiming(p)
	return prepare(dst, "sei picture timing", s, err)
}

// PrepareSEIFramePacking writes the frame packing SEI table into dst.
func PrepareSEIFramePacking(dst []byte, p SEIFramePackingParameters) (int, error) {
	s, err := BuildSEIFramePacking(p)
	return prepare(dst, "sei frame packing", s, err)
}

// PrepareBackwardZeroBSlice writes the backward zero B slice table into dst.
func PrepareBackwardZeroBSlice(dst []byte, mbCount uint8) (int, error) {
	s, err := BuildBackwardZeroBSlice(mbCount)
	return prepare(dst, "backward zero B slice", s, err)
}

// PrepareTrailingBits writes the lone byte align token table into dst.
func PrepareTrailingBits(dst []byte) (int, error) {
	s, err := BuildTrailingBits()
	return prepare(dst, "trailing bits", s, err)
}
