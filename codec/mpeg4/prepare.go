package mpeg4

import (
	"fmt"

	"github.com/ugparu/hostheader/codec"
)

func prepare(dst []byte, what string, s *codec.ElementStream, err error) (int, error) {
	if err == nil {
		var n int
		if n, err = s.MarshalTo(dst); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("mpeg4: %s: %w", what, err)
}

// PrepareSequenceHeader writes the VOL header table into dst and returns the
// number of bytes used.
func PrepareSequenceHeader(dst []byte, p SequenceParameters) (int, error) {
	s, err := BuildSequenceHeader(p)
	return prepare(dst, "sequence header", s, err)
}

// PrepareVOPHeader writes the VOP header table into dst.
func PrepareVOPHeader(dst []byte, p VOPParameters) (int, error) {
	s, err := BuildVOPHeader(p)
	return prepare(dst, "vop header", s, err)
}

// PrepareVideoPacketHeader writes the video packet header table into dst.
func PrepareVideoPacketHeader(dst []byte, p VideoPacketParameters) (int, error) {
	s, err := BuildVideoPacketHeader(p)
	return prepare(dst, "video packet header", s, err)
}
