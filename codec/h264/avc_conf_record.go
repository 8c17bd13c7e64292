package h264

import (
	"bytes"
	"encoding/binary"

	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/utils/nal"
)

// AVCDecoderConfRecord represents the AVC decoder configuration record that
// carries parameter sets out of band (MP4 avcC, SDP sprop-parameter-sets).
type AVCDecoderConfRecord struct {
	AVCProfileIndication uint8    // Profile indication for the AVC stream.
	ProfileCompatibility uint8    // Profile compatibility for the AVC stream.
	AVCLevelIndication   uint8    // Level indication for the AVC stream.
	LengthSizeMinusOne   uint8    // Length size (in bytes) minus one for the AVC stream.
	SPS                  [][]byte // Sequence Parameter Sets (SPS) containing the SPS NALUs.
	PPS                  [][]byte // Picture Parameter Sets (PPS) containing the PPS NALUs.
}

// Unmarshal decodes the binary representation of AVCDecoderConfRecord from the given byte slice.
// It returns the number of bytes read and any decoding error encountered.
func (avc *AVCDecoderConfRecord) Unmarshal(b []byte) (n int, err error) {
	const minLength = 7
	if len(b) < minLength {
		err = ErrDecconfInvalid
		return
	}

	avc.AVCProfileIndication = b[1]
	avc.ProfileCompatibility = b[2]
	avc.AVCLevelIndication = b[3]
	avc.LengthSizeMinusOne = b[4] & maskLengthSizeMinusOne
	spscount := int(b[5] & maskSPSCount)
	n += 6

	for range spscount {
		if len(b) < n+2 {
			err = ErrDecconfInvalid
			return
		}
		spslen := int(binary.BigEndian.Uint16(b[n:]))
		n += 2

		if len(b) < n+spslen {
			err = ErrDecconfInvalid
			return
		}
		avc.SPS = append(avc.SPS, b[n:n+spslen])
		n += spslen
	}

	if len(b) < n+1 {
		err = ErrDecconfInvalid
		return
	}
	ppscount := int(b[n])
	n++

	for range ppscount {
		if len(b) < n+2 {
			err = ErrDecconfInvalid
			return
		}
		ppslen := int(binary.BigEndian.Uint16(b[n:]))
		n += 2

		if len(b) < n+ppslen {
			err = ErrDecconfInvalid
			return
		}
		avc.PPS = append(avc.PPS, b[n:n+ppslen])
		n += ppslen
	}

	return
}

// Len calculates and returns the length of the binary representation of AVCDecoderConfRecord.
// It includes the length of the fixed-size fields and the lengths of SPS and PPS data.
func (avc *AVCDecoderConfRecord) Len() (n int) {
	n = 7
	for _, sps := range avc.SPS {
		n += lengthFieldSize + len(sps)
	}
	for _, pps := range avc.PPS {
		n += lengthFieldSize + len(pps)
	}
	return
}

// Marshal serializes the AVCDecoderConfRecord to a binary representation.
// It writes the serialized data to the provided byte slice and returns the number of bytes written.
func (avc *AVCDecoderConfRecord) Marshal(b []byte) (n int) {
	b[0] = 1
	b[1] = avc.AVCProfileIndication
	b[2] = avc.ProfileCompatibility
	b[3] = avc.AVCLevelIndication
	b[4] = avc.LengthSizeMinusOne | maskLengthSizeMinusOneInv
	b[5] = uint8(len(avc.SPS)) | maskSPSCountInv //nolint:gosec // integer overflow for sps count is not possible
	n += 6

	for _, sps := range avc.SPS {
		binary.BigEndian.PutUint16(b[n:], uint16(len(sps))) //nolint:gosec // integer overflow for sps length is not possible
		n += 2
		copy(b[n:], sps)
		n += len(sps)
	}

	b[n] = uint8(len(avc.PPS)) //nolint:gosec // integer overflow for pps count is not possible
	n++

	for _, pps := range avc.PPS {
		binary.BigEndian.PutUint16(b[n:], uint16(len(pps))) //nolint:gosec // integer overflow for pps length is not possible
		n += 2
		copy(b[n:], pps)
		n += len(pps)
	}

	return
}

// NewAVCDecoderConfRecord returns a record holding one SPS and one PPS NAL
// unit, without start codes, using 4-byte NAL length fields.
func NewAVCDecoderConfRecord(sps, pps []byte) (*AVCDecoderConfRecord, error) {
	if len(sps) < avcRecordSPSMin || sps[0]&nalTypeMask != NaluSPS || len(pps) == 0 || pps[0]&nalTypeMask != NaluPPS {
		return nil, ErrDecconfInvalid
	}
	return &AVCDecoderConfRecord{
		AVCProfileIndication: sps[1],
		ProfileCompatibility: sps[2],
		AVCLevelIndication:   sps[3],
		LengthSizeMinusOne:   avcLengthSizeMinusOne,
		SPS:                  [][]byte{sps},
		PPS:                  [][]byte{pps},
	}, nil
}

// AssembleParameterSets resolves a sequence and a picture header table into
// SPS and PPS NAL units, stripping start codes and inserting emulation
// prevention bytes.
func AssembleParameterSets(seq, pic *codec.ElementStream, v codec.TokenValues) (sps, pps []byte, err error) {
	if sps, err = assembleNALU(seq, v); err != nil {
		return nil, nil, err
	}
	if pps, err = assembleNALU(pic, v); err != nil {
		return nil, nil, err
	}
	return sps, pps, nil
}

var longStartCodePrefix = []byte{0, 0, 0, 1}

func assembleNALU(s *codec.ElementStream, v codec.TokenValues) ([]byte, error) {
	b, err := codec.AssembleStream(s, v)
	if err != nil {
		return nil, err
	}
	// Split only at the leading start code: the raw payload may hold start
	// code patterns until emulation prevention is applied.
	switch {
	case bytes.HasPrefix(b, longStartCodePrefix):
		b = b[longStartCode:]
	case bytes.HasPrefix(b, longStartCodePrefix[1:]):
		b = b[shortStartCode:]
	}
	if len(b) == 0 {
		return nil, ErrDecconfInvalid
	}
	return nal.EmulationPrevention(b), nil
}

// AssembleAccessUnit resolves the given header tables in order and joins the
// resulting NAL units as an Annex-B access unit with 4-byte start codes.
func AssembleAccessUnit(v codec.TokenValues, streams ...*codec.ElementStream) ([]byte, error) {
	nalus := make([][]byte, 0, len(streams))
	for _, s := range streams {
		u, err := assembleNALU(s, v)
		if err != nil {
			return nil, err
		}
		nalus = append(nalus, u)
	}
	return nal.AnnexB(nalus...), nil
}
