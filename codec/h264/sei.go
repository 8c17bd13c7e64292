package h264

import (
	"fmt"

	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/utils"
)

// seiField is one syntax element of an SEI payload.
type seiField struct {
	value uint32
	bits  int
	ue    bool
}

// seiPayload collects the payload fields so that payloadSize can be written
// ahead of them.
type seiPayload []seiField

func (p *seiPayload) u(v uint32, n int) {
	*p = append(*p, seiField{value: v, bits: n})
}

func (p *seiPayload) flag(b bool) {
	v := uint32(0)
	if b {
		v = 1
	}
	p.u(v, 1)
}

func (p *seiPayload) ue(v uint32) {
	*p = append(*p, seiField{value: v, bits: codec.UELen(v), ue: true})
}

func (p seiPayload) bitLen() (n int) {
	for _, f := range p {
		n += f.bits
	}
	return
}

func (p seiPayload) writeTo(s *codec.ElementStream) {
	for _, f := range p {
		if f.ue {
			s.WriteUE(f.value)
		} else {
			s.WriteBits(f.value, f.bits)
		}
	}
}

// buildSEI lays out an SEI NAL unit carrying a single message. An unaligned
// payload is closed by the byte align token, then a raw 0x80 ends the rbsp.
func buildSEI(payloadType uint32, payload seiPayload) (*codec.ElementStream, error) {
	n := payload.bitLen()
	size := (n + 7) / 8 //nolint:mnd
	if size > maxSEIPayloadSize {
		return nil, utils.CapacityExceededError{What: "sei payload bytes", Limit: maxSEIPayloadSize}
	}

	s := codec.NewElementStream(hostheader.H264, hostheader.SEIHeader)
	writeStartCode(s, longStartCode)
	s.StartElement(codec.ElementRawData)
	s.WriteBits(nalHeader(0, NaluSEI), bits8)
	s.WriteBits(payloadType, bits8)
	s.WriteBits(uint32(size), bits8) //nolint:gosec
	payload.writeTo(s)

	if n%8 != 0 {
		s.InsertToken(codec.ElementInsertByteAlignH264)
		s.StartElement(codec.ElementRawData)
	}
	s.WriteBits(rbspTrailingByte, bits8)
	return seal(s)
}

// ClockTimestamp is one clock timestamp of a picture timing message.
type ClockTimestamp struct {
	CTType         uint8 // 0 progressive, 1 interlaced, 2 unknown.
	NuitFieldBased bool
	CountingType   uint8 // 0..6
	FullTimestamp  bool
	Discontinuity  bool
	CntDropped     bool
	NFrames        uint8

	// Without FullTimestamp each present flag requires the one before it.
	SecondsPresent bool
	MinutesPresent bool
	HoursPresent   bool

	Seconds uint8
	Minutes uint8
	Hours   uint8

	TimeOffset int32
}

// SEIPictureTimingParameters describe a picture timing SEI message. The
// field widths must match the HRD parameters of the sequence VUI.
type SEIPictureTimingParameters struct {
	CPBDPBDelaysPresent bool
	CPBRemovalDelay     uint32
	DPBOutputDelay      uint32
	// 0 selects 24 for either length.
	CPBRemovalDelayLength int
	DPBOutputDelayLength  int

	PicStructPresent bool
	PicStruct        uint8 // 0..8, see Table D-1.
	// ClockTimestamps holds up to NumClockTS entries; nil or missing entries
	// clear clock_timestamp_flag.
	ClockTimestamps  []*ClockTimestamp
	TimeOffsetLength int // 0..31
}

// numClockTS maps pic_struct to NumClockTS.
var numClockTS = [...]int{1, 1, 1, 2, 2, 3, 3, 2, 3}

func delayFieldLength(l int) int {
	if l == 0 {
		return defaultPicTimingDelayLen
	}
	return l
}

func fits(v uint32, n int) bool {
	return n >= bits32 || v>>n == 0
}

// Validate checks field ranges and widths.
func (p *SEIPictureTimingParameters) Validate() error {
	if p.CPBDPBDelaysPresent {
		for _, d := range []struct {
			v uint32
			l int
		}{{p.CPBRemovalDelay, p.CPBRemovalDelayLength}, {p.DPBOutputDelay, p.DPBOutputDelayLength}} {
			if d.l < 0 || d.l > maxSEIDelayBits {
				return utils.PreconditionViolatedError{Reason: fmt.Sprintf("picture timing delay length %d", d.l)}
			}
			if n := delayFieldLength(d.l); !fits(d.v, n) {
				return utils.PreconditionViolatedError{Reason: fmt.Sprintf("picture timing delay %d exceeds %d bits", d.v, n)}
			}
		}
	}
	if !p.PicStructPresent {
		return nil
	}
	if int(p.PicStruct) >= len(numClockTS) {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("pic_struct %d", p.PicStruct)}
	}
	if len(p.ClockTimestamps) > numClockTS[p.PicStruct] {
		return utils.PreconditionViolatedError{
			Reason: fmt.Sprintf("%d clock timestamps for pic_struct %d", len(p.ClockTimestamps), p.PicStruct),
		}
	}
	if p.TimeOffsetLength < 0 || p.TimeOffsetLength > maxFieldLength {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("time offset length %d", p.TimeOffsetLength)}
	}
	for _, ts := range p.ClockTimestamps {
		if ts == nil {
			continue
		}
		if err := ts.validate(p.TimeOffsetLength); err != nil {
			return err
		}
	}
	return nil
}

func (ts *ClockTimestamp) validate(offsetLength int) error {
	switch {
	case ts.CTType > maxCTType:
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("ct_type %d", ts.CTType)}
	case ts.CountingType > maxCountingType:
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("counting_type %d", ts.CountingType)}
	case ts.Seconds > maxSeconds || ts.Minutes > maxMinutes || ts.Hours > maxHours:
		return utils.PreconditionViolatedError{
			Reason: fmt.Sprintf("clock %02d:%02d:%02d out of range", ts.Hours, ts.Minutes, ts.Seconds),
		}
	case !ts.FullTimestamp && (ts.MinutesPresent && !ts.SecondsPresent || ts.HoursPresent && !ts.MinutesPresent):
		return utils.PreconditionViolatedError{Reason: "clock timestamp fields present out of order"}
	}
	if offsetLength > 0 {
		limit := int32(1) << (offsetLength - 1)
		if ts.TimeOffset < -limit || ts.TimeOffset >= limit {
			return utils.PreconditionViolatedError{
				Reason: fmt.Sprintf("time offset %d exceeds %d bits", ts.TimeOffset, offsetLength),
			}
		}
	}
	return nil
}

func (ts *ClockTimestamp) appendTo(pl *seiPayload, offsetLength int) {
	pl.u(uint32(ts.CTType), bits2)
	pl.flag(ts.NuitFieldBased)
	pl.u(uint32(ts.CountingType), bits5)
	pl.flag(ts.FullTimestamp)
	pl.flag(ts.Discontinuity)
	pl.flag(ts.CntDropped)
	pl.u(uint32(ts.NFrames), bits8)

	if ts.FullTimestamp {
		pl.u(uint32(ts.Seconds), bits6)
		pl.u(uint32(ts.Minutes), bits6)
		pl.u(uint32(ts.Hours), bits5)
	} else {
		pl.flag(ts.SecondsPresent)
		if ts.SecondsPresent {
			pl.u(uint32(ts.Seconds), bits6)
			pl.flag(ts.MinutesPresent)
			if ts.MinutesPresent {
				pl.u(uint32(ts.Minutes), bits6)
				pl.flag(ts.HoursPresent)
				if ts.HoursPresent {
					pl.u(uint32(ts.Hours), bits5)
				}
			}
		}
	}

	if offsetLength > 0 {
		// two's complement in offsetLength bits
		pl.u(uint32(ts.TimeOffset)&(1<<offsetLength-1), offsetLength) //nolint:gosec
	}
}

// BuildSEIPictureTiming builds an SEI NAL unit holding one picture timing
// message.
func BuildSEIPictureTiming(p SEIPictureTimingParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var pl seiPayload
	if p.CPBDPBDelaysPresent {
		pl.u(p.CPBRemovalDelay, delayFieldLength(p.CPBRemovalDelayLength))
		pl.u(p.DPBOutputDelay, delayFieldLength(p.DPBOutputDelayLength))
	}
	if p.PicStructPresent {
		pl.u(uint32(p.PicStruct), bits4)
		for i := range numClockTS[p.PicStruct] {
			var ts *ClockTimestamp
			if i < len(p.ClockTimestamps) {
				ts = p.ClockTimestamps[i]
			}
			pl.flag(ts != nil)
			if ts != nil {
				ts.appendTo(&pl, p.TimeOffsetLength)
			}
		}
	}
	return buildSEI(seiPictureTiming, pl)
}

// FramePackingType is frame_packing_arrangement_type.
type FramePackingType uint8

// Frame packing arrangements.
const (
	FramePackingCheckerboard FramePackingType = iota
	FramePackingColumns
	FramePackingRows
	FramePackingSideBySide
	FramePackingTopBottom
	FramePackingTemporal
)

// SEIFramePackingParameters describe a frame packing arrangement SEI message.
type SEIFramePackingParameters struct {
	ID     uint32 // 0..2^16-1
	Cancel bool

	Type                      FramePackingType
	QuincunxSampling          bool
	ContentInterpretationType uint8 // 0..2
	SpatialFlipping           bool
	Frame0Flipped             bool
	FieldViews                bool
	CurrentFrameIsFrame0      bool
	Frame0SelfContained       bool
	Frame1SelfContained       bool
	// Grid positions (x0, y0, x1, y1), written unless quincunx sampling
	// or temporal interleaving is used.
	GridPosition     [4]uint8
	RepetitionPeriod uint32 // 0..16384
}

// Validate checks field ranges.
func (p *SEIFramePackingParameters) Validate() error {
	if p.ID > maxFramePackingID {
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("frame packing id %d", p.ID)}
	}
	if p.Cancel {
		return nil
	}
	switch {
	case p.Type > FramePackingTemporal:
		return utils.UnreachableVariantError{Type: "frame packing type", Value: int(p.Type)}
	case p.ContentInterpretationType > maxContentInterpretation:
		return utils.PreconditionViolatedError{
			Reason: fmt.Sprintf("content interpretation type %d", p.ContentInterpretationType),
		}
	case p.RepetitionPeriod > maxRepetitionPeriod:
		return utils.PreconditionViolatedError{Reason: fmt.Sprintf("repetition period %d", p.RepetitionPeriod)}
	}
	for _, g := range p.GridPosition {
		if g > maxGridPosition {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("grid position %d exceeds 4 bits", g)}
		}
	}
	return nil
}

// BuildSEIFramePacking builds an SEI NAL unit holding one frame packing
// arrangement message.
func BuildSEIFramePacking(p SEIFramePackingParameters) (*codec.ElementStream, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var pl seiPayload
	pl.ue(p.ID)
	pl.flag(p.Cancel)
	if !p.Cancel {
		pl.u(uint32(p.Type), bits7)
		pl.flag(p.QuincunxSampling)
		pl.u(uint32(p.ContentInterpretationType), bits6)
		pl.flag(p.SpatialFlipping)
		pl.flag(p.Frame0Flipped)
		pl.flag(p.FieldViews)
		pl.flag(p.CurrentFrameIsFrame0)
		pl.flag(p.Frame0SelfContained)
		pl.flag(p.Frame1SelfContained)
		if !p.QuincunxSampling && p.Type != FramePackingTemporal {
			for _, g := range p.GridPosition {
				pl.u(uint32(g), bits4)
			}
		}
		pl.u(0, bits8) // frame_packing_arrangement_reserved_byte
		pl.ue(p.RepetitionPeriod)
	}
	pl.flag(false) // frame_packing_arrangement_extension_flag
	return buildSEI(seiFramePacking, pl)
}
