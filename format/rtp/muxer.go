// Package rtp carries assembled codec headers over RTP with RTSP interleaved
// framing.
package rtp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/pion/rtp"
	"github.com/pion/rtp/codecs"

	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/utils"
	"github.com/ugparu/hostheader/utils/buffer"
	"github.com/ugparu/hostheader/utils/logger"
	"github.com/ugparu/hostheader/utils/sdp"
)

// DefaultMTU is a reasonable default for RTP over TCP. Since RTSP interleaved
// framing is used, we are not strictly constrained by UDP MTU, but keeping
// packets small helps interoperability.
const DefaultMTU = 1200

const (
	interleavedMagic      = '$'
	interleavedHeaderSize = 4
	rtpHeaderSize         = 12
	maxInterleavedSize    = 0xffff
)

// Muxer packetizes access units with a pion payloader and writes each packet
// as an RTSP interleaved frame.
type Muxer struct {
	w          io.Writer
	codec      hostheader.CodecType
	channel    uint8
	clockRate  uint32
	packetizer rtp.Packetizer
}

func newPayloader(ct hostheader.CodecType) (rtp.Payloader, error) {
	switch ct {
	case hostheader.H264:
		return &codecs.H264Payloader{}, nil
	case hostheader.MPEG4:
		return &MP4VPayloader{}, nil
	case hostheader.H263:
		return &H263Payloader{}, nil
	default:
		return nil, utils.PreconditionViolatedError{Reason: fmt.Sprintf("no RTP payloader for %s", ct)}
	}
}

// NewMuxer constructs a muxer for media on the given interleaved channel.
// An mtu of 0 selects DefaultMTU.
func NewMuxer(w io.Writer, media sdp.Media, channel uint8, mtu int) (*Muxer, error) {
	payloader, err := newPayloader(media.Type)
	if err != nil {
		return nil, fmt.Errorf("rtp: %w", err)
	}
	if mtu == 0 {
		mtu = DefaultMTU
	}
	if mtu <= rtpHeaderSize || mtu > maxInterleavedSize {
		return nil, fmt.Errorf("rtp: %w", utils.PreconditionViolatedError{
			Reason: fmt.Sprintf("mtu %d outside %d..%d", mtu, rtpHeaderSize+1, maxInterleavedSize),
		})
	}

	clockRate := uint32(media.ResolvedTimeScale()) //nolint:gosec
	m := &Muxer{
		w:         w,
		codec:     media.Type,
		channel:   channel,
		clockRate: clockRate,
		packetizer: rtp.NewPacketizer(
			uint16(mtu),                        //nolint:gosec
			uint8(media.ResolvedPayloadType()), //nolint:gosec
			rand.Uint32(),
			payloader,
			rtp.NewRandomSequencer(),
			clockRate,
		),
	}
	logger.Debugf(m, "Created muxer with mtu %d", mtu)
	return m, nil
}

// Packetize splits one access unit into RTP packets stamped with the current
// media time, then advances the clock by duration. H.264 input is Annex-B;
// SPS and PPS are aggregated into a STAP-A ahead of the next NAL unit.
func (m *Muxer) Packetize(au []byte, duration time.Duration) []*rtp.Packet {
	samples := uint32(uint64(duration) * uint64(m.clockRate) / uint64(time.Second)) //nolint:gosec
	return m.packetizer.Packetize(au, samples)
}

// WriteAccessUnit packetizes au and writes every packet to the underlying writer.
func (m *Muxer) WriteAccessUnit(au []byte, duration time.Duration) error {
	pkts := m.Packetize(au, duration)
	for _, pkt := range pkts {
		if err := m.writeInterleaved(pkt); err != nil {
			return err
		}
	}
	logger.Tracef(m, "Wrote %d byte access unit in %d packets", len(au), len(pkts))
	return nil
}

func (m *Muxer) writeInterleaved(pkt *rtp.Packet) error {
	size := pkt.MarshalSize()
	buf := buffer.Get(interleavedHeaderSize + size)
	defer buf.Release()

	b := buf.Data()
	b[0] = interleavedMagic
	b[1] = m.channel
	binary.BigEndian.PutUint16(b[2:interleavedHeaderSize], uint16(size)) //nolint:gosec
	if _, err := pkt.MarshalTo(b[interleavedHeaderSize:]); err != nil {
		return fmt.Errorf("rtp: marshal failed for channel %d: %w", m.channel, err)
	}

	n, err := m.w.Write(b)
	if err != nil {
		return fmt.Errorf("rtp: write failed for channel %d: %w", m.channel, err)
	}
	if n != len(b) {
		logger.Warningf(m, "short RTP write: wrote %d of %d bytes", n, len(b))
	}
	return nil
}

func (m *Muxer) String() string {
	return fmt.Sprintf("rtp.Muxer{codec=%s, ch=%d}", m.codec, m.channel)
}
