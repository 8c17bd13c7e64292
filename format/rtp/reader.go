package rtp

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pion/rtp"
)

const (
	rtcpSenderReport = 200
	rtcpAppDefined   = 204
)

// ReadInterleaved reads RTSP interleaved frames until one carries an RTP
// packet, skipping RTCP. The returned packet owns its memory.
func ReadInterleaved(r io.Reader) (channel uint8, pkt *rtp.Packet, err error) {
	var hdr [interleavedHeaderSize]byte
	for {
		if _, err = io.ReadFull(r, hdr[:]); err != nil {
			return 0, nil, err
		}
		if hdr[0] != interleavedMagic {
			return 0, nil, fmt.Errorf("rtp: bad interleaved magic 0x%02x", hdr[0])
		}

		size := int(binary.BigEndian.Uint16(hdr[2:]))
		if size < rtpHeaderSize {
			return 0, nil, fmt.Errorf("rtp: incorrect packet size %d", size)
		}

		b := make([]byte, size)
		if _, err = io.ReadFull(r, b); err != nil {
			return 0, nil, err
		}
		if b[1] >= rtcpSenderReport && b[1] <= rtcpAppDefined {
			continue
		}

		pkt = &rtp.Packet{}
		if err = pkt.Unmarshal(b); err != nil {
			return 0, nil, fmt.Errorf("rtp: %w", err)
		}
		return hdr[1], pkt, nil
	}
}
