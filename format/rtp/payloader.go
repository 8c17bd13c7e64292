package rtp

// MP4VPayloader fragments an MPEG-4 Visual bitstream per RFC 6416. The
// payload has no header; configuration and VOP headers travel as-is.
type MP4VPayloader struct{}

// Payload splits payload into fragments of at most mtu bytes.
func (p *MP4VPayloader) Payload(mtu uint16, payload []byte) [][]byte {
	if mtu == 0 || len(payload) == 0 {
		return nil
	}

	out := make([][]byte, 0, (len(payload)+int(mtu)-1)/int(mtu))
	for len(payload) > 0 {
		n := min(len(payload), int(mtu))
		frag := make([]byte, n)
		copy(frag, payload[:n])
		out = append(out, frag)
		payload = payload[n:]
	}
	return out
}

const (
	h263HeaderSize = 2
	// h263PBit marks a payload whose leading 0x0000 of the picture or GOB
	// start code was removed.
	h263PBit = 0x04
)

// H263Payloader packs an H.263 bitstream per RFC 4629 (H263-1998).
type H263Payloader struct{}

// Payload prefixes each fragment with the 2-byte RFC 4629 header. When the
// input opens with a start code its two zero bytes are dropped and P is set
// on the first fragment.
func (p *H263Payloader) Payload(mtu uint16, payload []byte) [][]byte {
	if int(mtu) <= h263HeaderSize || len(payload) == 0 {
		return nil
	}

	startCode := len(payload) >= h263HeaderSize && payload[0] == 0 && payload[1] == 0
	if startCode {
		payload = payload[h263HeaderSize:]
	}

	maxFrag := int(mtu) - h263HeaderSize
	out := make([][]byte, 0, len(payload)/maxFrag+1)
	for first := true; first || len(payload) > 0; first = false {
		n := min(len(payload), maxFrag)
		frag := make([]byte, h263HeaderSize+n)
		if first && startCode {
			frag[0] = h263PBit
		}
		copy(frag[h263HeaderSize:], payload[:n])
		out = append(out, frag)
		payload = payload[n:]
	}
	return out
}
