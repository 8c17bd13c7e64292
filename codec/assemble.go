package codec

import (
	"github.com/ugparu/hostheader/utils"
)

// bitBuffer is an unbounded MSB-first bit sink.
type bitBuffer struct {
	buf   []byte
	nbits int
}

func (b *bitBuffer) WriteBits(value uint32, count int) {
	for i := count - 1; i >= 0; i-- {
		if b.nbits%8 == 0 {
			b.buf = append(b.buf, 0)
		}
		if value>>i&1 != 0 {
			b.buf[len(b.buf)-1] |= 0x80 >> (b.nbits % 8)
		}
		b.nbits++
	}
}

func (b *bitBuffer) appendElement(e *Element) {
	for i := range int(e.Size) {
		b.WriteBits(uint32(e.Bits[i/8]>>(7-i%8)&1), 1)
	}
}

// Assemble produces the bitstream the encoder firmware emits for an element
// table: raw payloads are concatenated and every token is replaced by its
// value from v. A trailing partial byte is zero padded.
func Assemble(elements []Element, v TokenValues) ([]byte, error) {
	out := new(bitBuffer)
	for i := range elements {
		e := &elements[i]
		if err := v.check(e.Kind); err != nil {
			return nil, err
		}
		switch e.Kind {
		case ElementStartcodeRawData, ElementRawData:
			out.appendElement(e)
		case ElementQP:
			writeUE(out, MapSigned(v.PicInitQPMinus26))
		case ElementSQP:
			writeUE(out, MapSigned(v.SliceQPDelta))
		case ElementFrameQScale:
			out.WriteBits(uint32(v.FrameQScale), qScaleBits)
		case ElementSliceQScale:
			out.WriteBits(uint32(v.SliceQScale), qScaleBits)
		case ElementInsertByteAlignH264:
			out.WriteBits(1, 1)
			if rem := out.nbits % 8; rem != 0 {
				out.WriteBits(0, 8-rem)
			}
		case ElementInsertByteAlignMPEG4:
			out.WriteBits(0, 1)
			if rem := out.nbits % 8; rem != 0 {
				out.WriteBits(0xff, 8-rem)
			}
		default:
			return nil, utils.UnreachableVariantError{Type: "element kind", Value: int(e.Kind)}
		}
	}
	return out.buf, nil
}

// AssembleStream is Assemble over the table of a sealed stream.
func AssembleStream(s *ElementStream, v TokenValues) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !s.sealed {
		return nil, utils.PreconditionViolatedError{Reason: "assembling an unsealed stream"}
	}
	return Assemble(s.elements, v)
}
