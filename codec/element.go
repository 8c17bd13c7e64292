package codec

import (
	"strings"
)

// ElementKind is the type tag of one element table entry. The numeric values
// are the ones the encoder firmware expects in the flat layout.
type ElementKind uint32

const (
	ElementStartcodeRawData     ElementKind = iota // Raw bits that include a start code.
	ElementRawData                                 // Raw bits.
	ElementQP                                      // H.264 pic_init_qp_minus26, filled by firmware.
	ElementSQP                                     // H.264 slice_qp_delta, filled by firmware.
	ElementFrameQScale                             // H.263/MPEG-4 vop_quant, filled by firmware.
	ElementSliceQScale                             // H.263/MPEG-4 quant_scale, filled by firmware.
	ElementInsertByteAlignH264                     // H.264 rbsp_trailing_bits.
	ElementInsertByteAlignMPEG4                    // MPEG-4 byte_aligned_bits.
)

// MaxElementBits is the payload capacity of a single raw element.
const MaxElementBits = 120

// MaxElementBytes is MaxElementBits in whole bytes.
const MaxElementBytes = MaxElementBits / 8

// Valid reports whether k belongs to the closed set of element kinds.
func (k ElementKind) Valid() bool {
	return k <= ElementInsertByteAlignMPEG4
}

// IsRaw reports whether elements of kind k carry packed bits.
func (k ElementKind) IsRaw() bool {
	return k == ElementStartcodeRawData || k == ElementRawData
}

// IsToken reports whether k is a placeholder kind.
func (k ElementKind) IsToken() bool {
	return k.Valid() && !k.IsRaw()
}

func (k ElementKind) String() string {
	switch k {
	case ElementStartcodeRawData:
		return "STARTCODE_RAWDATA"
	case ElementRawData:
		return "RAWDATA"
	case ElementQP:
		return "QP"
	case ElementSQP:
		return "SQP"
	case ElementFrameQScale:
		return "FRAMEQSCALE"
	case ElementSliceQScale:
		return "SLICEQSCALE"
	case ElementInsertByteAlignH264:
		return "INSERTBYTEALIGN_H264"
	case ElementInsertByteAlignMPEG4:
		return "INSERTBYTEALIGN_MPG4"
	}
	return "UNKNOWN"
}

// Element is one entry of a header element table. Size counts the valid bits
// of Bits, packed MSB first. Tokens always have Size 0.
type Element struct {
	Kind ElementKind
	Size uint8
	Bits [MaxElementBytes]byte
}

// Payload returns the bytes holding the element's valid bits.
func (e *Element) Payload() []byte {
	return e.Bits[:(int(e.Size)+7)/8]
}

// BitString renders the valid bits of the element as '0' and '1' characters.
func (e *Element) BitString() string {
	sb := new(strings.Builder)
	sb.Grow(int(e.Size))
	for i := range int(e.Size) {
		if e.Bits[i/8]&(0x80>>(i%8)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
