package codec

import "math/bits"

type bitAppender interface {
	WriteBits(value uint32, count int)
}

// WriteUE appends the unsigned Exp-Golomb code of v.
func (s *ElementStream) WriteUE(v uint32) {
	writeUE(s, v)
}

func writeUE(w bitAppender, v uint32) {
	// The prefix length is found by doubling rather than log2 so that
	// 2^32-1 still produces its 65-bit code.
	val := uint64(v)
	zeros := 0
	for lp := uint64(1); lp-1 < val; lp += lp {
		val -= lp
		zeros++
	}

	n := zeros
	for ; n+1 > 8; n -= 8 {
		w.WriteBits(0, 8)
	}
	w.WriteBits(1, n+1)
	w.WriteBits(uint32(val), zeros) //nolint:gosec
}

// WriteSE appends the signed Exp-Golomb code of v.
func (s *ElementStream) WriteSE(v int32) {
	s.WriteUE(MapSigned(v))
}

// MapSigned maps a signed value onto the code number used by se(v):
// 0, 1, -1, 2, -2 ... become 0, 1, 2, 3, 4 ...
func MapSigned(v int32) uint32 {
	if v > 0 {
		return uint32(v)*2 - 1 //nolint:gosec
	}
	return uint32(-int64(v) * 2) //nolint:gosec
}

// UELen returns the length in bits of the unsigned Exp-Golomb code of v.
func UELen(v uint32) int {
	return 2*(bits.Len64(uint64(v)+1)-1) + 1
}

// BitsToCode returns the number of bits needed to represent v unsigned.
// Zero needs one bit.
func BitsToCode(v uint32) int {
	if v == 0 {
		return 1
	}
	return bits.Len32(v)
}
