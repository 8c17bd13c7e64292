package codec

import (
	"fmt"

	"github.com/ugparu/hostheader/utils"
)

// WriteBits appends the count low-order bits of value, most significant first,
// to the current element. count must be in 0..32; 0 writes nothing. A full
// element (120 bits) is continued in a new RawData element.
func (s *ElementStream) WriteBits(value uint32, count int) {
	if count == 0 || !s.writable() {
		return
	}
	if count < 0 || count > 32 {
		s.fail(utils.PreconditionViolatedError{Reason: fmt.Sprintf("bit count %d outside 0..32", count)})
		return
	}
	if len(s.elements) == 0 {
		s.fail(utils.PreconditionViolatedError{Reason: "write before the first element"})
		return
	}
	if !s.elements[len(s.elements)-1].Kind.IsRaw() {
		s.fail(utils.PreconditionViolatedError{Reason: "write into a token element"})
		return
	}

	// The most significant chunk holds count%8 bits, the rest are whole bytes.
	chunk := count % 8
	if chunk == 0 {
		chunk = 8
	}
	for shift := count - chunk; shift >= 0 && s.err == nil; shift -= 8 {
		s.writeUpTo8(uint8(value>>shift), chunk)
		chunk = 8
	}
}

// WriteFlag appends a single bit.
func (s *ElementStream) WriteFlag(b bool) {
	if b {
		s.WriteBits(1, 1)
	} else {
		s.WriteBits(0, 1)
	}
}

// AlignZero pads the current element with zero bits until the raw bits of the
// whole table end on a byte boundary. Tokens count as zero bits.
func (s *ElementStream) AlignZero() {
	if s.err != nil || len(s.elements) == 0 {
		return
	}
	if rem := s.BitLen() % 8; rem != 0 {
		s.WriteBits(0, 8-rem)
	}
}

// writeUpTo8 places n (1..8) bits at the current bit offset. Bits that do not
// fit the current byte continue in the next one; a byte-aligned element that
// already holds MaxElementBits is continued in a fresh RawData element.
func (s *ElementStream) writeUpTo8(bits uint8, n int) {
	bits &= 0xff >> (8 - n)
	for n > 0 {
		e := &s.elements[len(s.elements)-1]
		if e.Size%8 == 0 && e.Size >= MaxElementBits {
			if !s.push(ElementRawData) {
				return
			}
			continue
		}

		idx := e.Size / 8
		free := 8 - int(e.Size%8)
		if free == 8 {
			e.Bits[idx] = 0
		}
		if n <= free {
			e.Bits[idx] |= bits << (free - n)
			e.Size += uint8(n) //nolint:gosec
			return
		}

		rest := n - free
		e.Bits[idx] |= bits >> rest
		e.Size += uint8(free) //nolint:gosec
		bits &= 0xff >> (8 - rest)
		n = rest
	}
}
