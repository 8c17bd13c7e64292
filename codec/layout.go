package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/ugparu/hostheader/utils"
)

// Flat layout consumed by the encoder firmware, little endian:
//
//	u32 element count
//	per element: u32 kind, then for raw kinds u8 size in bits and the payload,
//	padded to a 32-bit boundary.
const (
	countSize    = 4
	kindSize     = 4
	tokenEntry   = kindSize
	maxRawEntry  = 4 * (1 + (MaxElementBits+8+31)/32)
	wordBits     = 32
	sizeFieldLen = 1
)

// MaxHeaderBytes is the largest flat layout a MaxElements table can need.
const MaxHeaderBytes = countSize + MaxElements*maxRawEntry

func entrySize(e *Element) int {
	if !e.Kind.IsRaw() {
		return tokenEntry
	}
	return 4 * (1 + (int(e.Size)+8+wordBits-1)/wordBits)
}

// SerializedSize returns the size of the flat layout of the stream in bytes.
func (s *ElementStream) SerializedSize() int {
	n := countSize
	for i := range s.elements {
		n += entrySize(&s.elements[i])
	}
	return n
}

// MarshalTo writes the flat layout of a sealed stream into dst and returns the
// number of bytes written.
func (s *ElementStream) MarshalTo(dst []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if !s.sealed {
		return 0, utils.PreconditionViolatedError{Reason: "marshalling an unsealed stream"}
	}
	size := s.SerializedSize()
	if len(dst) < size {
		return 0, utils.CapacityExceededError{What: "header buffer bytes", Limit: len(dst)}
	}

	clear(dst[:size])
	binary.LittleEndian.PutUint32(dst, uint32(len(s.elements))) //nolint:gosec
	off := countSize
	for i := range s.elements {
		e := &s.elements[i]
		binary.LittleEndian.PutUint32(dst[off:], uint32(e.Kind))
		if e.Kind.IsRaw() {
			dst[off+kindSize] = e.Size
			copy(dst[off+kindSize+sizeFieldLen:], e.Payload())
		}
		off += entrySize(e)
	}
	return off, nil
}

// MarshalBinary returns the flat layout of a sealed stream.
func (s *ElementStream) MarshalBinary() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	buf := make([]byte, s.SerializedSize())
	n, err := s.MarshalTo(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// UnmarshalElements decodes a flat layout back into its element table.
func UnmarshalElements(b []byte) ([]Element, error) {
	if len(b) < countSize {
		return nil, utils.PreconditionViolatedError{Reason: "header layout shorter than its count field"}
	}
	count := int(binary.LittleEndian.Uint32(b))
	if count > MaxElements {
		return nil, utils.CapacityExceededError{What: "header elements", Limit: MaxElements}
	}

	elements := make([]Element, 0, count)
	off := countSize
	for i := range count {
		if off+kindSize > len(b) {
			return nil, utils.PreconditionViolatedError{Reason: fmt.Sprintf("element %d truncated", i)}
		}
		var e Element
		e.Kind = ElementKind(binary.LittleEndian.Uint32(b[off:]))
		if !e.Kind.Valid() {
			return nil, utils.UnreachableVariantError{Type: "element kind", Value: int(e.Kind)}
		}
		if e.Kind.IsRaw() {
			if off+kindSize+sizeFieldLen > len(b) {
				return nil, utils.PreconditionViolatedError{Reason: fmt.Sprintf("element %d truncated", i)}
			}
			e.Size = b[off+kindSize]
			if e.Size > MaxElementBits {
				return nil, utils.CapacityExceededError{What: "element bits", Limit: MaxElementBits}
			}
			if off+entrySize(&e) > len(b) {
				return nil, utils.PreconditionViolatedError{Reason: fmt.Sprintf("element %d payload truncated", i)}
			}
			start := off + kindSize + sizeFieldLen
			copy(e.Bits[:], b[start:start+len(e.Payload())])
		}
		off += entrySize(&e)
		elements = append(elements, e)
	}
	return elements, nil
}
