package codec

import (
	"fmt"
	"strings"

	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/utils"
	"github.com/ugparu/hostheader/utils/logger"
)

// MaxElements is the element table capacity the encoder firmware accepts.
const MaxElements = 16

// ElementStream accumulates the element table of one header. It starts empty,
// is built by StartElement, InsertToken and the bit writers, and is frozen by
// Seal. The first error is kept and every later call becomes a no-op, so
// header builders write linearly and check once at the end.
type ElementStream struct {
	codec    hostheader.CodecType
	kind     hostheader.HeaderKind
	elements []Element
	max      int
	sealed   bool
	err      error
}

// NewElementStream returns an empty stream limited to MaxElements elements.
func NewElementStream(codec hostheader.CodecType, kind hostheader.HeaderKind) *ElementStream {
	return NewElementStreamSize(codec, kind, MaxElements)
}

// NewElementStreamSize returns an empty stream limited to maxElements elements.
// A non-positive limit selects MaxElements.
func NewElementStreamSize(codec hostheader.CodecType, kind hostheader.HeaderKind, maxElements int) *ElementStream {
	if maxElements <= 0 {
		maxElements = MaxElements
	}
	return &ElementStream{
		codec:    codec,
		kind:     kind,
		elements: make([]Element, 0, min(maxElements, MaxElements)),
		max:      maxElements,
	}
}

func (s *ElementStream) fail(err error) {
	if s.err == nil {
		s.err = err
		logger.Debugf(s, "build failed: %v", err)
	}
}

func (s *ElementStream) writable() bool {
	if s.err != nil {
		return false
	}
	if s.sealed {
		s.fail(utils.PreconditionViolatedError{Reason: "stream is sealed"})
		return false
	}
	return true
}

func (s *ElementStream) push(kind ElementKind) bool {
	if len(s.elements) >= s.max {
		s.fail(utils.CapacityExceededError{What: "header elements", Limit: s.max})
		return false
	}
	s.elements = append(s.elements, Element{Kind: kind})
	logger.Tracef(s, "element %d %v", len(s.elements)-1, kind)
	return true
}

// StartElement appends a new element of the given kind and makes it current.
func (s *ElementStream) StartElement(kind ElementKind) {
	if !s.writable() {
		return
	}
	if !kind.Valid() {
		s.fail(utils.UnreachableVariantError{Type: "element kind", Value: int(kind)})
		return
	}
	s.push(kind)
}

// InsertToken appends a placeholder element. Tokens never share an element
// with raw bits or with another token.
func (s *ElementStream) InsertToken(kind ElementKind) {
	if !s.writable() {
		return
	}
	if !kind.IsToken() {
		if kind.Valid() {
			s.fail(utils.PreconditionViolatedError{Reason: fmt.Sprintf("%v is not a token", kind)})
		} else {
			s.fail(utils.UnreachableVariantError{Type: "element kind", Value: int(kind)})
		}
		return
	}
	s.push(kind)
}

// Seal freezes the stream and returns the first error met while building it.
func (s *ElementStream) Seal() error {
	if s.sealed {
		s.fail(utils.PreconditionViolatedError{Reason: "stream sealed twice"})
		return s.err
	}
	if s.err == nil && len(s.elements) == 0 {
		s.fail(utils.PreconditionViolatedError{Reason: "sealing an empty stream"})
	}
	s.sealed = true
	if s.err == nil {
		logger.Debugf(s, "sealed %d bits in %d elements", s.BitLen(), len(s.elements))
	}
	return s.err
}

// Err returns the first error met while building the stream.
func (s *ElementStream) Err() error {
	return s.err
}

// Sealed reports whether Seal has been called.
func (s *ElementStream) Sealed() bool {
	return s.sealed
}

// Codec returns the codec the stream was created for.
func (s *ElementStream) Codec() hostheader.CodecType {
	return s.codec
}

// Kind returns the header kind the stream was created for.
func (s *ElementStream) Kind() hostheader.HeaderKind {
	return s.kind
}

// Len returns the number of elements in the table.
func (s *ElementStream) Len() int {
	return len(s.elements)
}

// Element returns a copy of the i-th element.
func (s *ElementStream) Element(i int) Element {
	return s.elements[i]
}

// Elements returns a copy of the element table.
func (s *ElementStream) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Kinds returns the element kinds in table order.
func (s *ElementStream) Kinds() []ElementKind {
	out := make([]ElementKind, len(s.elements))
	for i := range s.elements {
		out[i] = s.elements[i].Kind
	}
	return out
}

// BitLen returns the number of raw bits held by all elements.
func (s *ElementStream) BitLen() (n int) {
	for i := range s.elements {
		n += int(s.elements[i].Size)
	}
	return
}

// BitString concatenates the raw bits of every element in table order.
func (s *ElementStream) BitString() string {
	sb := new(strings.Builder)
	for i := range s.elements {
		sb.WriteString(s.elements[i].BitString())
	}
	return sb.String()
}

// Dump lists the elements one per line, bits grouped by byte.
func (s *ElementStream) Dump() string {
	sb := new(strings.Builder)
	for i := range s.elements {
		e := &s.elements[i]
		fmt.Fprintf(sb, "[%2d] %-20s", i, e.Kind)
		if e.Kind.IsRaw() {
			fmt.Fprintf(sb, " %3d bits ", e.Size)
			bits := e.BitString()
			for len(bits) > 8 {
				sb.WriteString(bits[:8])
				sb.WriteByte(' ')
				bits = bits[8:]
			}
			sb.WriteString(bits)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s *ElementStream) String() string {
	return fmt.Sprintf("%v.%v", s.codec, s.kind)
}
