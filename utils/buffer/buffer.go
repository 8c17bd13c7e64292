package buffer

import (
	"sync"

	"github.com/ugparu/hostheader/codec"
)

const (
	// HeaderSize fits the flat layout of any element table.
	HeaderSize = codec.MaxHeaderBytes
	// FrameSize fits one interleaved RTP frame: a 4 byte prefix and a
	// packet of at most 0xffff bytes.
	FrameSize = 4 + 0xffff
)

type sizeClass uint8

const (
	classHeader sizeClass = iota
	classFrame
	classNone // allocated on demand, never pooled
)

func classOf(size int) sizeClass {
	switch {
	case size <= HeaderSize:
		return classHeader
	case size <= FrameSize:
		return classFrame
	default:
		return classNone
	}
}

var pools = [...]sync.Pool{
	classHeader: {New: func() any { return &memBuffer{buf: make([]byte, 0, HeaderSize)} }},
	classFrame:  {New: func() any { return &memBuffer{buf: make([]byte, 0, FrameSize)} }},
}

// Get returns a buffer of length size. Its contents are undefined. Buffers
// larger than FrameSize are not pooled.
func Get(size int) PooledBuffer {
	c := classOf(size)
	if c == classNone {
		return &memBuffer{buf: make([]byte, size)}
	}
	b := pools[c].Get().(*memBuffer) //nolint:forcetypeassert
	b.buf = b.buf[:size]
	return b
}

// MarshalHeader writes the flat layout of a sealed stream into a pooled
// buffer trimmed to the bytes written.
func MarshalHeader(s *codec.ElementStream) (PooledBuffer, error) {
	b := Get(s.SerializedSize())
	n, err := s.MarshalTo(b.Data())
	if err != nil {
		b.Release()
		return nil, err
	}
	b.Resize(n)
	return b, nil
}

type memBuffer struct {
	buf []byte
}

func (b *memBuffer) Data() []byte {
	return b.buf
}

func (b *memBuffer) Len() int {
	return len(b.buf)
}

func (b *memBuffer) Cap() int {
	return cap(b.buf)
}

// Resize changes the length, reallocating only when size exceeds capacity.
func (b *memBuffer) Resize(size int) {
	if size > cap(b.buf) {
		newBuf := make([]byte, size)
		copy(newBuf, b.buf)
		b.buf = newBuf
	} else {
		b.buf = b.buf[:size]
	}
}

// Release returns the buffer to the pool of its capacity. A buffer grown past
// FrameSize is dropped.
func (b *memBuffer) Release() {
	var c sizeClass
	switch n := cap(b.buf); {
	case n == HeaderSize:
		c = classHeader
	case n >= FrameSize && n < 2*FrameSize:
		c = classFrame
	default:
		return
	}
	b.buf = b.buf[:0]
	pools[c].Put(b)
}
