// Package buffer pools the scratch buffers used for prepared headers and RTP
// framing.
package buffer

// PooledBuffer is a byte slice borrowed from a pool until Release.
type PooledBuffer interface {
	Data() []byte

	Len() int
	Cap() int

	// Release returns the buffer to the pool. After calling Release,
	// the buffer should not be used.
	Release()

	Resize(int)
}
