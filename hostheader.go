// Package hostheader builds codec bitstream headers as element tables: runs of
// packed header bits interleaved with placeholder tokens that an encoder
// firmware replaces with rate-control values at encode time.
package hostheader

// Header defines the interface of a finished header element table.
type Header interface {
	Codec() CodecType                  // Returns the codec the header belongs to.
	Kind() HeaderKind                  // Returns the syntax structure the header carries.
	Len() int                          // Returns the number of elements in the table.
	SerializedSize() int               // Returns the size of the flat element table layout in bytes.
	MarshalTo(dst []byte) (int, error) // Writes the flat element table layout into dst.
}
