package mjpeg

import "encoding/binary"

const (
	markerSOI = 0xffd8
	markerDQT = 0xffdb

	// dqtLength covers the length field, Pq/Tq byte and 64 8-bit entries.
	dqtLength = 2 + 1 + TableSize

	lumaTableID   = 0
	chromaTableID = 1
)

// zigZag maps scan position to raster index.
var zigZag = [TableSize]uint8{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// MarkerSegmentSize is the byte length of the output of MarshalMarkerSegment.
const MarkerSegmentSize = 2 + 2*(2+dqtLength)

// MarshalMarkerSegment writes SOI followed by the luma (Tq=0) and chroma
// (Tq=1) DQT segments, entries in zig-zag order.
func (t QuantizationTables) MarshalMarkerSegment() []byte {
	b := make([]byte, 0, MarkerSegmentSize)
	b = binary.BigEndian.AppendUint16(b, markerSOI)
	b = appendDQT(b, lumaTableID, &t.Luma)
	b = appendDQT(b, chromaTableID, &t.Chroma)
	return b
}

func appendDQT(b []byte, id uint8, table *[TableSize]uint8) []byte {
	b = binary.BigEndian.AppendUint16(b, markerDQT)
	b = binary.BigEndian.AppendUint16(b, dqtLength)
	b = append(b, id) // Pq=0: 8-bit precision
	for _, idx := range zigZag {
		b = append(b, table[idx])
	}
	return b
}
