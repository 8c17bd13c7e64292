package hostheader

// CodecType represents the type of a codec a header is built for.
type CodecType uint32

// avCodecTypeMagic is a magic number used to create unique codec types.
const avCodecTypeMagic = 233333

// makeVideoCodecType creates a video CodecType based on the provided base.
func makeVideoCodecType(base uint32) (c CodecType) {
	c = CodecType(base) << codecTypeOtherBits
	return
}

// variables representing specific codec types.
var (
	H264  = makeVideoCodecType(avCodecTypeMagic + 1) //nolint:mnd
	MPEG4 = makeVideoCodecType(avCodecTypeMagic + 2) //nolint:mnd
	H263  = makeVideoCodecType(avCodecTypeMagic + 3) //nolint:mnd
	JPEG  = makeVideoCodecType(avCodecTypeMagic + 4) //nolint:mnd
)

const codecTypeOtherBits = 1

// String returns the human-readable string representation of a CodecType.
func (ct CodecType) String() string {
	switch ct {
	case H264:
		return "H264"
	case MPEG4:
		return "MPEG4"
	case H263:
		return "H263"
	case JPEG:
		return "JPEG"
	}
	return "UNKNOWN"
}

// HeaderKind names the syntax structure an element stream carries.
type HeaderKind uint8

const (
	SequenceHeader HeaderKind = iota + 1
	PictureHeader
	SliceHeader
	SkipSliceHeader
	VideoPacketHeader
	GOBHeader
	EndOfSequenceHeader
	EndOfStreamHeader
	AccessUnitDelimiterHeader
	SEIHeader
	FillerHeader
)

func (hk HeaderKind) String() string {
	switch hk {
	case SequenceHeader:
		return "sequence"
	case PictureHeader:
		return "picture"
	case SliceHeader:
		return "slice"
	case SkipSliceHeader:
		return "skip_slice"
	case VideoPacketHeader:
		return "video_packet"
	case GOBHeader:
		return "gob"
	case EndOfSequenceHeader:
		return "end_of_sequence"
	case EndOfStreamHeader:
		return "end_of_stream"
	case AccessUnitDelimiterHeader:
		return "access_unit_delimiter"
	case SEIHeader:
		return "sei"
	case FillerHeader:
		return "filler"
	}
	return "unknown"
}
