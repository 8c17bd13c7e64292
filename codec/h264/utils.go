package h264

import "errors"

// NaluNonIDR represents the NAL unit type of a coded slice of a non-IDR picture.
const NaluNonIDR = 1

// NaluCodedIDR represents the Network Abstraction Layer Unit (NALU) type for
// Coded IDR (Instantaneous Decoding Refresh).
const NaluCodedIDR = 5

// NaluSEI represents the NAL unit type of supplemental enhancement information.
const NaluSEI = 6

// NaluSPS represents the Network Abstraction Layer Unit (NALU) type for Sequence Parameter Set.
const NaluSPS = 7

// NaluPPS represents the Network Abstraction Layer Unit (NALU) type for Picture Parameter Set.
const NaluPPS = 8

// NaluAUD represents the NAL unit type of an access unit delimiter.
const NaluAUD = 9

// NaluEndOfSequence represents the NAL unit type of an end of sequence marker.
const NaluEndOfSequence = 10

// NaluEndOfStream represents the NAL unit type of an end of stream marker.
const NaluEndOfStream = 11

// ErrDecconfInvalid is returned for a malformed AVC decoder configuration record.
var ErrDecconfInvalid = errors.New("h264: AVCDecoderConfRecord invalid")

// Common magic numbers used in the package
const (
	// NAL header
	nalRefIdcShift = 5
	nalRefIdcHigh  = 3
	nalRefIdcLow   = 1

	// Start code prefix sizes in bytes
	shortStartCode = 3
	longStartCode  = 4

	// Bit sizes
	bits2  = 2
	bits3  = 3
	bits4  = 4
	bits5  = 5
	bits6  = 6
	bits7  = 7
	bits8  = 8
	bits20 = 20
	bits32 = 32

	// Fixed sequence parameter set fields
	log2MaxFrameNumMinus4   = 1
	log2MaxPocLsbMinus4     = 2
	frameNumBits            = log2MaxFrameNumMinus4 + 4
	pocLsbBits              = log2MaxPocLsbMinus4 + 4
	maxFrameNum             = 1 << frameNumBits
	chromaFormat420         = 1
	constraintSet0          = 0x80
	constraintSet1          = 0x40
	constraintSet3          = 0x10
	levelIdc1bHigh          = 9
	aspectOverscanSignalLoc = 0b00001 // four absent flags then timing_info_present_flag

	// Long-term reference handling
	reorderLongTerm    = 2
	reorderEnd         = 3
	mmcoMaxLongTermIdx = 4
	mmcoCurrentToLong  = 6

	// SEI payload types and limits
	seiBufferingPeriod       = 0
	seiPictureTiming         = 1
	seiFramePacking          = 45
	rbspTrailingByte         = 0x80
	maxSEIPayloadSize        = 0xfe
	defaultPicTimingDelayLen = 24
	maxCTType                = 2
	maxCountingType          = 6
	maxSeconds               = 59
	maxMinutes               = 59
	maxHours                 = 23
	maxFramePackingID        = 0xffff
	maxContentInterpretation = 2
	maxRepetitionPeriod      = 16384
	maxGridPosition          = 15

	// backward_zero_B_mb() body written after mb_skip_run
	backwardZeroBMb = 15

	// Access unit delimiter stop bit and alignment
	audTrailingBits = 0b10000

	// Value range checks
	maxDeblockIdc      = 2
	maxDeblockOffset   = 6
	maxChromaQPOffset  = 12
	maxPrimaryPicType  = 7
	maxFieldLength     = 31
	maxScale           = 15
	maxSEIDelayBits    = 32
	defaultSEIDelayLen = 20
)

// lengthFieldSize is the size of the SPS/PPS length fields in the AVC decoder configuration record.
const lengthFieldSize = 2

// Masks of the AVC decoder configuration record.
const (
	nalTypeMask               = 0x1f
	avcRecordSPSMin           = 4
	avcLengthSizeMinusOne     = 3
	maskLengthSizeMinusOne    = 0x03
	maskSPSCount              = 0x1f
	maskLengthSizeMinusOneInv = 0xfc
	maskSPSCountInv           = 0xe0
)
