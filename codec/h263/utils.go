package h263

// Start codes.
const (
	VisualObjectSequenceStartCode = 0x1b0
	VisualObjectStartCode         = 0x1b5
	VideoObjectStartCode          = 0x100
	ShortVideoStartMarker         = 0x20 // 22 bits.
	GOBResyncMarker               = 1    // 17 bits.
)

const (
	bits1  = 1
	bits2  = 2
	bits3  = 3
	bits4  = 4
	bits5  = 5
	bits7  = 7
	bits8  = 8
	bits9  = 9
	bits10 = 10
	bits17 = 17
	bits22 = 22
	bits32 = 32

	visualObjectTypeVideo = 1
	byteAlignedStuffing   = 0b01

	standardFrameRate    = 30
	customClockBase      = 1800
	maxClockDivisor      = 1<<bits7 - 1
	ufepFull             = 1
	formatCustom         = 0b110
	optionalReserved     = 0b1000
	aspectRatioSquare    = 1
	minDimension         = 4
	maxPictureIndication = 1<<bits9 - 1
	maxExtendedTR        = 1<<bits10 - 1
	maxGOBNumber         = 1<<bits5 - 1
	maxGOBFrameID        = 1<<bits2 - 1
)
