package mpeg4

// Start codes, written as 32-bit values.
const (
	VisualObjectSequenceStartCode = 0x1b0
	VisualObjectStartCode         = 0x1b5
	VideoObjectStartCode          = 0x100
	VideoObjectLayerStartCode     = 0x120
	VOPStartCode                  = 0x1b6
)

const (
	bits1  = 1
	bits2  = 2
	bits3  = 3
	bits4  = 4
	bits8  = 8
	bits13 = 13
	bits15 = 15
	bits16 = 16
	bits32 = 32

	visualObjectTypeVideo = 1
	byteAlignedStuffing   = 0b01
	chromaFormat420       = 0b01
	aspectRatioSquare     = 1
	layerPriority         = 1
	verIDSimple           = 1
	verIDAdvancedSimple   = 5
	syncPointModulo       = 0b10
	resyncMarker          = 1
	resyncMarkerIBits     = 17
	resyncMarkerPBase     = 16

	maxTimeResolution = 1<<bits16 - 1
	maxDimension      = 1<<bits13 - 1
	maxVBVField       = 1<<bits15 - 1
	maxFCode          = 7
	maxMBNumberLength = 14
)
