// Package mjpeg derives JPEG quantization tables for a quality setting and
// emits the matching DQT marker segments.
package mjpeg

import (
	"fmt"

	"github.com/ugparu/hostheader/utils"
)

// TableSize is the number of coefficients in an 8x8 quantization table.
const TableSize = 64

const (
	minQuality  = 1
	maxQuality  = 100
	midQuality  = 50
	minQuantVal = 1
	maxQuantVal = 0xff
)

// standardLuma is the luminance table from ITU-T T.81 Annex K, in raster order.
var standardLuma = [TableSize]uint8{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

var standardChroma = [TableSize]uint8{
	17, 18, 24, 47, 99, 99, 99, 99,
	18, 21, 26, 66, 99, 99, 99, 99,
	24, 26, 56, 99, 99, 99, 99, 99,
	47, 66, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
}

// QuantizationTables holds a luma and a chroma table in raster order.
type QuantizationTables struct {
	Luma   [TableSize]uint8
	Chroma [TableSize]uint8
}

// StandardTables returns the unscaled Annex K tables.
func StandardTables() QuantizationTables {
	return QuantizationTables{Luma: standardLuma, Chroma: standardChroma}
}

// CustomizeQuantizationTables scales the standard tables for quality in
// 1..100. Quality 50 reproduces the standard tables; entries are clamped
// to 1..255.
func CustomizeQuantizationTables(quality int) (QuantizationTables, error) {
	var t QuantizationTables
	if quality < minQuality || quality > maxQuality {
		return t, utils.PreconditionViolatedError{
			Reason: fmt.Sprintf("jpeg quality %d outside %d..%d", quality, minQuality, maxQuality),
		}
	}

	scale := scaleFactor(quality)
	for i := range TableSize {
		t.Luma[i] = scaleEntry(standardLuma[i], scale)
		t.Chroma[i] = scaleEntry(standardChroma[i], scale)
	}
	return t, nil
}

// scaleFactor returns the percentage applied to the standard tables.
func scaleFactor(quality int) int {
	if quality < midQuality {
		return 5000 / quality //nolint:mnd
	}
	return 200 - 2*quality //nolint:mnd
}

func scaleEntry(std uint8, scale int) uint8 {
	v := (int(std)*scale + 50) / 100                    //nolint:mnd
	return uint8(min(max(v, minQuantVal), maxQuantVal)) //nolint:gosec
}
