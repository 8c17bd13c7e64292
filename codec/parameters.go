package codec

import (
	"fmt"

	"github.com/ugparu/hostheader/utils"
)

// TokenValues carries the rate-control values the encoder firmware substitutes
// for placeholder elements.
type TokenValues struct {
	PicInitQPMinus26 int32 // QP token, se(v) in -26..25.
	SliceQPDelta     int32 // SQP token, se(v) in -51..51.
	FrameQScale      uint8 // FRAMEQSCALE token, 5 bits in 1..31.
	SliceQScale      uint8 // SLICEQSCALE token, 5 bits in 1..31.
}

// qScaleBits is the width of vop_quant and quant_scale.
const qScaleBits = 5

const (
	minPicInitQP = -26
	maxPicInitQP = 25
	maxQPDelta   = 51
	maxQScale    = 31
)

func (v TokenValues) check(kind ElementKind) error {
	switch kind {
	case ElementQP:
		if v.PicInitQPMinus26 < minPicInitQP || v.PicInitQPMinus26 > maxPicInitQP {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("pic_init_qp_minus26 %d", v.PicInitQPMinus26)}
		}
	case ElementSQP:
		if v.SliceQPDelta < -maxQPDelta || v.SliceQPDelta > maxQPDelta {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("slice_qp_delta %d", v.SliceQPDelta)}
		}
	case ElementFrameQScale:
		if v.FrameQScale == 0 || v.FrameQScale > maxQScale {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("frame qscale %d", v.FrameQScale)}
		}
	case ElementSliceQScale:
		if v.SliceQScale == 0 || v.SliceQScale > maxQScale {
			return utils.PreconditionViolatedError{Reason: fmt.Sprintf("slice qscale %d", v.SliceQScale)}
		}
	}
	return nil
}
