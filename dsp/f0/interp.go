package f0

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

// IsVoiced reports whether v is a usable pitch value.
func IsVoiced(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// VoicedMask returns one flag per frame of raw, true where the frame is voiced.
func VoicedMask(raw []float64) []bool {
	mask := make([]bool, len(raw))
	for i, v := range raw {
		mask[i] = IsVoiced(v)
	}
	return mask
}

// Interpolate returns a copy of raw with unvoiced frames (<= 0, NaN or Inf)
// replaced by linear interpolation between the surrounding voiced frames.
// Leading and trailing gaps hold the nearest voiced value.
//
// A contour without any voiced frame cannot be interpolated and fails with
// cwt.ErrInput.
func Interpolate(raw []float64) ([]float64, error) {
	return interpolate(raw, linearGap)
}

func interpolate(raw []float64, fill gapFunc) ([]float64, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty F0 contour", cwt.ErrInput)
	}

	out := make([]float64, len(raw))
	copy(out, raw)

	prev := -1
	for i, v := range raw {
		if !IsVoiced(v) {
			continue
		}
		switch {
		case prev < 0:
			for k := 0; k < i; k++ {
				out[k] = v
			}
		case i-prev > 1:
			fill(out, raw, prev, i)
		}
		prev = i
	}

	if prev < 0 {
		return nil, fmt.Errorf("%w: F0 contour has no voiced frames", cwt.ErrInput)
	}
	for k := prev + 1; k < len(out); k++ {
		out[k] = raw[prev]
	}

	return out, nil
}

// MaskUnvoiced zeroes the frames of contour that are false in voiced.
// The slices must have the same length.
func MaskUnvoiced(contour []float64, voiced []bool) error {
	if len(contour) != len(voiced) {
		return fmt.Errorf("%w: contour has %d frames, mask has %d", cwt.ErrDimension, len(contour), len(voiced))
	}
	for i, ok := range voiced {
		if !ok {
			contour[i] = 0
		}
	}
	return nil
}
