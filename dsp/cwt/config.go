package cwt

import (
	"fmt"
	"math"
)

// Config holds the wavelet parameters shared by the scale generator and the
// forward transform.
type Config struct {
	// NumScales is the number of scale rows produced by the analysis.
	NumScales int

	// ScaleDistance is the spacing between adjacent scales in octaves.
	ScaleDistance float64

	// Mother selects the mother wavelet, see [MotherNames].
	Mother string

	// ApplyCOI zeroes coefficients inside each scale's cone of influence.
	ApplyCOI bool
}

// DefaultConfig returns 12 scales one octave apart using the Mexican hat
// wavelet with cone-of-influence masking disabled.
func DefaultConfig() Config {
	return Config{
		NumScales:     12,
		ScaleDistance: 1.0,
		Mother:        "mexican_hat",
		ApplyCOI:      false,
	}
}

// maxRipple bounds the deviation from one of the summed, normalized scale
// responses. Above it the row sum no longer reconstructs the signal.
const maxRipple = 0.02

// Validate checks the scale parameters and the mother identifier, and
// rejects scale distances too coarse for the mother to reconstruct from.
func (c Config) Validate() error {
	_, err := c.mother()
	return err
}

// mother validates c and returns the selected mother wavelet.
func (c Config) mother() (Mother, error) {
	if c.NumScales <= 0 {
		return nil, fmt.Errorf("%w: num_scales must be > 0: %d", ErrConfig, c.NumScales)
	}
	if !(c.ScaleDistance > 0) || math.IsInf(c.ScaleDistance, 0) {
		return nil, fmt.Errorf("%w: scale_distance must be a finite value > 0: %v", ErrConfig, c.ScaleDistance)
	}
	m, err := LookupMother(c.Mother)
	if err != nil {
		return nil, err
	}
	if r := ripple(m, c.ScaleDistance); r > maxRipple {
		return nil, fmt.Errorf("%w: scale_distance %v is too coarse for %s (response ripple %.3f > %.3f)",
			ErrConfig, c.ScaleDistance, m.Name(), r, maxRipple)
	}
	return m, nil
}
