package prosody

import (
	"fmt"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
	"github.com/cwbudde/algo-prosody/dsp/f0"
)

// Config holds everything a Pipeline needs. It is passed by value into each
// stage; there is no package-level state.
type Config struct {
	// Wavelet configures the scale schedule and the forward transform.
	Wavelet cwt.Config

	// Plan groups scale rows into bands. It is validated against
	// Wavelet.NumScales.
	Plan cwt.Plan

	// Unit selects the domain the contour is decomposed in. The mean offset
	// and all rows live in this domain; reconstructions are returned in Hz.
	Unit f0.Unit

	// Interpolate fills unvoiced frames before analysis, using Fill.
	Interpolate bool
	Fill        f0.Fill

	// MaskUnvoiced zeroes reconstructed frames that were unvoiced in the
	// raw input (ModeBoth only).
	MaskUnvoiced bool
}

// DefaultConfig returns the default wavelet configuration and plan, linear
// units and gap interpolation enabled.
func DefaultConfig() Config {
	return Config{
		Wavelet:     cwt.DefaultConfig(),
		Plan:        cwt.DefaultPlan(),
		Unit:        f0.Linear,
		Interpolate: true,
	}
}

// Validate checks the wavelet configuration and the plan against the number
// of scales, then the unit and fill method.
func (c Config) Validate() error {
	if err := c.Wavelet.Validate(); err != nil {
		return err
	}
	if err := c.Plan.Validate(c.Wavelet.NumScales); err != nil {
		return err
	}
	if c.Unit != f0.Linear && c.Unit != f0.Log {
		return fmt.Errorf("%w: unsupported unit %v", cwt.ErrConfig, c.Unit)
	}
	if c.Fill != f0.FillLinear && c.Fill != f0.FillCubic {
		return fmt.Errorf("%w: unsupported interpolation %v", cwt.ErrConfig, c.Fill)
	}
	return nil
}
