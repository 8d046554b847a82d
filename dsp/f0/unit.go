package f0

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

// Unit is the domain in which a contour is decomposed.
type Unit int

const (
	// Linear keeps values in Hz.
	Linear Unit = iota

	// Log decomposes ln(F0) and exponentiates the reconstruction.
	Log
)

// ParseUnit converts "linear" or "log" to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin", "hz":
		return Linear, nil
	case "log", "ln":
		return Log, nil
	default:
		return Linear, fmt.Errorf("%w: unknown F0 unit %q (want linear or log)", cwt.ErrConfig, s)
	}
}

func (u Unit) String() string {
	switch u {
	case Linear:
		return "linear"
	case Log:
		return "log"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Forward maps contour values from Hz into the unit's domain.
// Log requires every value to be strictly positive.
func (u Unit) Forward(contour []float64) ([]float64, error) {
	out := make([]float64, len(contour))
	switch u {
	case Linear:
		copy(out, contour)
	case Log:
		for i, v := range contour {
			if !(v > 0) {
				return nil, fmt.Errorf("%w: log unit needs positive F0, frame %d is %v", cwt.ErrInput, i, v)
			}
			out[i] = math.Log(v)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported unit %v", cwt.ErrConfig, u)
	}
	return out, nil
}

// Inverse maps values from the unit's domain back to Hz in place.
func (u Unit) Inverse(values []float64) {
	if u != Log {
		return
	}
	for i, v := range values {
		values[i] = math.Exp(v)
	}
}
