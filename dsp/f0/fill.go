package f0

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

// Fill selects how unvoiced gaps are bridged.
type Fill int

const (
	// FillLinear draws a straight line across each gap.
	FillLinear Fill = iota
	// FillCubic bridges each gap with a 4-point cubic Hermite curve through
	// the voiced frames one gap length before and after it.
	FillCubic
)

// ParseFill accepts "linear" or "cubic".
func ParseFill(s string) (Fill, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return FillLinear, nil
	case "cubic":
		return FillCubic, nil
	default:
		return FillLinear, fmt.Errorf("%w: unknown interpolation %q (want linear or cubic)", cwt.ErrConfig, s)
	}
}

func (f Fill) String() string {
	switch f {
	case FillLinear:
		return "linear"
	case FillCubic:
		return "cubic"
	default:
		return fmt.Sprintf("Fill(%d)", int(f))
	}
}

// Interpolate fills the unvoiced frames of raw with method f.
// See the package-level [Interpolate] for edge handling and errors.
func (f Fill) Interpolate(raw []float64) ([]float64, error) {
	switch f {
	case FillLinear:
		return Interpolate(raw)
	case FillCubic:
		return interpolate(raw, cubicGap)
	default:
		return nil, fmt.Errorf("%w: unsupported interpolation %v", cwt.ErrConfig, f)
	}
}

// gapFunc fills out[prev+1:next] given voiced frames at prev and next.
type gapFunc func(out, raw []float64, prev, next int)

func linearGap(out, raw []float64, prev, next int) {
	a, b := raw[prev], raw[next]
	span := float64(next - prev)
	for k := prev + 1; k < next; k++ {
		out[k] = a + (b-a)*float64(k-prev)/span
	}
}

// cubicGap uses the voiced frames at prev-span and next+span as outer
// control points, falling back to the gap ends. Values that would leave the
// voiced range (<= 0) fall back to the linear fill.
func cubicGap(out, raw []float64, prev, next int) {
	span := next - prev
	a, b := raw[prev], raw[next]
	xm1, x2 := a, b
	if k := prev - span; k >= 0 && IsVoiced(raw[k]) {
		xm1 = raw[k]
	}
	if k := next + span; k < len(raw) && IsVoiced(raw[k]) {
		x2 = raw[k]
	}
	for k := prev + 1; k < next; k++ {
		t := float64(k-prev) / float64(span)
		v := hermite4(t, xm1, a, b, x2)
		if !IsVoiced(v) {
			v = a + (b-a)*t
		}
		out[k] = v
	}
}

// hermite4 interpolates from x0 to x1 at t in [0,1] using the neighbours
// xm1 and x2 (Catmull-Rom).
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
