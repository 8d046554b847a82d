package cwt

import (
	"fmt"
	"math"
)

// Scales returns the wavelet width schedule, in samples, for cfg.
//
// scale[i] = BaseScale(mother) * 2^(i*ScaleDistance), so the schedule is
// strictly increasing and depends only on NumScales, ScaleDistance and Mother.
func Scales(cfg Config) ([]float64, error) {
	m, err := cfg.mother()
	if err != nil {
		return nil, err
	}
	return checkedSchedule(m, cfg)
}

func checkedSchedule(m Mother, cfg Config) ([]float64, error) {
	scales := scaleSchedule(BaseScale(m), cfg.NumScales, cfg.ScaleDistance)
	for i, s := range scales {
		if math.IsInf(s, 0) || (i > 0 && s <= scales[i-1]) {
			return nil, fmt.Errorf("%w: scale schedule degenerates at index %d (%v)", ErrConfig, i, s)
		}
	}
	return scales, nil
}

func scaleSchedule(s0 float64, n int, dj float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s0 * math.Exp2(float64(i)*dj)
	}
	return out
}
