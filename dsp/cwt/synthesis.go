package cwt

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Synthesize sums all rows of rows and adds mean to every sample.
//
// Any number of rows is accepted: the full scale set, combined bands or a
// single externally supplied row.
func Synthesize(rows Matrix, mean float64) ([]float64, error) {
	if err := rows.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("%w: mean offset must be finite: %v", ErrConfig, mean)
	}

	out := make([]float64, rows.Cols())
	for _, row := range rows {
		vecmath.AddBlockInPlace(out, row)
	}
	for i := range out {
		out[i] += mean
	}
	return out, nil
}

// Mean returns the arithmetic mean of signal, or 0 for an empty slice.
// A constant signal returns its value exactly.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	if isConstant(signal) {
		return signal[0]
	}
	return vecmath.Sum(signal) / float64(len(signal))
}

func isConstant(signal []float64) bool {
	for _, v := range signal[1:] {
		if v != signal[0] {
			return false
		}
	}
	return true
}

// SubtractMean returns a copy of signal with its mean removed.
func SubtractMean(signal []float64) []float64 {
	mu := Mean(signal)
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v - mu
	}
	return out
}
