package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// PeriodicContour returns base + amplitude*sin(2*pi*i/period), a pitch curve
// oscillating around base with a period given in frames.
func PeriodicContour(base, amplitude, period float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = base + amplitude*math.Sin(2*math.Pi*float64(i)/period)
	}
	return out
}

// SpeechLikeContour mixes a phrase-level declination, a slow accent curve and
// a faster syllable-rate wiggle around base Hz.
func SpeechLikeContour(base float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		x := float64(i)
		out[i] = base +
			20*math.Sin(2*math.Pi*x/90) +
			8*math.Sin(2*math.Pi*x/23+0.3) +
			0.05*x
	}
	return out
}

// Declination returns a straight line falling from start to end Hz over
// length frames, the typical phrase-level F0 trend.
func Declination(start, end float64, length int) []float64 {
	out := make([]float64, length)
	if length == 1 {
		out[0] = start
		return out
	}
	for i := range out {
		out[i] = start + (end-start)*float64(i)/float64(length-1)
	}
	return out
}

// WithGaps returns a copy of contour with [start, end) ranges set to zero,
// the conventional marker for unvoiced frames.
func WithGaps(contour []float64, gaps ...[2]int) []float64 {
	out := make([]float64, len(contour))
	copy(out, contour)
	for _, g := range gaps {
		for i := max(g[0], 0); i < g[1] && i < len(out); i++ {
			out[i] = 0
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
