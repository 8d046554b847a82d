package f0

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/r9y9/gossp/stft"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

// Extractor estimates F0 with a windowed autocorrelation tracker.
//
// Each frame's autocorrelation is computed from its power spectrum and divided
// by the autocorrelation of the analysis window, then the strongest peak in
// the lag range [SampleRate/MaxF0, SampleRate/MinF0] is refined by parabolic
// interpolation.
type Extractor struct {
	// MinF0 and MaxF0 bound the pitch search range in Hz.
	MinF0 float64
	MaxF0 float64

	// FrameRate is the number of F0 frames per second.
	FrameRate float64

	// VoicingThreshold is the minimum normalized autocorrelation peak for a
	// frame to count as voiced.
	VoicingThreshold float64

	// SilenceThreshold is the frame energy, relative to the loudest frame,
	// below which a frame is unvoiced.
	SilenceThreshold float64

	// OctaveCost favours shorter lags, per octave, to avoid octave drops.
	OctaveCost float64
}

// NewExtractor returns an extractor for speech: 50-400 Hz at 200 frames per
// second.
func NewExtractor() *Extractor {
	return &Extractor{
		MinF0:            50,
		MaxF0:            400,
		FrameRate:        200,
		VoicingThreshold: 0.45,
		SilenceThreshold: 1e-3,
		OctaveCost:       0.01,
	}
}

func (e *Extractor) validate(sampleRate int) error {
	switch {
	case sampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0: %d", cwt.ErrInput, sampleRate)
	case !(e.MinF0 > 0) || !(e.MaxF0 > e.MinF0):
		return fmt.Errorf("%w: invalid F0 range [%v, %v]", cwt.ErrConfig, e.MinF0, e.MaxF0)
	case e.MaxF0 >= float64(sampleRate)/2:
		return fmt.Errorf("%w: max F0 %v at or above Nyquist for %d Hz", cwt.ErrConfig, e.MaxF0, sampleRate)
	case !(e.FrameRate > 0):
		return fmt.Errorf("%w: frame rate must be > 0: %v", cwt.ErrConfig, e.FrameRate)
	}
	return nil
}

// Extract returns one F0 value per frame of samples, 0 for unvoiced frames.
// Frame i is centred on sample i*sampleRate/FrameRate.
func (e *Extractor) Extract(samples []float64, sampleRate int) ([]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no audio samples", cwt.ErrInput)
	}
	if err := e.validate(sampleRate); err != nil {
		return nil, err
	}

	sr := float64(sampleRate)
	shift := max(int(math.Round(sr/e.FrameRate)), 1)
	frameLen := nextPowerOf2(int(math.Ceil(4 * sr / e.MinF0)))
	numFrames := (len(samples) + shift - 1) / shift

	minLag := max(int(math.Floor(sr/e.MaxF0)), 2)
	maxLag := min(int(math.Ceil(sr/e.MinF0)), frameLen/2-2)

	padded := make([]float64, frameLen/2, len(samples)+frameLen)
	padded = append(padded, samples...)
	padded = append(padded, make([]float64, frameLen/2)...)

	s := stft.New(shift, frameLen)
	spectrogram := s.STFT(padded)
	windowACF := autocorrelation(fft.FFTReal(s.Window))

	acfs := make([][]float64, min(len(spectrogram), numFrames))
	peak := 0.0
	for i := range acfs {
		acfs[i] = autocorrelation(spectrogram[i])
		peak = math.Max(peak, acfs[i][0])
	}

	out := make([]float64, numFrames)
	if peak == 0 {
		return out, nil
	}

	r := make([]float64, maxLag+2)
	for i, acf := range acfs {
		if acf[0] <= e.SilenceThreshold*peak {
			continue
		}
		for lag := range r {
			r[lag] = (acf[lag] / acf[0]) / (windowACF[lag] / windowACF[0])
		}
		out[i] = e.pickPeak(r, minLag, maxLag, sr)
	}

	return out, nil
}

// pickPeak returns the F0 of the best autocorrelation maximum in
// [minLag, maxLag], or 0 when no maximum passes the voicing threshold.
func (e *Extractor) pickPeak(r []float64, minLag, maxLag int, sr float64) float64 {
	best := -1
	bestScore := math.Inf(-1)
	for lag := minLag; lag <= maxLag; lag++ {
		if r[lag] < r[lag-1] || r[lag] < r[lag+1] {
			continue
		}
		score := r[lag] - e.OctaveCost*math.Log2(e.MinF0*float64(lag)/sr)
		if score > bestScore {
			best, bestScore = lag, score
		}
	}
	if best < 0 || r[best] < e.VoicingThreshold {
		return 0
	}

	y0, y1, y2 := r[best-1], r[best], r[best+1]
	lag := float64(best)
	if d := y0 - 2*y1 + y2; d != 0 {
		lag += 0.5 * (y0 - y2) / d
	}
	return sr / lag
}

// autocorrelation returns the circular autocorrelation of the frame whose
// spectrum is given.
func autocorrelation(spectrum []complex128) []float64 {
	power := make([]complex128, len(spectrum))
	for k, v := range spectrum {
		a := cmplx.Abs(v)
		power[k] = complex(a*a, 0)
	}
	acf := fft.IFFT(power)
	out := make([]float64, len(acf))
	for i, v := range acf {
		out[i] = real(v)
	}
	return out
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
