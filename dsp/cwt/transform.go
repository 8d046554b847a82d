package cwt

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minFFTSize keeps very short contours on a usable FFT length.
const minFFTSize = 16

// Transform is a configured forward wavelet transform.
// A Transform is immutable and safe for concurrent use.
type Transform struct {
	cfg    Config
	mother Mother
	scales []float64
	norm   float64
}

// New validates cfg and precomputes the scale schedule and normalization.
func New(cfg Config) (*Transform, error) {
	m, err := cfg.mother()
	if err != nil {
		return nil, err
	}
	scales, err := checkedSchedule(m, cfg)
	if err != nil {
		return nil, err
	}

	norm := admissibility(m) / (cfg.ScaleDistance * math.Ln2)
	if !(norm > 0) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("%w: wavelet %s has no usable normalization", ErrConfig, m.Name())
	}

	return &Transform{
		cfg:    cfg,
		mother: m,
		scales: scales,
		norm:   norm,
	}, nil
}

// Config returns the configuration the transform was built from.
func (t *Transform) Config() Config { return t.cfg }

// Mother returns the selected mother wavelet.
func (t *Transform) Mother() Mother { return t.mother }

// Scales returns a copy of the scale schedule.
func (t *Transform) Scales() []float64 {
	out := make([]float64, len(t.scales))
	copy(out, t.scales)
	return out
}

// Analyze decomposes signal into one real coefficient row per scale, ordered
// from the finest to the coarsest scale.
//
// The signal is expected to be mean-subtracted; the wavelets carry no DC and
// any offset is lost. The transform runs in the Fourier domain on a zero
// padded copy, keeps the real part of each inverse transform and, when
// ApplyCOI is set, zeroes the cone of influence at both edges.
func (t *Transform) Analyze(signal []float64) (Matrix, error) {
	if err := checkSignal(signal); err != nil {
		return nil, err
	}

	n := len(signal)
	out := NewMatrix(len(t.scales), n)
	if isZero(signal) {
		return out, nil
	}

	fftSize := nextPowerOf2(n)
	if fftSize < minFFTSize {
		fftSize = minFFTSize
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("cwt: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range signal {
		padded[i] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, padded); err != nil {
		return nil, fmt.Errorf("cwt: forward FFT failed: %w", err)
	}

	omega := angularFrequencies(fftSize)
	product := make([]complex128, fftSize)
	result := make([]complex128, fftSize)

	for j, s := range t.scales {
		for k, w := range omega {
			product[k] = spectrum[k] * complex(t.mother.Response(s*w), 0)
		}

		if err := plan.Inverse(result, product); err != nil {
			return nil, fmt.Errorf("cwt: inverse FFT failed at scale %d: %w", j, err)
		}

		row := out[j]
		for i := range row {
			row[i] = real(result[i]) / t.norm
		}

		if t.cfg.ApplyCOI {
			maskCOI(row, t.COIWidth(j))
		}
	}

	return out, nil
}

// COIWidth returns the number of samples masked at each edge of scale row j
// when ApplyCOI is enabled.
func (t *Transform) COIWidth(j int) int {
	return int(math.Ceil(t.mother.COIFactor() * t.scales[j]))
}

// maskCOI zeroes width samples at both ends of row.
func maskCOI(row []float64, width int) {
	if width <= 0 {
		return
	}
	if 2*width >= len(row) {
		clear(row)
		return
	}
	clear(row[:width])
	clear(row[len(row)-width:])
}

// angularFrequencies returns the FFT bin frequencies in radians per sample,
// positive for the first half and negative above Nyquist.
func angularFrequencies(n int) []float64 {
	omega := make([]float64, n)
	for k := range omega {
		f := k
		if k > n/2 {
			f = k - n
		}
		omega[k] = 2 * math.Pi * float64(f) / float64(n)
	}
	return omega
}

func checkSignal(signal []float64) error {
	if len(signal) == 0 {
		return fmt.Errorf("%w: empty signal", ErrInput)
	}
	for i, v := range signal {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite sample %v at index %d", ErrInput, v, i)
		}
	}
	return nil
}

func isZero(signal []float64) bool {
	for _, v := range signal {
		if v != 0 {
			return false
		}
	}
	return true
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
