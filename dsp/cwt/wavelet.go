package cwt

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Mother is a continuous mother wavelet described in the Fourier domain.
// Frequencies are angular, in radians per sample.
type Mother interface {
	// Name returns the identifier used in configuration files.
	Name() string

	// Response returns the Fourier transform of the wavelet at the
	// dimensionless frequency x = scale * omega. Analytic wavelets return 0
	// for x <= 0.
	Response(x float64) float64

	// FourierFactor converts a scale to its equivalent Fourier period.
	FourierFactor() float64

	// COIFactor converts a scale to its cone-of-influence e-folding time.
	COIFactor() float64
}

// BaseScale returns the smallest useful scale for m, whose equivalent
// Fourier period is two samples.
func BaseScale(m Mother) float64 {
	return 2 / m.FourierFactor()
}

// MexicanHat is the second derivative of a Gaussian (DOG, m = 2).
type MexicanHat struct{}

func (MexicanHat) Name() string { return "mexican_hat" }

func (MexicanHat) Response(x float64) float64 {
	return x * x * math.Exp(-x*x/2) / math.Sqrt(math.Gamma(2.5))
}

func (MexicanHat) FourierFactor() float64 { return 2 * math.Pi / math.Sqrt(2.5) }

func (MexicanHat) COIFactor() float64 { return math.Sqrt2 }

// Morlet is the analytic Morlet wavelet with central frequency Omega0.
type Morlet struct {
	Omega0 float64
}

func (m Morlet) Name() string { return "morlet" }

func (m Morlet) Response(x float64) float64 {
	if x <= 0 {
		return 0
	}
	d := x - m.Omega0
	return math.Pow(math.Pi, -0.25) * math.Exp(-d*d/2)
}

func (m Morlet) FourierFactor() float64 {
	return 4 * math.Pi / (m.Omega0 + math.Sqrt(2+m.Omega0*m.Omega0))
}

func (m Morlet) COIFactor() float64 { return math.Sqrt2 }

// Paul is the analytic Paul wavelet of order Order.
type Paul struct {
	Order int
}

func (p Paul) Name() string { return "paul" }

func (p Paul) Response(x float64) float64 {
	if x <= 0 {
		return 0
	}
	m := float64(p.Order)
	norm := math.Pow(2, m) / math.Sqrt(m*math.Gamma(2*m))
	// log domain keeps x^m * e^-x finite for large x
	return norm * math.Exp(m*math.Log(x)-x)
}

func (p Paul) FourierFactor() float64 { return 4 * math.Pi / (2*float64(p.Order) + 1) }

func (p Paul) COIFactor() float64 { return 1 / math.Sqrt2 }

var mothers = map[string]Mother{
	"mexican_hat": MexicanHat{},
	"morlet":      Morlet{Omega0: 6},
	"paul":        Paul{Order: 4},
}

// LookupMother returns the mother wavelet registered under name.
// Matching is case-insensitive and accepts '-' in place of '_'.
func LookupMother(name string) (Mother, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	m, ok := mothers[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mother wavelet %q (known: %s)",
			ErrConfig, name, strings.Join(MotherNames(), ", "))
	}
	return m, nil
}

// MotherNames lists the registered mother wavelet identifiers in sorted order.
func MotherNames() []string {
	names := make([]string, 0, len(mothers))
	for name := range mothers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ripple returns the largest deviation from one of the summed even response
// of m over an infinite schedule with spacing dj octaves, normalized the way
// [Transform] normalizes its rows. The sum is periodic in log-frequency, so
// one period is sampled.
func ripple(m Mother, dj float64) float64 {
	const (
		uMin    = -30.0
		uMax    = 10.0
		samples = 32
	)
	period := dj * math.Ln2
	norm := admissibility(m) / period
	if !(norm > 0) {
		return math.Inf(1)
	}

	first := math.Floor(uMin / period)
	worst := 0.0
	for i := 0; i < samples; i++ {
		sum := 0.0
		for u := first*period + float64(i)*period/samples; u < uMax; u += period {
			x := math.Exp(u)
			sum += 0.5 * (m.Response(x) + m.Response(-x))
		}
		worst = math.Max(worst, math.Abs(sum/norm-1))
	}
	return worst
}

// admissibility integrates the even part of m's response over log-frequency.
// Dividing by the log-spacing of a scale schedule gives the constant that makes
// the per-frequency sum over scales close to one.
func admissibility(m Mother) float64 {
	const (
		uMin = -30.0
		uMax = 10.0
		du   = 1e-3
	)
	sum := 0.0
	for u := uMin; u < uMax; u += du {
		x := math.Exp(u)
		sum += 0.5 * (m.Response(x) + m.Response(-x))
	}
	return sum * du
}
