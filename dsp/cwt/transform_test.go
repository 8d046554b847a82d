package cwt

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-prosody/internal/testutil"
)

func mustTransform(t *testing.T, cfg Config) *Transform {
	t.Helper()
	tr, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%+v): %v", cfg, err)
	}
	return tr
}

func TestAnalyzeShape(t *testing.T) {
	for _, n := range []int{1, 7, 50, 64, 300} {
		tr := mustTransform(t, DefaultConfig())
		set, err := tr.Analyze(testutil.DeterministicNoise(int64(n), 1, n))
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if set.Rows() != 12 || set.Cols() != n {
			t.Fatalf("n=%d: shape %dx%d, want 12x%d", n, set.Rows(), set.Cols(), n)
		}
		for _, row := range set {
			testutil.RequireFinite(t, row)
		}
	}
}

func TestAnalyzeZeroSignal(t *testing.T) {
	for _, name := range MotherNames() {
		for _, coi := range []bool{false, true} {
			cfg := Config{NumScales: 10, ScaleDistance: 0.25, Mother: name, ApplyCOI: coi}
			set, err := mustTransform(t, cfg).Analyze(make([]float64, 50))
			if err != nil {
				t.Fatalf("%+v: unexpected error: %v", cfg, err)
			}
			testutil.RequireAllZero(t, set)
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tr := mustTransform(t, DefaultConfig())

	tests := []struct {
		name   string
		signal []float64
	}{
		{"nil", nil},
		{"empty", []float64{}},
		{"nan", []float64{1, math.NaN(), 2}},
		{"inf", []float64{1, 2, math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Analyze(tt.signal)
			if !errors.Is(err, ErrInput) {
				t.Fatalf("expected ErrInput, got %v", err)
			}
		})
	}
}

func TestRoundTripSine(t *testing.T) {
	// 8 whole periods on a power-of-two length leave no padding edge.
	const n = 512
	signal := testutil.DeterministicSine(1, 64, 1, n)

	tests := []struct {
		cfg     Config
		maxRMSE float64
	}{
		{DefaultConfig(), 0.02},
		{Config{NumScales: 24, ScaleDistance: 0.5, Mother: "mexican_hat"}, 0.005},
		{Config{NumScales: 48, ScaleDistance: 0.25, Mother: "morlet"}, 0.005},
		{Config{NumScales: 24, ScaleDistance: 0.5, Mother: "paul"}, 0.005},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Mother, func(t *testing.T) {
			set, err := mustTransform(t, tt.cfg).Analyze(signal)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			rec, err := Synthesize(set, 0)
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}
			rmse, err := testutil.RMSE(rec, signal)
			if err != nil {
				t.Fatal(err)
			}
			if rmse > tt.maxRMSE {
				t.Fatalf("rmse = %v, want <= %v", rmse, tt.maxRMSE)
			}
		})
	}
}

func TestRoundTripSpeechLikeContour(t *testing.T) {
	f0 := testutil.SpeechLikeContour(120, 300)
	mean := Mean(f0)

	for _, cfg := range []Config{
		DefaultConfig(),
		{NumScales: 48, ScaleDistance: 0.25, Mother: "morlet"},
	} {
		set, err := mustTransform(t, cfg).Analyze(SubtractMean(f0))
		if err != nil {
			t.Fatalf("%s: Analyze: %v", cfg.Mother, err)
		}
		rec, err := Synthesize(set, mean)
		if err != nil {
			t.Fatalf("%s: Synthesize: %v", cfg.Mother, err)
		}
		rmse, _ := testutil.RMSE(rec, f0)
		if rmse > 0.5 {
			t.Errorf("%s: rmse = %v Hz, want <= 0.5", cfg.Mother, rmse)
		}
	}
}

func TestAnalyzeCOI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyCOI = true
	tr := mustTransform(t, cfg)

	const n = 200
	set, err := tr.Analyze(testutil.DeterministicNoise(3, 1, n))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for j, row := range set {
		w := tr.COIWidth(j)
		if w <= 0 {
			t.Fatalf("scale %d: COI width %d, want > 0", j, w)
		}
		if 2*w >= n {
			testutil.RequireAllZero(t, [][]float64{row})
			continue
		}
		testutil.RequireAllZero(t, [][]float64{row[:w], row[n-w:]})
	}

	nonZero := false
	for _, v := range set[0] {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatal("finest scale fully masked")
	}

	// the widest scales exceed the signal and are masked entirely
	testutil.RequireAllZero(t, [][]float64{set[len(set)-1]})
}

func TestAnalyzeWithoutCOIKeepsEdges(t *testing.T) {
	const n = 128
	signal := testutil.DeterministicNoise(5, 1, n)

	cfg := DefaultConfig()
	plain, err := mustTransform(t, cfg).Analyze(signal)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	cfg.ApplyCOI = true
	masked := mustTransform(t, cfg)
	withCOI, err := masked.Analyze(signal)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for _, j := range []int{0, 3} {
		w := masked.COIWidth(j)
		edges := 0
		for i := 0; i < w; i++ {
			if plain[j][i] != 0 {
				edges++
			}
			if plain[j][n-1-i] != 0 {
				edges++
			}
		}
		if edges == 0 {
			t.Fatalf("scale %d: edge coefficients are zero although ApplyCOI is false", j)
		}
		testutil.RequireAllZero(t, [][]float64{withCOI[j][:w], withCOI[j][n-w:]})
		testutil.RequireSliceNearlyEqual(t, withCOI[j][w:n-w], plain[j][w:n-w], 0)
	}
}

func TestRoundTripAcrossMothers(t *testing.T) {
	configs := []Config{
		{NumScales: 12, ScaleDistance: 1, Mother: "mexican_hat"},
		{NumScales: 12, ScaleDistance: 1, Mother: "paul"},
		{NumScales: 48, ScaleDistance: 0.25, Mother: "morlet"},
	}
	contours := map[string]func(n int) []float64{
		"declination": func(n int) []float64 { return testutil.Declination(150, 100, n) },
		"speech-like": func(n int) []float64 { return testutil.SpeechLikeContour(120, n) },
		"sine":        func(n int) []float64 { return testutil.PeriodicContour(150, 20, 64, n) },
	}

	for _, cfg := range configs {
		tr := mustTransform(t, cfg)
		for name, gen := range contours {
			for _, n := range []int{50, 129, 300} {
				signal := gen(n)
				set, err := tr.Analyze(SubtractMean(signal))
				if err != nil {
					t.Fatalf("%s/%s/%d: Analyze: %v", cfg.Mother, name, n, err)
				}
				rec, err := Synthesize(set, Mean(signal))
				if err != nil {
					t.Fatalf("%s/%s/%d: Synthesize: %v", cfg.Mother, name, n, err)
				}
				rmse, err := testutil.RMSE(rec, signal)
				if err != nil {
					t.Fatal(err)
				}
				if rmse > 0.6 {
					t.Errorf("%s/%s/%d: RMSE %.4f Hz > 0.6", cfg.Mother, name, n, rmse)
				}
			}
		}
	}
}

func TestTransformScalesCopy(t *testing.T) {
	tr := mustTransform(t, DefaultConfig())
	s := tr.Scales()
	s[0] = -1
	if tr.Scales()[0] == -1 {
		t.Fatal("Scales exposes internal state")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{NumScales: 0, ScaleDistance: 1, Mother: "mexican_hat"})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestMaskCOI(t *testing.T) {
	row := []float64{1, 1, 1, 1, 1, 1}
	maskCOI(row, 2)
	testutil.RequireSliceNearlyEqual(t, row, []float64{0, 0, 1, 1, 0, 0}, 0)

	row = []float64{1, 1, 1, 1, 1}
	maskCOI(row, 3)
	testutil.RequireSliceNearlyEqual(t, row, []float64{0, 0, 0, 0, 0}, 0)
}
