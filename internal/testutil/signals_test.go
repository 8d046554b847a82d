package testutil

import (
	"math"
	"testing"
)

func TestPeriodicContour(t *testing.T) {
	c := PeriodicContour(100, 10, 40, 80)
	if len(c) != 80 {
		t.Fatalf("len = %d, want 80", len(c))
	}
	if c[0] != 100 {
		t.Fatalf("c[0] = %v, want 100", c[0])
	}
	if math.Abs(c[10]-110) > 1e-12 {
		t.Fatalf("c[10] = %v, want 110 at the quarter period", c[10])
	}
}

func TestWithGaps(t *testing.T) {
	c := DC(120, 10)
	g := WithGaps(c, [2]int{2, 4}, [2]int{8, 20})

	want := []float64{120, 120, 0, 0, 120, 120, 120, 120, 0, 0}
	RequireSliceNearlyEqual(t, g, want, 0)

	if c[2] != 120 {
		t.Fatal("WithGaps modified its input")
	}
}

func TestSpeechLikeContourFinite(t *testing.T) {
	RequireFinite(t, SpeechLikeContour(120, 300))
}

func TestDeterministicNoiseRepeatable(t *testing.T) {
	a := DeterministicNoise(7, 1, 64)
	b := DeterministicNoise(7, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
}

func TestDeclination(t *testing.T) {
	c := Declination(150, 100, 51)
	if c[0] != 150 || c[50] != 100 {
		t.Fatalf("endpoints = %v, %v, want 150, 100", c[0], c[50])
	}
	if math.Abs(c[25]-125) > 1e-12 {
		t.Fatalf("midpoint = %v, want 125", c[25])
	}
	if got := Declination(130, 90, 1); got[0] != 130 {
		t.Fatalf("single frame = %v, want 130", got[0])
	}
}
