package cwt

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-prosody/internal/testutil"
)

func rampMatrix(rows, cols int) Matrix {
	m := NewMatrix(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = float64(i*cols + j)
		}
	}
	return m
}

func TestCombine(t *testing.T) {
	set := rampMatrix(4, 3)
	plan := Plan{{0, 2}, {2, 3}, {1, 4}}

	got, err := Combine(set, plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rows() != len(plan) || got.Cols() != 3 {
		t.Fatalf("shape %dx%d, want %dx3", got.Rows(), got.Cols(), len(plan))
	}

	want := [][]float64{
		{0 + 3, 1 + 4, 2 + 5},
		{6, 7, 8},
		{3 + 6 + 9, 4 + 7 + 10, 5 + 8 + 11},
	}
	for i := range want {
		testutil.RequireSliceNearlyEqual(t, got[i], want[i], 0)
	}
}

func TestCombinePreservesLength(t *testing.T) {
	for _, n := range []int{1, 50, 333} {
		set := rampMatrix(12, n)
		got, err := Combine(set, DefaultPlan())
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if got.Rows() != 5 || got.Cols() != n {
			t.Fatalf("n=%d: shape %dx%d, want 5x%d", n, got.Rows(), got.Cols(), n)
		}
	}
}

func TestCombineDoesNotAliasInput(t *testing.T) {
	set := rampMatrix(2, 2)
	got, err := Combine(set, Plan{{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	got[0][0] = 42
	if set[0][0] == 42 {
		t.Fatal("combined row aliases the input row")
	}
}

func TestCombineErrors(t *testing.T) {
	set := rampMatrix(12, 8)

	tests := []struct {
		name string
		plan Plan
	}{
		{"empty plan", Plan{}},
		{"upper bound beyond scales", Plan{{0, 2}, {8, 13}}},
		{"inverted", Plan{{4, 2}}},
		{"empty range", Plan{{3, 3}}},
		{"negative", Plan{{-1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Combine(set, tt.plan)
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}

	_, err := Combine(Matrix{{1, 2}, {3}}, Plan{{0, 1}})
	if !errors.Is(err, ErrDimension) {
		t.Fatalf("ragged input: expected ErrDimension, got %v", err)
	}
}

func TestDefaultPlanFitsDefaultConfig(t *testing.T) {
	if err := DefaultPlan().Validate(DefaultConfig().NumScales); err != nil {
		t.Fatalf("default plan invalid for default config: %v", err)
	}
	if err := DefaultPlan().Validate(10); !errors.Is(err, ErrConfig) {
		t.Fatalf("default plan accepted for 10 scales: %v", err)
	}
	if s := DefaultPlan().String(); s != "[0,2) [2,4) [4,6) [6,8) [8,12)" {
		t.Fatalf("String() = %q", s)
	}
}
