package cwt

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-prosody/internal/testutil"
)

func TestMatrixTranspose(t *testing.T) {
	m := Matrix{{1, 2, 3}, {4, 5, 6}}
	tr := m.Transpose()
	if tr.Rows() != 3 || tr.Cols() != 2 {
		t.Fatalf("shape %dx%d, want 3x2", tr.Rows(), tr.Cols())
	}
	testutil.RequireSliceNearlyEqual(t, tr.Flatten(), []float64{1, 4, 2, 5, 3, 6}, 0)
	testutil.RequireSliceNearlyEqual(t, tr.Transpose().Flatten(), m.Flatten(), 0)
}

func TestReshape(t *testing.T) {
	m, err := Reshape([]float64{1, 2, 3, 4, 5, 6}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Fatalf("shape %dx%d, want 2x3", m.Rows(), m.Cols())
	}
	testutil.RequireSliceNearlyEqual(t, m[1], []float64{4, 5, 6}, 0)

	for _, tt := range []struct {
		flat []float64
		cols int
	}{
		{[]float64{1, 2, 3, 4, 5}, 2},
		{nil, 5},
		{[]float64{1}, 0},
	} {
		if _, err := Reshape(tt.flat, tt.cols); !errors.Is(err, ErrDimension) {
			t.Errorf("Reshape(%v, %d): expected ErrDimension, got %v", tt.flat, tt.cols, err)
		}
	}
}

func TestMatrixCloneIsDeep(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}}
	c := m.Clone()
	c[0][0] = 9
	if m[0][0] != 1 {
		t.Fatal("Clone shares storage")
	}
}
