package cwt

import "fmt"

// Matrix is a row-major set of equally long rows. Rows are scales or bands,
// columns are samples.
type Matrix [][]float64

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	backing := make([]float64, rows*cols)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the row length, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate reports ErrDimension if m has no rows, no columns, or ragged rows.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: matrix has no rows", ErrDimension)
	}
	n := len(m[0])
	if n == 0 {
		return fmt.Errorf("%w: matrix rows are empty", ErrDimension)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d samples, want %d", ErrDimension, i, len(row), n)
		}
	}
	return nil
}

// Transpose returns the cols x rows transpose of m.
func (m Matrix) Transpose() Matrix {
	out := NewMatrix(m.Cols(), m.Rows())
	for i, row := range m {
		for j, v := range row {
			out[j][i] = v
		}
	}
	return out
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := NewMatrix(m.Rows(), m.Cols())
	for i, row := range m {
		copy(out[i], row)
	}
	return out
}

// Flatten returns the row-major concatenation of m.
func (m Matrix) Flatten() []float64 {
	out := make([]float64, 0, m.Rows()*m.Cols())
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

// Reshape splits flat row-major data into rows of cols values.
// It fails with ErrDimension if len(flat) is not a positive multiple of cols.
func Reshape(flat []float64, cols int) (Matrix, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("%w: column count must be > 0: %d", ErrDimension, cols)
	}
	if len(flat) == 0 || len(flat)%cols != 0 {
		return nil, fmt.Errorf("%w: %d values cannot be reshaped into rows of %d", ErrDimension, len(flat), cols)
	}
	out := NewMatrix(len(flat)/cols, cols)
	for i := range out {
		copy(out[i], flat[i*cols:(i+1)*cols])
	}
	return out, nil
}
