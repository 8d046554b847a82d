package cwt

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Band is a half-open range [Lo, Hi) of scale indices summed into one row.
type Band struct {
	Lo, Hi int
}

func (b Band) String() string { return fmt.Sprintf("[%d,%d)", b.Lo, b.Hi) }

// Plan lists the bands produced by [Combine], in output order.
type Plan []Band

// DefaultPlan returns the five-band grouping used for 12 octave-spaced scales:
// [0,2) [2,4) [4,6) [6,8) [8,12).
func DefaultPlan() Plan {
	return Plan{{0, 2}, {2, 4}, {4, 6}, {6, 8}, {8, 12}}
}

// Validate checks every band against numScales.
func (p Plan) Validate(numScales int) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: combination plan is empty", ErrConfig)
	}
	for i, b := range p {
		switch {
		case b.Lo < 0:
			return fmt.Errorf("%w: band %d %v starts below 0", ErrConfig, i, b)
		case b.Lo >= b.Hi:
			return fmt.Errorf("%w: band %d %v is empty or inverted", ErrConfig, i, b)
		case b.Hi > numScales:
			return fmt.Errorf("%w: band %d %v exceeds %d scales", ErrConfig, i, b, numScales)
		}
	}
	return nil
}

func (p Plan) String() string {
	parts := make([]string, len(p))
	for i, b := range p {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// Combine sums the rows of set inside each band of plan. The result has
// len(plan) rows of the same length as the rows of set.
func Combine(set Matrix, plan Plan) (Matrix, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if err := plan.Validate(set.Rows()); err != nil {
		return nil, err
	}

	out := NewMatrix(len(plan), set.Cols())
	for j, b := range plan {
		for i := b.Lo; i < b.Hi; i++ {
			vecmath.AddBlockInPlace(out[j], set[i])
		}
	}
	return out, nil
}
