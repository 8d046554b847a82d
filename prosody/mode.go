package prosody

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

// Mode selects which half of the pipeline runs.
type Mode int

const (
	ModeAnalysis Mode = iota
	ModeSynthesis
	ModeBoth
)

// ParseMode accepts 0/1/2 or analysis/synthesis/both.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "analysis":
		return ModeAnalysis, nil
	case "1", "synthesis":
		return ModeSynthesis, nil
	case "2", "both", "analysis-synthesis":
		return ModeBoth, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q (want 0/analysis, 1/synthesis or 2/both)", cwt.ErrConfig, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeAnalysis:
		return "analysis"
	case ModeSynthesis:
		return "synthesis"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Analyzes reports whether m decomposes an input contour.
func (m Mode) Analyzes() bool { return m == ModeAnalysis || m == ModeBoth }

// Synthesizes reports whether m produces a reconstruction.
func (m Mode) Synthesizes() bool { return m == ModeSynthesis || m == ModeBoth }

func (m Mode) valid() bool { return m >= ModeAnalysis && m <= ModeBoth }
