package prosody

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
	"github.com/cwbudde/algo-prosody/dsp/f0"
)

// ErrMissingMean is returned when synthesis-only mode runs without a mean
// offset.
var ErrMissingMean = fmt.Errorf("%w: mean offset is required for synthesis", cwt.ErrConfig)

// Input carries the data a run consumes.
type Input struct {
	// Signal is the raw F0 contour in Hz, unvoiced frames as 0.
	// Required by ModeAnalysis and ModeBoth.
	Signal []float64

	// Rows are externally supplied scale or band rows (k x N).
	// Required by ModeSynthesis.
	Rows cwt.Matrix

	// Mean is the offset restored by ModeSynthesis, in the configured unit.
	Mean *float64
}

// Result holds the artifacts of a run. Fields not produced by the mode are
// left nil.
type Result struct {
	Mode Mode

	// Raw is a copy of Input.Signal.
	Raw []float64

	// Processed is the interpolated contour in Hz.
	Processed []float64

	// Schedule is the scale width of each row of Scales.
	Schedule []float64

	// Scales is the full num_scales x N decomposition.
	Scales cwt.Matrix

	// Bands is the len(plan) x N combination of Scales.
	Bands cwt.Matrix

	// Mean is the offset removed before analysis or restored at synthesis,
	// in the configured unit.
	Mean float64

	// Reconstructed is the synthesized contour in Hz.
	Reconstructed []float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for progress and per-band diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline composes the scale generator, the forward transform, the combiner
// and the synthesis. A Pipeline holds no per-run state and may be reused.
type Pipeline struct {
	cfg    Config
	tr     *cwt.Transform
	logger *slog.Logger
}

// New validates cfg and prepares the transform.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tr, err := cwt.New(cfg.Wavelet)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:    cfg,
		tr:     tr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Run executes mode on in. Inputs are validated before any transform runs.
func (p *Pipeline) Run(mode Mode, in Input) (*Result, error) {
	if err := p.check(mode, in); err != nil {
		return nil, err
	}

	p.logger.Info("run", "mode", mode, "unit", p.cfg.Unit, "scales", p.cfg.Wavelet.NumScales, "plan", p.cfg.Plan.String())

	if mode == ModeSynthesis {
		rec, err := p.Synthesize(in.Rows, *in.Mean)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: mode, Mean: *in.Mean, Reconstructed: rec}, nil
	}

	res, err := p.Analyze(in.Signal)
	if err != nil {
		return nil, err
	}
	res.Mode = mode

	if mode == ModeBoth {
		rec, err := p.Synthesize(res.Bands, res.Mean)
		if err != nil {
			return nil, err
		}
		if p.cfg.MaskUnvoiced {
			if err := f0.MaskUnvoiced(rec, f0.VoicedMask(res.Raw)); err != nil {
				return nil, err
			}
		}
		res.Reconstructed = rec
	}

	return res, nil
}

func (p *Pipeline) check(mode Mode, in Input) error {
	if !mode.valid() {
		return fmt.Errorf("%w: invalid mode %v", cwt.ErrConfig, mode)
	}
	if mode.Analyzes() {
		if len(in.Signal) == 0 {
			return fmt.Errorf("%w: %v mode needs an F0 contour", cwt.ErrInput, mode)
		}
		return nil
	}
	if in.Mean == nil {
		return ErrMissingMean
	}
	return in.Rows.Validate()
}

// Analyze decomposes a raw F0 contour and combines the scales into bands.
func (p *Pipeline) Analyze(raw []float64) (*Result, error) {
	res := &Result{Mode: ModeAnalysis, Raw: append([]float64(nil), raw...)}

	processed := res.Raw
	if p.cfg.Interpolate {
		var err error
		if processed, err = p.cfg.Fill.Interpolate(raw); err != nil {
			return nil, err
		}
	}
	res.Processed = append([]float64(nil), processed...)

	values, err := p.cfg.Unit.Forward(processed)
	if err != nil {
		return nil, err
	}

	res.Mean = cwt.Mean(values)
	res.Schedule = p.tr.Scales()

	res.Scales, err = p.tr.Analyze(cwt.SubtractMean(values))
	if err != nil {
		return nil, err
	}

	res.Bands, err = cwt.Combine(res.Scales, p.cfg.Plan)
	if err != nil {
		return nil, err
	}

	for i, band := range res.Bands {
		p.logger.Debug("band", "index", i, "range", p.cfg.Plan[i].String(), "mean", cwt.Mean(band))
	}
	p.logger.Info("analysis done", "frames", len(raw), "mean", res.Mean)

	return res, nil
}

// Synthesize sums rows, restores mean and converts the result back to Hz.
func (p *Pipeline) Synthesize(rows cwt.Matrix, mean float64) ([]float64, error) {
	rec, err := cwt.Synthesize(rows, mean)
	if err != nil {
		return nil, err
	}
	p.cfg.Unit.Inverse(rec)
	p.logger.Info("synthesis done", "rows", rows.Rows(), "frames", len(rec), "mean", mean)
	return rec, nil
}
