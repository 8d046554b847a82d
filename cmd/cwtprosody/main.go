// Command cwtprosody decomposes an F0 contour into wavelet prosody bands and
// reconstructs contours from such bands.
//
// Usage:
//
//	cwtprosody [flags] input
//
// The input is a text F0 file (one value per line, 0 for unvoiced frames) or
// a WAV/FLAC recording, whose F0 is tracked first. In synthesis mode the input
// is a band file as written by the analysis.
//
// Examples:
//
//	cwtprosody -v utt.f0
//	cwtprosody -M 2 -P utt.png -o out/ utt.wav
//	cwtprosody -M 1 -m 118.5 -o utt_rec.f0 out/utt.f0.cwt
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
	"github.com/cwbudde/algo-prosody/internal/artifact"
	"github.com/cwbudde/algo-prosody/internal/audiofile"
	"github.com/cwbudde/algo-prosody/internal/config"
	"github.com/cwbudde/algo-prosody/internal/plot"
	"github.com/cwbudde/algo-prosody/prosody"
)

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) IsBoolFlag() bool { return true }

func (v *verbosity) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v++
	}
	return nil
}

func (v verbosity) level() slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

type options struct {
	configPath string
	mode       string
	mean       float64
	output     string
	plotPath   string
	bands      int
	verbose    verbosity
	input      string
}

func main() {
	os.Exit(exitCode(run(os.Args[1:], os.Stderr), os.Stderr))
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, cwt.ErrConfig), errors.Is(err, cwt.ErrInput), errors.Is(err, cwt.ErrDimension):
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "unexpected error: %v\n", err)
		return 1
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("cwtprosody", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "c", "", "YAML configuration file (default: built-in configuration)")
	fs.StringVar(&o.mode, "M", "0", "mode: 0/analysis, 1/synthesis or 2/both")
	fs.Float64Var(&o.mean, "m", math.NaN(), "mean F0 offset restored in synthesis mode, in the configured unit")
	fs.StringVar(&o.output, "o", "", "output directory for analysis, output file for synthesis")
	fs.StringVar(&o.plotPath, "P", "", "write a PNG plot of the result to this path")
	fs.IntVar(&o.bands, "bands", 0, "columns of the synthesis input (default: number of bands in the plan)")
	fs.Var(&o.verbose, "v", "increase verbosity (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cwtprosody [flags] input\n\n")
		fmt.Fprintf(stderr, "Wavelet prosody analysis and synthesis of F0 contours.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  cwtprosody -v utt.f0\n")
		fmt.Fprintf(stderr, "  cwtprosody -M 2 -P utt.png -o out/ utt.wav\n")
		fmt.Fprintf(stderr, "  cwtprosody -M 1 -m 118.5 -o utt_rec.f0 out/utt.f0.cwt\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, err
		}
		return o, fmt.Errorf("%w: %v", cwt.ErrConfig, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, fmt.Errorf("%w: expected exactly one input file, got %d", cwt.ErrInput, fs.NArg())
	}
	o.input = fs.Arg(0)
	return o, nil
}

func run(args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: o.verbose.level()}))

	cfg := config.Default()
	if o.configPath != "" {
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
		logger.Info("configuration loaded", "path", o.configPath)
	}

	mode, err := prosody.ParseMode(o.mode)
	if err != nil {
		return err
	}

	p, err := prosody.New(cfg.Pipeline, prosody.WithLogger(logger))
	if err != nil {
		return err
	}

	in, err := loadInput(o, mode, cfg, logger)
	if err != nil {
		return err
	}

	res, err := p.Run(mode, in)
	if err != nil {
		return err
	}

	batch := &artifact.Batch{}
	if err := stage(batch, o, res); err != nil {
		return err
	}
	if o.plotPath != "" {
		shown, err := plotResult(p, res)
		if err != nil {
			return err
		}
		if err := batch.Write(o.plotPath, func(w io.Writer) error { return plot.Encode(w, shown) }); err != nil {
			return err
		}
	}
	written := batch.Paths()
	if err := batch.Commit(); err != nil {
		return err
	}
	for _, path := range written {
		logger.Info("wrote", "path", path)
	}
	return nil
}

// plotResult returns res with a reconstruction filled in, so analysis-only
// plots still overlay the resynthesized contour.
func plotResult(p *prosody.Pipeline, res *prosody.Result) (*prosody.Result, error) {
	if res.Reconstructed != nil || res.Bands == nil {
		return res, nil
	}
	rec, err := p.Synthesize(res.Bands, res.Mean)
	if err != nil {
		return nil, err
	}
	shown := *res
	shown.Reconstructed = rec
	return &shown, nil
}

func loadInput(o options, mode prosody.Mode, cfg config.Config, logger *slog.Logger) (prosody.Input, error) {
	if mode == prosody.ModeSynthesis {
		var in prosody.Input
		if !math.IsNaN(o.mean) {
			in.Mean = &o.mean
		}
		cols := o.bands
		if cols == 0 {
			cols = len(cfg.Pipeline.Plan)
		}
		if cols < 0 {
			return in, fmt.Errorf("%w: -bands must be > 0: %d", cwt.ErrConfig, cols)
		}
		rows, err := artifact.ReadRowsFile(o.input, cols)
		if err != nil {
			return in, err
		}
		in.Rows = rows
		return in, nil
	}

	if audiofile.Supported(o.input) {
		a, err := audiofile.Load(o.input)
		if err != nil {
			return prosody.Input{}, err
		}
		logger.Info("tracking f0", "path", o.input, "samples", len(a.Samples), "rate", a.SampleRate)
		contour, err := cfg.Extractor.Extract(a.Samples, a.SampleRate)
		if err != nil {
			return prosody.Input{}, err
		}
		return prosody.Input{Signal: contour}, nil
	}

	if ext := strings.ToLower(filepath.Ext(o.input)); ext != ".f0" {
		return prosody.Input{}, fmt.Errorf("%w: unsupported input format %q (want .f0, .wav or .flac)", cwt.ErrInput, ext)
	}
	contour, err := artifact.ReadVectorFile(o.input)
	if err != nil {
		return prosody.Input{}, err
	}
	logger.Debug("f0 loaded", "path", o.input, "frames", len(contour))
	return prosody.Input{Signal: contour}, nil
}

// stage queues the artifacts of res under the naming scheme
// <out>/<basename>{.interp,.cwt,.cwt.<i>,.scales,_rec.f0}.
func stage(b *artifact.Batch, o options, res *prosody.Result) error {
	if res.Mode == prosody.ModeSynthesis {
		out := o.output
		if out == "" {
			out = o.input + "_rec.f0"
		}
		return b.Vector(out, res.Reconstructed)
	}

	dir := o.output
	if dir == "" {
		dir = filepath.Dir(o.input)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	base := filepath.Join(dir, filepath.Base(o.input))

	if err := b.Vector(base+".interp", res.Processed); err != nil {
		return err
	}
	if err := b.Rows(base+".cwt", res.Bands); err != nil {
		return err
	}
	for i, band := range res.Bands {
		if err := b.Vector(fmt.Sprintf("%s.cwt.%d", base, i+1), band); err != nil {
			return err
		}
	}
	if err := b.Rows(base+".scales", res.Scales); err != nil {
		return err
	}
	if res.Mode == prosody.ModeBoth {
		return b.Vector(base+"_rec.f0", res.Reconstructed)
	}
	return nil
}
