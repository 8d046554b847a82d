// Package config loads the YAML configuration of the analysis/synthesis tool.
//
// The schema is strict: unknown keys and missing required wavelet fields are
// rejected with cwt.ErrConfig instead of silently falling back to defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
	"github.com/cwbudde/algo-prosody/dsp/f0"
	"github.com/cwbudde/algo-prosody/prosody"
)

// Config is the validated configuration.
type Config struct {
	Pipeline  prosody.Config
	Extractor f0.Extractor
}

// Default returns the built-in configuration: 12 Mexican hat scales one
// octave apart, COI disabled, the five-band plan, linear F0 with gap
// interpolation, and a 50-400 Hz pitch tracker at 200 frames per second.
func Default() Config {
	return Config{
		Pipeline:  prosody.DefaultConfig(),
		Extractor: *f0.NewExtractor(),
	}
}

type file struct {
	Wavelet     *waveletSection `yaml:"wavelet"`
	Combination [][]int         `yaml:"combination"`
	F0          *f0Section      `yaml:"f0"`
}

type waveletSection struct {
	NumScales     *int     `yaml:"num_scales"`
	ScaleDistance *float64 `yaml:"scale_distance"`
	MotherWavelet *string  `yaml:"mother_wavelet"`
	ApplyCOI      *bool    `yaml:"apply_coi"`
}

type f0Section struct {
	Unit         *string  `yaml:"unit"`
	Interpolate  *bool    `yaml:"interpolate"`
	Method       *string  `yaml:"interpolation"`
	MaskUnvoiced *bool    `yaml:"mask_unvoiced"`
	MinF0        *float64 `yaml:"min_f0"`
	MaxF0        *float64 `yaml:"max_f0"`
	FrameRate    *float64 `yaml:"frame_rate"`
	Voicing      *float64 `yaml:"voicing_threshold"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a YAML document from r.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw file
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w: empty configuration", cwt.ErrConfig)
		}
		return Config{}, fmt.Errorf("%w: %v", cwt.ErrConfig, err)
	}

	cfg := Default()
	if err := raw.apply(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (raw *file) apply(cfg *Config) error {
	w := raw.Wavelet
	if w == nil {
		return fmt.Errorf("%w: missing required section wavelet", cwt.ErrConfig)
	}
	switch {
	case w.NumScales == nil:
		return fmt.Errorf("%w: missing required field wavelet.num_scales", cwt.ErrConfig)
	case w.ScaleDistance == nil:
		return fmt.Errorf("%w: missing required field wavelet.scale_distance", cwt.ErrConfig)
	case w.MotherWavelet == nil:
		return fmt.Errorf("%w: missing required field wavelet.mother_wavelet", cwt.ErrConfig)
	}

	p := &cfg.Pipeline
	p.Wavelet.NumScales = *w.NumScales
	p.Wavelet.ScaleDistance = *w.ScaleDistance
	p.Wavelet.Mother = *w.MotherWavelet
	if w.ApplyCOI != nil {
		p.Wavelet.ApplyCOI = *w.ApplyCOI
	}

	if raw.Combination != nil {
		plan := make(cwt.Plan, len(raw.Combination))
		for i, pair := range raw.Combination {
			if len(pair) != 2 {
				return fmt.Errorf("%w: combination[%d] must be a [lo, hi] pair, got %v", cwt.ErrConfig, i, pair)
			}
			plan[i] = cwt.Band{Lo: pair[0], Hi: pair[1]}
		}
		p.Plan = plan
	}

	if s := raw.F0; s != nil {
		if s.Unit != nil {
			u, err := f0.ParseUnit(*s.Unit)
			if err != nil {
				return err
			}
			p.Unit = u
		}
		if s.Method != nil {
			fill, err := f0.ParseFill(*s.Method)
			if err != nil {
				return err
			}
			p.Fill = fill
		}
		setBool(&p.Interpolate, s.Interpolate)
		setBool(&p.MaskUnvoiced, s.MaskUnvoiced)
		setFloat(&cfg.Extractor.MinF0, s.MinF0)
		setFloat(&cfg.Extractor.MaxF0, s.MaxF0)
		setFloat(&cfg.Extractor.FrameRate, s.FrameRate)
		setFloat(&cfg.Extractor.VoicingThreshold, s.Voicing)
	}
	return nil
}

// Validate checks the wavelet parameters, the plan against num_scales and
// the pitch tracker bounds.
func (c Config) Validate() error {
	if err := c.Pipeline.Validate(); err != nil {
		return err
	}
	e := c.Extractor
	if !(e.MinF0 > 0) || !(e.MaxF0 > e.MinF0) {
		return fmt.Errorf("%w: f0 range [%v, %v] is invalid", cwt.ErrConfig, e.MinF0, e.MaxF0)
	}
	if !(e.FrameRate > 0) {
		return fmt.Errorf("%w: f0.frame_rate must be > 0: %v", cwt.ErrConfig, e.FrameRate)
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
