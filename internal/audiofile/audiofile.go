// Package audiofile decodes WAV and FLAC files into mono float64 samples.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

// Audio is a decoded mono signal.
type Audio struct {
	Samples    []float64
	SampleRate int
}

// Supported reports whether path has an extension Load can decode.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".flac":
		return true
	}
	return false
}

// Load decodes the file at path, choosing the codec from its extension.
// Multi-channel audio is averaged to mono.
func Load(path string) (*Audio, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%w: unsupported audio format %q", cwt.ErrInput, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var a *Audio
	switch ext {
	case ".wav":
		a, err = DecodeWAV(f)
	case ".flac":
		a, err = DecodeFLAC(f)
	}
	if err != nil {
		return nil, fmt.Errorf("audiofile: %s: %w", path, err)
	}
	return a, nil
}

// DecodeWAV reads a RIFF/WAVE stream.
func DecodeWAV(r io.Reader) (*Audio, error) {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cwt.ErrInput, err)
	}
	defer stream.Close()

	gain := wavGain(format.Precision)
	out := &Audio{SampleRate: int(format.SampleRate)}
	buf := make([][2]float64, 4096)
	for {
		n, ok := stream.Stream(buf)
		for _, s := range buf[:n] {
			out.Samples = append(out.Samples, (s[0]+s[1])/2*gain)
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if len(out.Samples) == 0 {
		return nil, fmt.Errorf("%w: WAV stream has no samples", cwt.ErrInput)
	}
	return out, nil
}

// wavGain rescales beep's multi-byte PCM samples, which are divided by
// 2^bits-1, to the 2^(bits-1) full scale used for FLAC.
func wavGain(precision int) float64 {
	if precision <= 1 {
		return 1
	}
	bits := uint(8 * precision)
	return float64(uint64(1)<<bits-1) / float64(uint64(1)<<(bits-1))
}

// DecodeFLAC reads a FLAC stream.
func DecodeFLAC(r io.Reader) (*Audio, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cwt.ErrInput, err)
	}

	info := stream.Info
	if info.BitsPerSample == 0 || info.NChannels == 0 {
		return nil, fmt.Errorf("%w: FLAC stream info is incomplete", cwt.ErrInput)
	}
	scale := 1 / float64(int64(1)<<(info.BitsPerSample-1))
	channels := float64(info.NChannels)

	out := &Audio{SampleRate: int(info.SampleRate)}
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, sub := range frame.Subframes {
				sum += float64(sub.Samples[i])
			}
			out.Samples = append(out.Samples, sum/channels*scale)
		}
	}
	if len(out.Samples) == 0 {
		return nil, fmt.Errorf("%w: FLAC stream has no samples", cwt.ErrInput)
	}
	return out, nil
}
