package f0

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

func harmonicTone(f0 float64, sampleRate, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		x := 2 * math.Pi * f0 * float64(i) / float64(sampleRate)
		out[i] = 0.5*math.Sin(x) + 0.25*math.Sin(2*x+0.5) + 0.1*math.Sin(3*x)
	}
	return out
}

func TestExtractTone(t *testing.T) {
	const sr = 16000
	silence := make([]float64, 8000)
	audio := append(silence, harmonicTone(200, sr, 8000)...)

	e := NewExtractor()
	track, err := e.Extract(audio, sr)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	// 80 samples per frame at 200 frames per second
	if len(track) != len(audio)/80 {
		t.Fatalf("got %d frames, want %d", len(track), len(audio)/80)
	}

	for i := 0; i < 80; i++ {
		if track[i] != 0 {
			t.Fatalf("frame %d in silence: got %v Hz, want 0", i, track[i])
		}
	}
	for i := 120; i < 185; i++ {
		if math.Abs(track[i]-200) > 1 {
			t.Fatalf("frame %d: got %v Hz, want 200", i, track[i])
		}
	}
}

func TestExtractSilence(t *testing.T) {
	track, err := NewExtractor().Extract(make([]float64, 4000), 16000)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for i, v := range track {
		if v != 0 {
			t.Fatalf("frame %d: got %v, want 0", i, v)
		}
	}
}

func TestExtractErrors(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract(nil, 16000); !errors.Is(err, cwt.ErrInput) {
		t.Errorf("empty audio: expected ErrInput, got %v", err)
	}
	if _, err := e.Extract([]float64{1}, 0); !errors.Is(err, cwt.ErrInput) {
		t.Errorf("zero sample rate: expected ErrInput, got %v", err)
	}

	bad := NewExtractor()
	bad.MaxF0 = 9000
	if _, err := bad.Extract([]float64{1}, 16000); !errors.Is(err, cwt.ErrConfig) {
		t.Errorf("max F0 above Nyquist: expected ErrConfig, got %v", err)
	}
}
