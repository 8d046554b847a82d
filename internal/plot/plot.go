// Package plot renders a pipeline result as a PNG: the F0 curves on top and
// one strip per band underneath.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
	"github.com/cwbudde/algo-prosody/prosody"
)

const (
	minWidth     = 400
	contourH     = 200
	bandH        = 60
	margin       = 4
	maxFrameStep = 4
)

var (
	background = color.RGBA{255, 255, 255, 255}
	axis       = color.RGBA{210, 210, 210, 255}
	rawColor   = color.RGBA{200, 60, 60, 255}
	procColor  = color.RGBA{150, 150, 150, 255}
	recColor   = color.RGBA{40, 90, 200, 255}
	bandColor  = color.RGBA{40, 140, 80, 255}
)

// Encode draws res and writes it to w as PNG.
func Encode(w io.Writer, res *prosody.Result) error {
	img, err := Render(res)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Render draws res. Curves absent from res are skipped.
func Render(res *prosody.Result) (*image.RGBA, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: nothing to plot", cwt.ErrInput)
	}
	frames := max(len(res.Raw), len(res.Processed), len(res.Reconstructed))
	if frames == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", cwt.ErrInput)
	}

	step := 1
	if frames < minWidth {
		step = min(maxFrameStep, (minWidth+frames-1)/frames)
	}
	width := frames*step + 2*margin
	height := contourH + len(res.Bands)*bandH + 2*margin

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	lo, hi := contourRange(res.Raw, res.Processed, res.Reconstructed)
	top := image.Rect(margin, margin, width-margin, margin+contourH)
	toY := func(v float64) int {
		return top.Max.Y - 1 - int(math.Round((v-lo)/(hi-lo)*float64(top.Dy()-1)))
	}

	polyline(img, res.Processed, step, top.Min.X, toY, procColor, true)
	polyline(img, res.Raw, step, top.Min.X, toY, rawColor, true)
	polyline(img, res.Reconstructed, step, top.Min.X, toY, recColor, true)

	for i, band := range res.Bands {
		strip := image.Rect(margin, top.Max.Y+i*bandH, width-margin, top.Max.Y+(i+1)*bandH)
		mid := (strip.Min.Y + strip.Max.Y) / 2
		hline(img, strip.Min.X, strip.Max.X, mid, axis)

		peak := vecmath.MaxAbs(band)
		if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
			continue
		}
		half := float64(strip.Dy()/2 - 1)
		toBandY := func(v float64) int { return mid - int(math.Round(v/peak*half)) }
		polyline(img, band, step, strip.Min.X, toBandY, bandColor, false)
	}

	return img, nil
}

// contourRange returns the voiced value range over all curves, padded so a
// flat contour still gets a non-empty range.
func contourRange(curves ...[]float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range curves {
		for _, v := range c {
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 1
	}
	pad := 0.05 * (hi - lo)
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

// polyline connects consecutive samples with vertical spans. With skipZero,
// unvoiced (zero) frames break the line.
func polyline(img *image.RGBA, data []float64, step, x0 int, toY func(float64) int, c color.RGBA, skipZero bool) {
	prev, havePrev := 0, false
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) || (skipZero && v == 0) {
			havePrev = false
			continue
		}
		y := toY(v)
		x := x0 + i*step
		from := y
		if havePrev {
			from = prev
		}
		vline(img, x, from, y, c)
		hline(img, x, x+step, y, c)
		prev, havePrev = y, true
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		set(img, x, y, c)
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x < x1; x++ {
		set(img, x, y, c)
	}
}

func set(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Rect) {
		img.SetRGBA(x, y, c)
	}
}
