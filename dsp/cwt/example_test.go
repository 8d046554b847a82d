package cwt_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

func ExampleScales() {
	scales, _ := cwt.Scales(cwt.Config{NumScales: 4, ScaleDistance: 1, Mother: "mexican_hat"})
	fmt.Printf("%.3f\n", scales)
	// Output:
	// [0.503 1.007 2.013 4.026]
}

func ExampleCombine() {
	set := cwt.Matrix{
		{1, 1, 1},
		{2, 2, 2},
		{3, 3, 3},
	}
	bands, _ := cwt.Combine(set, cwt.Plan{{Lo: 0, Hi: 2}, {Lo: 2, Hi: 3}})
	fmt.Println(bands[0], bands[1])
	// Output:
	// [3 3 3] [3 3 3]
}

func ExampleSynthesize() {
	// A flat contour decomposes into zero rows; synthesis restores the mean.
	f0 := []float64{100, 100, 100, 100}

	t, _ := cwt.New(cwt.DefaultConfig())
	scales, _ := t.Analyze(cwt.SubtractMean(f0))
	bands, _ := cwt.Combine(scales, cwt.DefaultPlan())
	rec, _ := cwt.Synthesize(bands, cwt.Mean(f0))

	fmt.Println(len(scales), len(bands), rec)
	// Output:
	// 12 5 [100 100 100 100]
}

func ExampleTransform_Analyze() {
	n := 256
	f0 := make([]float64, n)
	for i := range f0 {
		f0[i] = 120 + 15*math.Sin(2*math.Pi*float64(i)/32)
	}

	t, _ := cwt.New(cwt.DefaultConfig())
	scales, _ := t.Analyze(cwt.SubtractMean(f0))
	rec, _ := cwt.Synthesize(scales, cwt.Mean(f0))

	maxErr := 0.0
	for i := range rec {
		maxErr = math.Max(maxErr, math.Abs(rec[i]-f0[i]))
	}
	fmt.Printf("rows=%d cols=%d max error below 1 Hz: %v\n", len(scales), len(scales[0]), maxErr < 1)
	// Output:
	// rows=12 cols=256 max error below 1 Hz: true
}
