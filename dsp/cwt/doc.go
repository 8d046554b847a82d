// Package cwt provides a continuous wavelet transform tuned for prosody work on
// F0 contours.
//
// The package offers four stages that are usually chained:
//
//   - Scales: a geometric schedule of wavelet widths derived from a [Config]
//   - Transform.Analyze: forward CWT, one real coefficient row per scale
//   - Combine: sums contiguous scale rows into bands following a [Plan]
//   - Synthesize: sums any set of rows and restores a mean offset
//
// # Usage
//
//	t, err := cwt.New(cwt.DefaultConfig())
//	scales, err := t.Analyze(cwt.SubtractMean(f0))
//	bands, err := cwt.Combine(scales, cwt.DefaultPlan())
//	rec, err := cwt.Synthesize(bands, cwt.Mean(f0))
//
// # Normalization
//
// Rows are normalized so that the plain sum over all scales approximates the
// analysed signal. The approximation degrades for frequencies outside the
// range spanned by the schedule. Scale distances too coarse for the mother
// wavelet (for Morlet anything above roughly 0.45 octaves) leave ripple in the
// summed response and are rejected by [Config.Validate].
//
// # Errors
//
// Every failure wraps one of [ErrConfig], [ErrInput] or [ErrDimension] and can be
// matched with errors.Is.
package cwt
