// Package prosody runs the CWT analysis/synthesis of F0 contours.
//
// A [Pipeline] is configured once and then run in one of three modes:
//
//   - ModeAnalysis: raw F0 -> gap interpolation -> unit conversion ->
//     mean removal -> wavelet scales -> combined bands
//   - ModeSynthesis: externally supplied rows plus a mean -> F0
//   - ModeBoth: analysis followed by synthesis from the combined bands and
//     the contour's own mean
//
// Every run is independent and produces an in-memory [Result]. Persisting
// and plotting results is left to the caller.
package prosody
