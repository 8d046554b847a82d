// Package f0 prepares pitch contours for wavelet analysis.
//
// It covers the steps around the transform rather than the transform itself:
//
//   - Extractor estimates a frame-wise F0 track from audio samples
//   - Interpolate and Fill bridge unvoiced gaps so the contour is continuous
//   - Unit converts between linear Hz and natural-log F0
//
// Unvoiced frames are marked with 0 throughout, matching the usual .f0 file
// convention.
package f0
