// Package transform moves channel data onto a regridded spectral window.
//
// The grid itself is computed by package spw. This package works on the
// per-channel values:
//
//   - [Regridder]:       interpolation from input to output channel centers
//     ([MethodNearest], [MethodLinear], [MethodCubic], [MethodSpline],
//     [MethodFFTShift])
//   - [FFTShift]:        sub-channel shift through an FFT phase ramp
//   - [Hanning], [Smooth]: spectral smoothing with flag propagation
//   - [AverageChannels], [AverageData]: channel binning
//   - [Combine]:         fraction-weighted merge of windows joined by
//     spw.CombineSpws
//
// Output channels that fall outside the input range, or that depend on a
// flagged input channel, are flagged. Flags are plain []bool slices with
// true meaning bad.
package transform
