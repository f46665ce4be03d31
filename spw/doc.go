// Package spw computes channel grids for spectral windows: merging several
// windows into one, and regridding a window onto a new set of channels.
//
// A spectral window is a sequence of frequency channels, each described by
// a center frequency and a width in Hz. The package offers four operations:
//
//   - [CombineSpws] merges windows into one channel table and records, per
//     merged channel, which input channels contributed and with what
//     fractional overlap
//   - [ConvertGridPars] turns user-facing regrid parameters (mode, start,
//     width, nchan, rest frequency) into a [RegridSpec]
//   - [RegridChanBounds] computes the lower and upper bounds of the new
//     channels described by a [RegridSpec]
//   - [CalcChanFreqs] moves a window into the output reference frame and
//     returns the new centers, widths and a weight scale factor
//
// # Quantities
//
// A grid can be equidistant in channel number, frequency, radio velocity,
// optical velocity or wavelength. Channel grids are computed in original
// channel units. All other grids are computed by walking outward from the
// center of the new grid in the native quantity and converting each
// boundary back to frequency.
//
// # Diagnostics
//
// Conditions that can be repaired (a bandwidth that exceeds the input, an
// edge channel narrower than requested, negative input widths) never fail a
// call. They are recorded in the returned [Report] as human-readable lines
// and as typed [Warning] values. Hard failures are returned as *[Error],
// which carries the report collected up to the failure and unwraps to one
// of the package's sentinel errors.
//
// All functions are pure: inputs are never modified and results are freshly
// allocated, so independent calls may run concurrently.
package spw
