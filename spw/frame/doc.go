// Package frame describes spectral reference frames and the conversions
// between them.
//
// Frequencies measured by a telescope are topocentric. Comparing or combining
// data taken at different epochs or positions requires moving them into a
// common frame (LSRK, barycentric, ...). The actual astrometry lives outside
// this package: callers inject a [Converter] that prepares a per-frequency
// [Conversion] for a pair of frame references.
//
// Two converters are provided:
//   - [Identity] returns every frequency unchanged
//   - [VelocityTable] applies the relativistic Doppler ratio between frames
//     whose radial velocities relative to the observatory are known
//
// [Doppler] shifts whole frequency arrays by a radial velocity, as needed
// for corrections to a moving source frame.
package frame
