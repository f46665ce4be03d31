// Package units parses physical quantity strings such as "1.4GHz",
// "-12.5 km/s" or "21cm" and converts them to a requested unit.
//
// Only the dimensions a spectral regrid needs are known: frequency (Hz),
// velocity (m/s) and length (m), each with the usual SI prefixes. A bare
// number carries no unit and is taken to be in whatever unit it is
// converted to.
package units
