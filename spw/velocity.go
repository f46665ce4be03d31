package spw

import "github.com/cwbudde/algo-spw/spw/frame"

// RadioVelocity returns the radio velocity in m/s of frequency f for rest frequency f0.
func RadioVelocity(f, f0 float64) float64 { return frame.C * (1 - f/f0) }

// FreqFromRadio inverts RadioVelocity.
func FreqFromRadio(v, f0 float64) float64 { return f0 * (1 - v/frame.C) }

// OpticalVelocity returns the optical velocity in m/s of frequency f for rest frequency f0.
func OpticalVelocity(f, f0 float64) float64 { return frame.C * (f0/f - 1) }

// FreqFromOptical inverts OpticalVelocity.
func FreqFromOptical(v, f0 float64) float64 { return f0 / (1 + v/frame.C) }

// Wavelength returns the vacuum wavelength in m of frequency f.
func Wavelength(f float64) float64 { return frame.C / f }

// FreqFromWavelength inverts Wavelength.
func FreqFromWavelength(l float64) float64 { return frame.C / l }
