package testutil

import (
	"math"
	"math/rand"
	"slices"
)

// UniformChannels returns n channel centers starting at first and spaced by
// width, together with a matching width slice.
func UniformChannels(first, width float64, n int) (freqs, widths []float64) {
	freqs = make([]float64, n)
	widths = make([]float64, n)
	for i := range freqs {
		freqs[i] = first + float64(i)*width
		widths[i] = width
	}
	return freqs, widths
}

// Reversed returns a reversed copy of s.
func Reversed(s []float64) []float64 {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}

// Edges returns the lower and upper channel edges freq -/+ |width|/2.
func Edges(freqs, widths []float64) (lo, hi []float64) {
	lo = make([]float64, len(freqs))
	hi = make([]float64, len(freqs))
	for i := range freqs {
		w := math.Abs(widths[i]) / 2
		lo[i] = freqs[i] - w
		hi[i] = freqs[i] + w
	}
	return lo, hi
}

// Ramp returns values a + b*i for i in [0, n).
func Ramp(a, b float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a + b*float64(i)
	}
	return out
}

// NoiseSpectrum returns n reproducible channel values in [-1, 1).
func NoiseSpectrum(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = 2*rng.Float64() - 1
	}
	return out
}
