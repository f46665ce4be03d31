package testutil

import "testing"

func TestUniformChannels(t *testing.T) {
	f, w := UniformChannels(100, 2, 4)
	RequireSliceNearlyEqual(t, f, []float64{100, 102, 104, 106}, 0)
	RequireSliceNearlyEqual(t, w, []float64{2, 2, 2, 2}, 0)
}

func TestReversed(t *testing.T) {
	in := []float64{1, 2, 3}
	got := Reversed(in)
	RequireSliceNearlyEqual(t, got, []float64{3, 2, 1}, 0)
	if in[0] != 1 {
		t.Fatal("Reversed modified its input")
	}
}

func TestEdges(t *testing.T) {
	lo, hi := Edges([]float64{10, 12}, []float64{2, -2})
	RequireSliceNearlyEqual(t, lo, []float64{9, 11}, 0)
	RequireSliceNearlyEqual(t, hi, []float64{11, 13}, 0)
}

func TestNoiseSpectrum(t *testing.T) {
	a := NoiseSpectrum(7, 32)
	b := NoiseSpectrum(7, 32)
	RequireSliceNearlyEqual(t, a, b, 0)
	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("value %d = %v out of range", i, v)
		}
	}
}
