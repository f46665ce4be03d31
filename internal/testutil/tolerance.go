package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or in
// any element by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i, g := range got {
		if d := math.Abs(g - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, g, want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireAscending fails t unless s is strictly increasing.
func RequireAscending(t *testing.T, s []float64) {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			t.Fatalf("index %d: %v not above %v", i, s[i], s[i-1])
		}
	}
}

// RequireContiguous fails t unless every pair satisfies hi > lo and each
// lower bound matches the previous upper bound within eps.
func RequireContiguous(t *testing.T, lo, hi []float64, eps float64) {
	t.Helper()
	if len(lo) != len(hi) {
		t.Fatalf("length mismatch: lo %d, hi %d", len(lo), len(hi))
	}
	for i := range lo {
		if !(hi[i] > lo[i]) {
			t.Fatalf("index %d: hi %v not above lo %v", i, hi[i], lo[i])
		}
		if i > 0 && math.Abs(lo[i]-hi[i-1]) > eps {
			t.Fatalf("index %d: lo %v does not continue hi %v", i, lo[i], hi[i-1])
		}
	}
}
