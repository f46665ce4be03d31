package transform

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// positionTol bounds how far an output center may sit outside the input
// range, in input channels, before it is flagged.
const positionTol = 1e-6

// Regridder maps channel values sampled at one set of channel centers onto
// another. Positions are precomputed once, so a Regridder can be applied to
// many spectra (correlations, rows) sharing the same grids.
type Regridder struct {
	method Method
	nIn    int

	// asc holds the input centers in ascending order; rev is set when the
	// caller's order was descending.
	asc []float64
	rev bool

	query   []float64 // output centers clamped to the input range
	pos     []float64 // fractional input index, caller's order
	outside []bool

	shift float64 // fftshift only
}

// NewRegridder prepares interpolation from inFreq to outFreq. inFreq must
// be strictly ascending or strictly descending; outFreq may be in any order.
func NewRegridder(inFreq, outFreq []float64, method Method) (*Regridder, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMethod, method)
	}

	n := len(inFreq)
	if n == 0 {
		return nil, ErrEmpty
	}

	if !finite(inFreq) || !finite(outFreq) {
		return nil, ErrNotFinite
	}

	asc, rev, err := ascending(inFreq)
	if err != nil {
		return nil, err
	}

	r := &Regridder{
		method:  method,
		nIn:     n,
		asc:     asc,
		rev:     rev,
		query:   make([]float64, len(outFreq)),
		pos:     make([]float64, len(outFreq)),
		outside: make([]bool, len(outFreq)),
	}

	if method == MethodFFTShift {
		if err := r.prepareShift(inFreq, outFreq); err != nil {
			return nil, err
		}

		return r, nil
	}

	tol := positionTol * math.Max(math.Abs(asc[0]), math.Abs(asc[n-1]))
	if n > 1 {
		tol = positionTol * (asc[n-1] - asc[0]) / float64(n-1)
	}

	for j, q := range outFreq {
		r.outside[j] = q < asc[0]-tol || q > asc[n-1]+tol
		r.query[j] = math.Min(math.Max(q, asc[0]), asc[n-1])
		r.pos[j] = r.position(r.query[j])
	}

	return r, nil
}

func finite(f []float64) bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

func ascending(f []float64) ([]float64, bool, error) {
	n := len(f)
	if n == 1 {
		return []float64{f[0]}, false, nil
	}

	rev := f[1] < f[0]
	asc := make([]float64, n)

	for i := range f {
		if rev {
			asc[i] = f[n-1-i]
		} else {
			asc[i] = f[i]
		}

		if i > 0 && !(asc[i] > asc[i-1]) {
			return nil, false, fmt.Errorf("%w at index %d", ErrNotMonotonic, i)
		}
	}

	return asc, rev, nil
}

// position returns the fractional input index of q in the caller's order.
func (r *Regridder) position(q float64) float64 {
	n := len(r.asc)

	var p float64

	switch {
	case q <= r.asc[0]:
		p = 0
	case q >= r.asc[n-1]:
		p = float64(n - 1)
	default:
		k := sort.SearchFloat64s(r.asc, q)
		p = float64(k-1) + (q-r.asc[k-1])/(r.asc[k]-r.asc[k-1])
	}

	if r.rev {
		p = float64(n-1) - p
	}

	return p
}

func (r *Regridder) prepareShift(inFreq, outFreq []float64) error {
	n := len(inFreq)
	if n < 2 || len(outFreq) != n {
		return ErrShiftGrid
	}

	step := inFreq[1] - inFreq[0]
	for i, f := range inFreq {
		if math.Abs((f-inFreq[0])/step-float64(i)) > positionTol {
			return ErrShiftGrid
		}
	}

	r.shift = (outFreq[0] - inFreq[0]) / step
	for j, q := range outFreq {
		p := (q - inFreq[0]) / step
		if math.Abs(p-float64(j)-r.shift) > positionTol {
			return ErrShiftGrid
		}

		r.pos[j] = p
		r.outside[j] = p < -positionTol || p > float64(n-1)+positionTol
	}

	return nil
}

// Method returns the interpolation method.
func (r *Regridder) Method() Method { return r.method }

// Len returns the number of output channels.
func (r *Regridder) Len() int { return len(r.pos) }

// Outside reports whether output channel j lies outside the input range.
func (r *Regridder) Outside(j int) bool { return r.outside[j] }

// Apply interpolates src (one value per input channel) into dst (one value
// per output channel). Output channels outside the input range receive the
// nearest edge value, or zero for fftshift, and are flagged by ApplyFlags.
func (r *Regridder) Apply(dst, src []float64) error {
	if len(src) != r.nIn || len(dst) != len(r.pos) {
		return fmt.Errorf("%w: src=%d want %d, dst=%d want %d",
			ErrLengthMismatch, len(src), r.nIn, len(dst), len(r.pos))
	}

	switch r.method {
	case MethodNearest:
		for j, p := range r.pos {
			dst[j] = src[int(math.Round(p))]
		}
	case MethodLinear:
		for j, p := range r.pos {
			dst[j] = linearAt(src, p)
		}
	case MethodCubic:
		for j, p := range r.pos {
			dst[j] = cubicAt(src, p)
		}
	case MethodSpline:
		return r.applySpline(dst, src)
	case MethodFFTShift:
		return FFTShift(dst, src, r.shift)
	}

	return nil
}

func linearAt(src []float64, p float64) float64 {
	i := int(math.Floor(p))
	if i >= len(src)-1 {
		return src[len(src)-1]
	}

	t := p - float64(i)

	return src[i] + t*(src[i+1]-src[i])
}

func cubicAt(src []float64, p float64) float64 {
	n := len(src)
	i := int(math.Floor(p))

	if i >= n-1 {
		return src[n-1]
	}

	if n < 4 {
		return linearAt(src, p)
	}

	at := func(k int) float64 {
		return src[min(max(k, 0), n-1)]
	}

	return hermite4(p-float64(i), at(i-1), at(i), at(i+1), at(i+2))
}

// hermite4 is the 4-point cubic Hermite kernel interpolating from x0 to x1.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}

func (r *Regridder) applySpline(dst, src []float64) error {
	n := len(src)
	if n < 3 {
		for j, p := range r.pos {
			dst[j] = linearAt(src, p)
		}

		return nil
	}

	ys := src
	if r.rev {
		ys = make([]float64, n)
		for i, v := range src {
			ys[n-1-i] = v
		}
	}

	var nc interp.NaturalCubic
	if err := nc.Fit(r.asc, ys); err != nil {
		return fmt.Errorf("transform: spline fit: %w", err)
	}

	for j, q := range r.query {
		dst[j] = nc.Predict(q)
	}

	return nil
}

// ApplyFlags computes output flags. An output channel is flagged when it lies
// outside the input range or when an input channel it is interpolated from is
// flagged in src. src may be nil.
func (r *Regridder) ApplyFlags(dst, src []bool) error {
	if len(dst) != len(r.pos) || (src != nil && len(src) != r.nIn) {
		return fmt.Errorf("%w: flags src=%d want %d, dst=%d want %d",
			ErrLengthMismatch, len(src), r.nIn, len(dst), len(r.pos))
	}

	for j, p := range r.pos {
		dst[j] = r.outside[j]
		if dst[j] || src == nil {
			continue
		}

		lo, hi := r.support(p)
		for k := lo; k <= hi; k++ {
			if src[k] {
				dst[j] = true
				break
			}
		}
	}

	return nil
}

// support returns the input index range an output at position p reads.
func (r *Regridder) support(p float64) (int, int) {
	last := r.nIn - 1
	clamp := func(k int) int { return min(max(k, 0), last) }

	if r.method == MethodNearest {
		k := clamp(int(math.Round(p)))
		return k, k
	}

	lo := int(math.Floor(p + positionTol))
	hi := int(math.Ceil(p - positionTol))

	if r.method == MethodCubic && hi > lo {
		lo, hi = lo-1, hi+1
	}

	return clamp(lo), clamp(hi)
}
