package transform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// hanningKernel is the three-tap Hanning smoothing kernel.
var hanningKernel = []float64{0.25, 0.5, 0.25}

// Hanning smooths src into dst with the kernel [0.25 0.5 0.25]. Use
// SmoothFlags with width 3 for the matching output flags.
func Hanning(dst, src []float64) error {
	return Smooth(dst, src, hanningKernel)
}

// HanningFlags propagates flags through Hanning smoothing. The first and
// last output channels are always flagged.
func HanningFlags(dst, src []bool) error {
	return SmoothFlags(dst, src, len(hanningKernel))
}

// Smooth convolves src with a centered, odd-length kernel. Near the edges
// the kernel is truncated and renormalized to its remaining weight.
func Smooth(dst, src, kernel []float64) error {
	if err := validateKernel(kernel); err != nil {
		return err
	}

	n := len(src)
	if len(dst) != n {
		return fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), n)
	}

	if n == 0 {
		return nil
	}

	half := len(kernel) / 2
	acc := make([]float64, n)
	weight := make([]float64, n)
	tmp := make([]float64, n)

	for k, c := range kernel {
		off := k - half

		// Output i reads input i+off.
		lo := max(0, -off)
		hi := min(n, n-off)

		if lo >= hi {
			continue
		}

		vecmath.ScaleBlock(tmp[lo:hi], src[lo+off:hi+off], c)
		vecmath.AddBlockInPlace(acc[lo:hi], tmp[lo:hi])

		for i := lo; i < hi; i++ {
			weight[i] += c
		}
	}

	for i := range dst {
		if weight[i] == 0 {
			dst[i] = 0
			continue
		}

		dst[i] = acc[i] / weight[i]
	}

	return nil
}

// SmoothFlags flags every output channel of a smoothing kernel of the given
// width whose support contains a flagged input or reaches past an edge.
// src may be nil.
func SmoothFlags(dst, src []bool, width int) error {
	if width < 1 || width%2 == 0 {
		return fmt.Errorf("%w: width %d must be odd and positive", ErrInvalidKernel, width)
	}

	n := len(dst)
	if src != nil && len(src) != n {
		return fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, n, len(src))
	}

	half := width / 2

	for i := range dst {
		dst[i] = i < half || i >= n-half
		if dst[i] || src == nil {
			continue
		}

		for k := i - half; k <= i+half; k++ {
			if src[k] {
				dst[i] = true
				break
			}
		}
	}

	return nil
}

func validateKernel(kernel []float64) error {
	if len(kernel) == 0 || len(kernel)%2 == 0 {
		return fmt.Errorf("%w: length %d must be odd", ErrInvalidKernel, len(kernel))
	}

	var sum float64

	for _, c := range kernel {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return fmt.Errorf("%w: tap %v", ErrInvalidKernel, c)
		}

		sum += c
	}

	if sum == 0 {
		return fmt.Errorf("%w: zero sum", ErrInvalidKernel)
	}

	return nil
}

// BoxcarKernel returns a normalized boxcar of odd width channels.
func BoxcarKernel(width int) ([]float64, error) {
	if width < 1 || width%2 == 0 {
		return nil, fmt.Errorf("%w: boxcar width %d must be odd and positive", ErrInvalidKernel, width)
	}

	k := make([]float64, width)
	for i := range k {
		k[i] = 1 / float64(width)
	}

	return k, nil
}

// GaussianKernel returns a normalized Gaussian with the given full width at
// half maximum in channels. The kernel extends one FWHM to each side.
func GaussianKernel(fwhm float64) ([]float64, error) {
	if !(fwhm > 0) || math.IsInf(fwhm, 0) {
		return nil, fmt.Errorf("%w: gaussian fwhm %v must be > 0", ErrInvalidKernel, fwhm)
	}

	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	half := int(math.Ceil(fwhm))
	k := make([]float64, 2*half+1)

	var sum float64

	for i := range k {
		x := float64(i-half) / sigma
		k[i] = mathExp(-0.5 * x * x)
		sum += k[i]
	}

	vecmath.ScaleBlockInPlace(k, 1/sum)

	return k, nil
}
