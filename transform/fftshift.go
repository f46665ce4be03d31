package transform

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// FFTShift resamples src at fractional positions i+shift by applying a
// linear phase ramp in the Fourier domain. shift is in channels and may be
// fractional or negative. The spectrum is zero-padded to a power of two at
// least twice its length, so channels shifted in from beyond the edges
// read zero rather than wrapping around.
func FFTShift(dst, src []float64, shift float64) error {
	n := len(src)
	if n == 0 {
		return ErrEmpty
	}

	if len(dst) != n {
		return fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), n)
	}

	if math.IsNaN(shift) || math.IsInf(shift, 0) {
		return fmt.Errorf("transform: fftshift: invalid shift %v", shift)
	}

	if shift == 0 {
		copy(dst, src)
		return nil
	}

	size := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return fmt.Errorf("transform: fftshift: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, size)
	for i, v := range src {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return fmt.Errorf("transform: fftshift: forward FFT: %w", err)
	}

	for k := range buf {
		f := k
		if k > size/2 {
			f = k - size
		}

		phase := 2 * math.Pi * float64(f) * shift / float64(size)
		if k == size/2 {
			// The Nyquist bin has no sign; keep the result real.
			buf[k] *= complex(math.Cos(phase), 0)
			continue
		}

		buf[k] *= cmplx.Exp(complex(0, phase))
	}

	if err := plan.Inverse(buf, buf); err != nil {
		return fmt.Errorf("transform: fftshift: inverse FFT: %w", err)
	}

	for i := range dst {
		dst[i] = real(buf[i])
	}

	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
