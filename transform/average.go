package transform

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// AveragedLen returns the number of channels left after binning n channels
// by bin. A trailing partial bin counts as one channel.
func AveragedLen(n, bin int) int {
	if bin < 1 {
		return 0
	}

	return (n + bin - 1) / bin
}

// AverageChannels bins consecutive channels. Each output center is the
// mean of its bin's centers and each output width the sum of its widths.
func AverageChannels(freqs, widths []float64, bin int) ([]float64, []float64, error) {
	if bin < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidBin, bin)
	}

	if len(freqs) != len(widths) {
		return nil, nil, fmt.Errorf("%w: freqs=%d widths=%d", ErrLengthMismatch, len(freqs), len(widths))
	}

	m := AveragedLen(len(freqs), bin)
	outF := make([]float64, m)
	outW := make([]float64, m)

	for j := range m {
		lo, hi := j*bin, min((j+1)*bin, len(freqs))
		outF[j] = floats.Sum(freqs[lo:hi]) / float64(hi-lo)
		outW[j] = floats.Sum(widths[lo:hi])
	}

	return outF, outW, nil
}

// AverageData averages src into dst over bins of bin channels, skipping
// flagged inputs. It returns the output flags: an output channel is flagged
// when every input in its bin is flagged. flags may be nil.
func AverageData(dst, src []float64, flags []bool, bin int) ([]bool, error) {
	if bin < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBin, bin)
	}

	m := AveragedLen(len(src), bin)
	if len(dst) != m {
		return nil, fmt.Errorf("%w: dst=%d want %d", ErrLengthMismatch, len(dst), m)
	}

	if flags != nil && len(flags) != len(src) {
		return nil, fmt.Errorf("%w: flags=%d src=%d", ErrLengthMismatch, len(flags), len(src))
	}

	mask := make([]float64, len(src))
	for i := range mask {
		if flags == nil || !flags[i] {
			mask[i] = 1
		}
	}

	masked := make([]float64, len(src))
	vecmath.MulBlock(masked, src, mask)

	out := make([]bool, m)

	for j := range m {
		lo, hi := j*bin, min((j+1)*bin, len(src))

		count := floats.Sum(mask[lo:hi])
		if count == 0 {
			dst[j] = 0
			out[j] = true

			continue
		}

		dst[j] = floats.Sum(masked[lo:hi]) / count
	}

	return out, nil
}
