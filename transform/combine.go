package transform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spw/spw"
)

// coverageTol is how far below one the unflagged contributor fractions of
// a combined channel may sum before the channel is flagged.
const coverageTol = 1e-9

// Combine fills the channels of a window produced by spw.CombineSpws. Each
// output channel is the fraction-weighted mean of its unflagged
// contributors. data and flags are keyed by Contributor.Spw. An output
// channel whose unflagged fractions sum to less than one is flagged and set
// to zero. flags may be nil, as may any of its entries.
func Combine(channels [][]spw.Contributor, data map[int][]float64, flags map[int][]bool) ([]float64, []bool, error) {
	out := make([]float64, len(channels))
	outFlags := make([]bool, len(channels))

	for j, contribs := range channels {
		var sum, weight float64

		for _, c := range contribs {
			values, ok := data[c.Spw]
			if !ok {
				return nil, nil, fmt.Errorf("%w: spw %d", ErrMissingData, c.Spw)
			}

			if c.Channel < 0 || c.Channel >= len(values) {
				return nil, nil, fmt.Errorf("%w: spw %d channel %d of %d",
					ErrLengthMismatch, c.Spw, c.Channel, len(values))
			}

			if f := flags[c.Spw]; c.Channel < len(f) && f[c.Channel] {
				continue
			}

			sum += c.Fraction * values[c.Channel]
			weight += c.Fraction
		}

		if weight < 1-coverageTol || math.IsNaN(sum) {
			outFlags[j] = true
			continue
		}

		out[j] = sum / weight
	}

	return out, outFlags, nil
}
