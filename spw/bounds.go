package spw

import (
	"fmt"
	"math"
	"sort"
)

// Grid is the result of RegridChanBounds.
type Grid struct {
	// Channels holds the output channel edges in the orientation of the input.
	Channels []Bound
	Report   *Report
}

// Frequencies returns the channel centers of g.
func (g *Grid) Frequencies() []float64 {
	out := make([]float64, len(g.Channels))
	for i, b := range g.Channels {
		out[i] = b.Center()
	}
	return out
}

// Widths returns the channel widths of g.
func (g *Grid) Widths() []float64 {
	out := make([]float64, len(g.Channels))
	for i, b := range g.Channels {
		out[i] = b.Width()
	}
	return out
}

// RegridChanBounds computes the channel edges of a new grid over the input
// channels freqs and widths (Hz, ascending or descending, one reference
// frame) according to spec.
//
// The new grid is equidistant in spec.Quantity. It is built outward from a
// central channel; an outermost channel that does not fit the requested
// bandwidth is narrowed and reported with WarnEdgeChannelNarrowed.
// Requested parameters exceeding the input are clamped with a warning.
// Descending input gives descending output.
func RegridChanBounds(freqs, widths []float64, spec RegridSpec, opts ...Option) (*Grid, error) {
	const op = "regridChanBounds"

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	out, err := regridChanBounds(freqs, widths, spec, r)
	cfg.emit(op, r)

	if err != nil {
		return nil, err
	}

	return &Grid{Channels: out, Report: r}, nil
}

func regridChanBounds(freqs, widths []float64, spec RegridSpec, r *Report) ([]Bound, error) {
	const op = "regridChanBounds"

	n := len(freqs)
	if n != len(widths) {
		return nil, newError(op, KindInternal, ErrLengthMismatch, r,
			fmt.Sprintf("%d channel frequencies but %d widths", n, len(widths)))
	}
	if n == 0 {
		return nil, newError(op, KindInvalidInput, ErrInvalidSpec, r, "Input SPW has no channels.")
	}

	if !spec.Quantity.Valid() {
		return nil, newError(op, KindInvalidInput, ErrUnknownQuantity, r,
			fmt.Sprintf("Invalid value %v for parameter \"mode\".", spec.Quantity))
	}

	o := orientationOf(freqs)
	if o == Mixed {
		return nil, newError(op, KindInvalidInput, ErrMixedOrder, r,
			"Channel frequencies are neither in ascending nor in descending order. Cannot process.")
	}

	f, w := normalize(o, freqs, widths)
	for i := range n {
		if !finite(f[i]) || !finite(w[i]) || w[i] == 0 {
			return nil, newError(op, KindInvalidInput, ErrInvalidSpec, r,
				fmt.Sprintf("Input channel %d has frequency %s Hz and width %s Hz.", i,
					formatFloat(freqs[i]), formatFloat(widths[i])))
		}
	}

	if o == Descending {
		r.note(" Channel central frequency is decreasing with increasing channel number.")

		if spec.StartChan >= 0 {
			spec.StartChan = n - 1 - spec.StartChan
			if spec.CenterIsStart {
				spec.StartIsEnd = !spec.StartIsEnd
			}
		}
	}

	var (
		out []Bound
		err error
	)
	if spec.Quantity == QuantityChan {
		out, err = regridChannels(f, w, spec, r)
	} else {
		out, err = regridContinuous(f, w, spec, r)
	}
	if err != nil {
		return nil, err
	}

	return denormalize(o, out), nil
}

// regridChannels bins whole input channels. Center, Bandwidth and
// ChanWidth count input channels.
func regridChannels(f, w []float64, s RegridSpec, r *Report) ([]Bound, error) {
	const op = "regridChanBounds"

	n := len(f)
	centerIsStart := s.CenterIsStart

	var center int
	if c, ok := s.Center.Get(); !ok {
		center = sort.SearchFloat64s(f, (f[0]+f[n-1])/2)
		centerIsStart = false
	} else if c >= 0 && c < float64(n) {
		center = int(math.Floor(c))
	} else {
		what := "center"
		if centerIsStart {
			what = "start"
		}

		return nil, newError(op, KindInvalidInput, ErrOutOfRange, r,
			fmt.Sprintf("SPW %s %s outside valid range which is 0 - %d.", what, formatFloat(c), n-1))
	}

	bw := n
	if s.NChan > 0 {
		bw = s.NChan
	} else if b, ok := s.Bandwidth.positive(); ok {
		bw = max(int(math.Floor(b)), 1)
	}

	if centerIsStart {
		if s.StartIsEnd {
			center -= bw / 2
		} else {
			center += bw / 2
		}

		if center < 0 || center >= n {
			c := min(max(center, 0), n-1)
			r.warn(WarnCenterShifted, float64(c),
				" *** Center of new SPW shifted from original channel %d to %d.", center, c)
			center = c
		}
	}

	bw = clampChannels(center, bw, n, r)

	wc := 1
	if cw, ok := s.ChanWidth.Get(); ok && cw >= 1 {
		if cw > float64(bw) {
			wc = bw
			r.warn(WarnChanWidthClamped, float64(bw),
				" *** Requested output channel width too large. Adjusted to maximum possible value.")
		} else {
			wc = int(math.Floor(cw))
			if s.NChan > 0 {
				bw, center = fitChannels(center, s.NChan*wc, n, r)
			}
		}
	}

	if b, ok := s.Bandwidth.positive(); ok && bw != int(math.Floor(b)) {
		r.warn(WarnBandwidthAdjusted, float64(bw), " *** Output SPW width set to %d original channels", bw)
	}

	lower := center - bw/2
	upper := lower + bw - 1

	start := center
	if (bw/wc)%2 != 0 {
		start = center - wc/2
	}

	ax := channelAxis(f, w)
	plan := walkPlan{
		start:  float64(start),
		step:   float64(wc),
		loEnd:  ax.lower(float64(lower)),
		hiEnd:  ax.upper(float64(upper + 1)),
		loEndX: float64(lower),
		hiEndX: float64(upper + 1),
	}

	r.note(" New channels defined based on original channels")
	r.note(" Central channel contains original channel %d", center)
	r.note(" Channel width = %d original channels", wc)

	out := ax.walk(plan, r)

	r.note(" Total width of SPW = %d original channels == %d new channels", bw, len(out))
	totalNotes(out, r)

	return out, nil
}

// clampChannels shrinks bw until [center-bw/2, center-bw/2+bw-1] lies
// within [0, n-1].
func clampChannels(center, bw, n int, r *Report) int {
	clamped := false

	if center-bw/2 < 0 {
		bw = 2*center + 1
		clamped = true
	}
	if lower := center - bw/2; lower+bw-1 > n-1 {
		bw = 2 * (n - center)
		clamped = true
	}

	if clamped {
		r.warn(WarnBandwidthClamped, float64(bw),
			" *** Requested output SPW width too large. Reduced to %d original channels.", bw)
	}

	return bw
}

// fitChannels places bw channels around center, moving the center inward
// when the range fits the input but spills over an edge.
func fitChannels(center, bw, n int, r *Report) (int, int) {
	if bw > n {
		return clampChannels(center, bw, n, r), center
	}

	lower := center - bw/2
	upper := lower + bw - 1

	shifted := center
	switch {
	case lower < 0:
		shifted -= lower
	case upper > n-1:
		shifted -= upper - (n - 1)
	}

	if shifted != center {
		r.warn(WarnCenterShifted, float64(shifted),
			" *** Center of new SPW shifted from original channel %d to %d to fit %d channels.", center, shifted, bw)
	}

	return bw, shifted
}

func totalNotes(out []Bound, r *Report) {
	if len(out) == 0 {
		return
	}

	lo, hi := out[0].Lo, out[len(out)-1].Hi
	r.note(" Number of channels = %d", len(out))
	r.note(" Total width of SPW (in output frame) = %s Hz", formatFloat(hi-lo))
	r.note(" Lower edge = %s Hz, upper edge = %s Hz", formatFloat(lo), formatFloat(hi))
}
