package spw

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Combination is the result of CombineSpws.
type Combination struct {
	// Window is the merged channel table. Its ID is the ID of the first
	// window in processing order.
	Window Window
	// Channels lists, per merged channel, the input channels it is made of.
	Channels [][]Contributor
	// Order holds the selected window indices in processing order.
	Order []int
	// Combined is false when fewer than two windows were selected and
	// Window is the selected input unchanged.
	Combined bool
	Report   *Report
}

// AllWindows as the only id selects every window.
const AllWindows = -1

// channel is one row of the running merge.
type channel struct {
	freq, width, effBW, res float64
	from                    []Contributor
}

func (c channel) lo() float64 { return c.freq - c.width/2 }
func (c channel) hi() float64 { return c.freq + c.width/2 }

// CombineSpws merges the windows selected by ids into one channel table.
// ids index into windows; a single negative id selects all windows.
// Repeated ids select a window once. Contributor.Spw and Order refer to
// positions in windows, not to Window.ID.
//
// Windows are processed in order of their lowest channel frequency. Each
// window is merged into the running table: windows that do not overlap are
// appended or prepended, overlapping ones extend the outermost channels and
// add fractional contributors to the channels they cover. The merged table
// is ascending unless the first window in processing order is descending.
//
// All windows must share one reference frame. With no ids the call
// succeeds with a warning; with one id the selected window is returned
// unchanged.
func CombineSpws(windows []Window, ids []int, opts ...Option) (*Combination, error) {
	const op = "combine"

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	res, err := combineSpws(windows, ids, r)
	cfg.emit(op, r)

	return res, err
}

func combineSpws(windows []Window, ids []int, r *Report) (*Combination, error) {
	const op = "combine"

	if len(ids) == 0 {
		r.warn(WarnNoWindows, 0, "No SPWs selected for combination ...")
		return &Combination{Report: r}, nil
	}

	var sel []int
	if len(ids) == 1 && ids[0] < 0 {
		for i := range windows {
			sel = append(sel, i)
		}
	} else {
		for _, id := range ids {
			if id < 0 || id >= len(windows) {
				return nil, newError(op, KindInvalidInput, ErrInvalidSpw, r,
					fmt.Sprintf("Invalid SPW ID selected for combination %d (valid range is 0 - %d)", id, len(windows)-1))
			}
			sel = append(sel, id)
		}
	}

	slices.Sort(sel)
	sel = slices.Compact(sel)

	for _, id := range sel {
		if err := validateWindow(op, id, windows[id], r); err != nil {
			return nil, err
		}
	}

	if len(sel) <= 1 {
		r.note("Less than two SPWs selected. No combination necessary.")

		res := &Combination{Order: sel, Report: r}
		if len(sel) == 1 {
			w := windows[sel[0]]
			res.Window = w.clone()
			res.Channels = make([][]Contributor, w.NumChannels())
			for i := range res.Channels {
				res.Channels[i] = []Contributor{{Spw: sel[0], Channel: i, Fraction: 1}}
			}
		}

		return res, nil
	}

	// Processing order: by lowest channel frequency, ties keep id order.
	order := slices.Clone(sel)
	sort.SliceStable(order, func(a, b int) bool {
		return firstFrequency(windows[order[a]]) < firstFrequency(windows[order[b]])
	})

	negWarned := false
	prepare := func(id int) ([]channel, bool) {
		w := windows[id]
		chans, neg := channelsOf(id, w)
		if neg && !negWarned {
			r.warn(WarnNegativeWidths, float64(id), " *** Encountered negative channel widths in SPECTRAL_WINDOW table.")
			negWarned = true
		}
		desc := w.Orientation() == Descending
		if desc {
			slices.Reverse(chans)
		}
		r.note("   SPW %3d: %5d channels, first channel = %.9e Hz%s", id, len(chans),
			w.Frequencies[0], lastChannelNote(w))
		return chans, desc
	}

	r.note("Input SPWs sorted by first (lowest) channel frequency:")

	id0 := order[0]
	merged, outDesc := prepare(id0)
	frame0 := windows[id0].Frame

	for _, idi := range order[1:] {
		incoming, _ := prepare(idi)

		if windows[idi].Frame != frame0 {
			return nil, newError(op, KindInvalidInput, ErrFrameMismatch, r,
				fmt.Sprintf("SPW %d cannot be combined with SPW %d. Non-matching ref. frame.", idi, id0))
		}

		merged = mergeWindow(merged, incoming)
	}

	if outDesc {
		slices.Reverse(merged)
	}

	out := Window{
		ID:            windows[id0].ID,
		Frame:         frame0,
		RestFrequency: windows[id0].RestFrequency,
		Frequencies:   make([]float64, len(merged)),
		Widths:        make([]float64, len(merged)),
		EffectiveBW:   make([]float64, len(merged)),
		Resolution:    make([]float64, len(merged)),
	}
	contrib := make([][]Contributor, len(merged))

	for i, c := range merged {
		out.Frequencies[i] = c.freq
		out.Widths[i] = c.width
		out.EffectiveBW[i] = c.effBW
		out.Resolution[i] = c.res
		contrib[i] = c.from
	}

	return &Combination{Window: out, Channels: contrib, Order: order, Combined: true, Report: r}, nil
}

// mergeWindow merges the ascending channels of incoming into the ascending
// running table ref.
func mergeWindow(ref, incoming []channel) []channel {
	first, last := ref[0], ref[len(ref)-1]
	inFirst, inLast := incoming[0], incoming[len(incoming)-1]

	merged := make([]channel, 0, len(ref)+len(incoming))

	switch {
	case last.hi() < inFirst.lo():
		merged = append(merged, ref...)
		return append(merged, incoming...)
	case first.lo() > inLast.hi():
		merged = append(merged, incoming...)
		return append(merged, ref...)
	}

	refStart := 0

	// Incoming starts below the reference: copy what lies below it and
	// fold a partially overlapping channel into the first reference channel.
	if inFirst.lo() < last.lo() {
		k := 0
		for ; k < len(incoming); k++ {
			if first.lo() < incoming[k].hi() {
				break
			}
			merged = append(merged, incoming[k])
		}

		if k < len(incoming) && incoming[k].lo() < first.lo() {
			ck := incoming[k]
			width := first.hi() - ck.lo()
			from := append(slices.Clone(ck.from), first.from...)
			merged = append(merged, channel{
				freq:  ck.lo() + width/2,
				width: width,
				effBW: width,
				res:   width,
				from:  from,
			})
			refStart = 1
		}
	}

	// Reference channels collect fractional contributors from incoming.
	for _, cj := range ref[refStart:] {
		cj.from = slices.Clone(cj.from)
		for _, ck := range incoming {
			if frac := overlapFraction(cj, ck); frac > 0 {
				cj.from = append(cj.from, Contributor{
					Spw:      ck.from[0].Spw,
					Channel:  ck.from[0].Channel,
					Fraction: frac,
				})
			}
		}
		merged = append(merged, cj)
	}

	if last.hi() >= inLast.hi() {
		return merged
	}

	// Incoming continues above the reference.
	jm := len(merged) - 1
	top := merged[jm]

	k := len(incoming) - 1
	for ; k >= 0; k-- {
		if incoming[k].lo() <= top.hi() {
			break
		}
	}
	if k < 0 {
		k = 0
	}

	if ck := incoming[k]; ck.lo() < top.hi() && top.hi() < ck.hi() {
		frac := (top.hi() - ck.lo()) / ck.width

		if frac > 0.01 {
			width := ck.hi() - top.lo()
			top.freq = (top.lo() + ck.hi()) / 2
			top.width, top.effBW, top.res = width, width, width
			if n := len(top.from); n > 0 {
				top.from[n-1].Fraction = 1
			}
			merged[jm] = top
		} else {
			width := ck.hi() - top.hi()
			merged = append(merged, channel{
				freq:  (top.hi() + ck.hi()) / 2,
				width: width,
				effBW: width,
				res:   width,
				from:  ck.from,
			})
		}

		k++
	} else if ck.hi() <= top.hi() {
		// Already covered by the reference channels.
		k++
	}

	return append(merged, incoming[k:]...)
}

// overlapFraction returns the share of incoming channel k that falls into
// reference channel j.
func overlapFraction(j, k channel) float64 {
	lj, uj := j.lo(), j.hi()
	lk, uk := k.lo(), k.hi()

	switch {
	case lj <= lk && uk <= uj:
		return 1
	case lk <= lj && uj <= uk:
		return j.width / k.width
	case lj < lk && lk < uj && uj < uk:
		return (uj - lk) / k.width
	case lk < lj && lj < uk:
		return (uk - lj) / k.width
	default:
		return 0
	}
}

// channelsOf converts w into merge rows with 1:1 contributors. Channel
// numbers refer to w's own order.
func channelsOf(id int, w Window) ([]channel, bool) {
	n := w.NumChannels()
	out := make([]channel, n)
	neg := false

	for i := range out {
		width := w.Widths[i]
		if width < 0 {
			neg = true
			width = -width
		}

		c := channel{
			freq:  w.Frequencies[i],
			width: width,
			effBW: width,
			res:   width,
			from:  []Contributor{{Spw: id, Channel: i, Fraction: 1}},
		}
		if len(w.EffectiveBW) == n {
			c.effBW = w.EffectiveBW[i]
		}
		if len(w.Resolution) == n {
			c.res = w.Resolution[i]
		}
		out[i] = c
	}

	return out, neg
}

func firstFrequency(w Window) float64 {
	n := w.NumChannels()
	if w.Frequencies[0] <= w.Frequencies[n-1] {
		return w.Frequencies[0]
	}
	return w.Frequencies[n-1]
}

func lastChannelNote(w Window) string {
	n := w.NumChannels()
	if n < 2 {
		return ""
	}
	return fmt.Sprintf(", last channel = %.9e Hz", w.Frequencies[n-1])
}

func validateWindow(op string, id int, w Window, r *Report) error {
	n := w.NumChannels()
	if n == 0 {
		return newError(op, KindInvalidInput, ErrInvalidSpw, r, fmt.Sprintf("SPW %d has no channels", id))
	}

	if len(w.Widths) != n ||
		(len(w.EffectiveBW) != 0 && len(w.EffectiveBW) != n) ||
		(len(w.Resolution) != 0 && len(w.Resolution) != n) {
		return newError(op, KindInternal, ErrLengthMismatch, r,
			fmt.Sprintf("SPW %d: %d frequencies but %d widths", id, n, len(w.Widths)))
	}

	for _, v := range w.Frequencies {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newError(op, KindInvalidInput, ErrInvalidSpw, r, fmt.Sprintf("SPW %d has non-finite frequencies", id))
		}
	}

	return nil
}
