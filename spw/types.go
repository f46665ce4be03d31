package spw

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-spw/spw/frame"
)

// Window is the channel table of one spectral window.
type Window struct {
	ID          int
	Frequencies []float64 // channel centers in Hz
	Widths      []float64 // channel widths in Hz; negative values are accepted
	EffectiveBW []float64 // optional, defaults to |width|
	Resolution  []float64 // optional, defaults to |width|
	Frame       frame.Type
	// RestFrequency is the line rest frequency in Hz, if known.
	RestFrequency Value
}

// NumChannels returns the number of channels.
func (w Window) NumChannels() int { return len(w.Frequencies) }

// RefFrequency returns the frequency of channel 0.
func (w Window) RefFrequency() float64 {
	if len(w.Frequencies) == 0 {
		return 0
	}
	return w.Frequencies[0]
}

// TotalBandwidth is the span from the outer edge of the first channel to
// the outer edge of the last one.
func (w Window) TotalBandwidth() float64 {
	n := len(w.Frequencies)
	if n == 0 {
		return 0
	}
	return math.Abs(w.Frequencies[n-1]-w.Frequencies[0]) +
		math.Abs(w.Widths[n-1]/2) + math.Abs(w.Widths[0]/2)
}

// Orientation returns the ordering of the channel frequencies.
func (w Window) Orientation() Orientation { return orientationOf(w.Frequencies) }

func (w Window) clone() Window {
	c := w
	c.Frequencies = slices.Clone(w.Frequencies)
	c.Widths = slices.Clone(w.Widths)
	c.EffectiveBW = slices.Clone(w.EffectiveBW)
	c.Resolution = slices.Clone(w.Resolution)
	return c
}

// Contributor is one input channel contributing to a merged channel. Spw
// is the position of the input window in the slice given to CombineSpws.
type Contributor struct {
	Spw      int
	Channel  int
	Fraction float64
}

// Bound is the lower and upper edge of one output channel in Hz.
type Bound struct {
	Lo, Hi float64
}

// Center returns the midpoint of b.
func (b Bound) Center() float64 { return (b.Lo + b.Hi) / 2 }

// Width returns Hi - Lo.
func (b Bound) Width() float64 { return b.Hi - b.Lo }

// Orientation is the frequency ordering of a channel sequence.
type Orientation int

const (
	Ascending Orientation = iota
	Descending
	Mixed
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "mixed"
	}
}

// orientationOf classifies freqs. Sequences with fewer than two channels,
// and sequences of equal values, are ascending.
func orientationOf(freqs []float64) Orientation {
	n := len(freqs)
	if n < 2 || freqs[0] <= freqs[n-1] {
		for i := 1; i < n; i++ {
			if freqs[i] < freqs[i-1] {
				return Mixed
			}
		}
		return Ascending
	}

	for i := 1; i < n; i++ {
		if freqs[i] > freqs[i-1] {
			return Mixed
		}
	}
	return Descending
}

// normalize returns copies of freqs and |widths| in ascending order.
func normalize(o Orientation, freqs, widths []float64) ([]float64, []float64) {
	f := slices.Clone(freqs)
	w := make([]float64, len(widths))
	for i, v := range widths {
		w[i] = math.Abs(v)
	}

	if o == Descending {
		slices.Reverse(f)
		slices.Reverse(w)
	}
	return f, w
}

// denormalize restores the original orientation of a result computed on
// ascending data.
func denormalize[T any](o Orientation, s []T) []T {
	if o == Descending {
		slices.Reverse(s)
	}
	return s
}

// Value is an optional float64.
type Value struct {
	v  float64
	ok bool
}

// Unset is the empty Value.
var Unset = Value{}

// Some returns a set Value.
func Some(v float64) Value { return Value{v: v, ok: true} }

// Get returns the value and whether it is set.
func (o Value) Get() (float64, bool) { return o.v, o.ok }

// IsSet reports whether o holds a value.
func (o Value) IsSet() bool { return o.ok }

// Or returns the value if set and def otherwise.
func (o Value) Or(def float64) float64 {
	if o.ok {
		return o.v
	}
	return def
}

// positive returns the value if it is set and > 0.
func (o Value) positive() (float64, bool) {
	if o.ok && o.v > 0 {
		return o.v, true
	}
	return 0, false
}

// String formats the value or "unset".
func (o Value) String() string {
	if !o.ok {
		return "unset"
	}
	return formatFloat(o.v)
}
