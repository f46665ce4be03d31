package spw

import (
	"fmt"
	"math"
)

// axis maps native grid coordinates to channel edges in Hz. lower and
// upper give the frequency of a coordinate used as the lower or upper edge
// of an output channel; they differ only on channel axes whose input
// channels are not contiguous. sign is +1 when the native coordinate grows
// with frequency.
type axis struct {
	lower, upper func(x float64) float64
	sign         float64
	format       func(width float64) string
}

// walkPlan describes one outward walk. start is the native coordinate of
// the lower edge of the central channel. loEnd and hiEnd bound the output
// in Hz; loEndX and hiEndX are the same edges in native coordinates.
type walkPlan struct {
	start, step    float64
	loEnd, hiEnd   float64
	loEndX, hiEndX float64
	tol            float64
}

// walk emits channels of native width step upward and downward from the
// central channel until the bounds are reached. A final boundary within
// tol of an end snaps onto it; a remaining gap wider than tol becomes one
// narrower edge channel.
func (ax axis) walk(p walkPlan, r *Report) []Bound {
	up := ax.walkUp(p, r)
	down := ax.walkDown(p, r)

	out := make([]Bound, 0, len(up)+len(down))
	for i := len(down) - 1; i >= 0; i-- {
		out = append(out, down[i])
	}
	return append(out, up...)
}

func (ax axis) walkUp(p walkPlan, r *Report) []Bound {
	var out []Bound

	x := p.start
	if (p.hiEndX-x)*ax.sign <= 0 {
		return nil
	}

	lo := ax.lower(x)
	for {
		xn := x + ax.sign*p.step
		hi := ax.upper(xn)

		if !finite(hi) || hi <= lo || hi > p.hiEnd+p.tol {
			if p.hiEnd-lo > p.tol {
				out = append(out, Bound{Lo: lo, Hi: p.hiEnd})
				r.warn(WarnEdgeChannelNarrowed, p.hiEnd-lo,
					" *** Last channel at upper edge of new SPW made only %s wide to fit given total bandwidth.",
					ax.format(math.Abs(p.hiEndX-x)))
			}
			return out
		}

		if p.hiEnd-hi <= p.tol {
			return append(out, Bound{Lo: lo, Hi: p.hiEnd})
		}

		out = append(out, Bound{Lo: lo, Hi: hi})
		x = xn
		lo = ax.lower(x)
	}
}

func (ax axis) walkDown(p walkPlan, r *Report) []Bound {
	var out []Bound

	x := p.start
	if (x-p.loEndX)*ax.sign <= 0 {
		return nil
	}

	hi := ax.upper(x)
	for {
		xn := x - ax.sign*p.step
		lo := ax.lower(xn)

		if !finite(lo) || lo >= hi || lo < p.loEnd-p.tol {
			if hi-p.loEnd > p.tol {
				out = append(out, Bound{Lo: p.loEnd, Hi: hi})
				r.warn(WarnEdgeChannelNarrowed, hi-p.loEnd,
					" *** First channel at lower edge of new SPW made only %s wide to fit given total bandwidth.",
					ax.format(math.Abs(x-p.loEndX)))
			}
			return out
		}

		if lo-p.loEnd <= p.tol {
			return append(out, Bound{Lo: p.loEnd, Hi: hi})
		}

		out = append(out, Bound{Lo: lo, Hi: hi})
		x = xn
		hi = ax.upper(x)
	}
}

// channelAxis uses input channel edge indices as native coordinates:
// coordinate k is the lower edge of channel k and the upper edge of
// channel k-1.
func channelAxis(f, w []float64) axis {
	n := len(f)
	return axis{
		lower: func(x float64) float64 {
			k := int(math.Round(x))
			switch {
			case k < 0:
				return math.Inf(-1)
			case k >= n:
				return math.Inf(1)
			}
			return f[k] - w[k]/2
		},
		upper: func(x float64) float64 {
			k := int(math.Round(x))
			switch {
			case k < 1:
				return math.Inf(-1)
			case k > n:
				return math.Inf(1)
			}
			return f[k-1] + w[k-1]/2
		},
		sign: 1,
		format: func(width float64) string {
			return fmt.Sprintf("%d original channels", int(math.Round(width)))
		},
	}
}

// nativeAxis is the continuous axis of a quantity other than chan.
type nativeAxis struct {
	q        Quantity
	toNative func(hz float64) float64
	toFreq   func(x float64) float64
	sign     float64
	unit     string
	// linear reports whether equal native steps are equal in frequency.
	linear bool
}

func newNativeAxis(q Quantity, rest float64) nativeAxis {
	switch q {
	case QuantityVRad:
		return nativeAxis{
			q:        q,
			toNative: func(f float64) float64 { return RadioVelocity(f, rest) },
			toFreq:   func(v float64) float64 { return FreqFromRadio(v, rest) },
			sign:     -1,
			unit:     "m/s",
			linear:   true,
		}
	case QuantityVOpt:
		return nativeAxis{
			q:        q,
			toNative: func(f float64) float64 { return OpticalVelocity(f, rest) },
			toFreq:   func(v float64) float64 { return FreqFromOptical(v, rest) },
			sign:     -1,
			unit:     "m/s",
		}
	case QuantityWave:
		return nativeAxis{
			q:        q,
			toNative: Wavelength,
			toFreq:   FreqFromWavelength,
			sign:     -1,
			unit:     "m",
		}
	default:
		ident := func(v float64) float64 { return v }
		return nativeAxis{q: QuantityFreq, toNative: ident, toFreq: ident, sign: 1, unit: "Hz", linear: true}
	}
}

func (na nativeAxis) axis() axis {
	return axis{
		lower: na.toFreq,
		upper: na.toFreq,
		sign:  na.sign,
		format: func(width float64) string {
			return formatFloat(width) + " " + na.unit
		},
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
