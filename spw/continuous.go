package spw

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spw/spw/frame"
)

// maxRestFrequency bounds accepted rest frequencies in Hz.
const maxRestFrequency = 1e30

// contGrid holds the parameters of a grid that is equidistant in a
// continuous quantity, translated to Hz.
type contGrid struct {
	na nativeAxis
	f  []float64
	w  []float64

	lowerEdge, upperEdge float64

	center, bw, cw float64
	haveBW, haveCW bool

	centerGiven   bool
	centerIsStart bool
	startIsEnd    bool
	inputIsStart  bool
	nchan         int

	// step is the native channel width requested by the caller.
	step         float64
	haveStep     bool
	cwWasReduced bool

	// tail is the span beyond bw on the far side of an anchored fill.
	tail      float64
	tailAbove bool
}

func regridContinuous(f, w []float64, s RegridSpec, r *Report) ([]Bound, error) {
	const op = "regridChanBounds"

	rest := 0.0
	if s.Quantity.velocity() {
		v, ok := s.RestFrequency.Get()
		if !ok {
			return nil, newError(op, KindInvalidInput, ErrRestFrequency, r,
				fmt.Sprintf("Parameter \"restfreq\" needs to be set if regrid_quantity==%s. Cannot proceed with regridSpw ...", s.Quantity))
		}
		if v <= 0 || v > maxRestFrequency {
			return nil, newError(op, KindInvalidInput, ErrRestFrequency, r,
				fmt.Sprintf("Parameter \"restfreq\" value %s is invalid.", formatFloat(v)))
		}
		rest = v
	}

	n := len(f)
	g := &contGrid{
		na:            newNativeAxis(s.Quantity, rest),
		f:             f,
		w:             w,
		lowerEdge:     f[0] - w[0]/2,
		upperEdge:     f[n-1] + w[n-1]/2,
		centerIsStart: s.CenterIsStart,
		startIsEnd:    s.StartIsEnd,
		nchan:         s.NChan,
		inputIsStart:  s.CenterIsStart,
	}

	var err error
	if s.Quantity == QuantityFreq {
		g.fromFreq(s, r)
	} else {
		err = g.fromNative(s)
	}
	if err != nil {
		return nil, newError(op, KindInvalidInput, ErrInvalidSpec, r, err.Error())
	}

	g.clampCenter(r)
	g.resolveBandwidth(r)

	if err := g.resolveChanWidth(r); err != nil {
		return nil, err
	}

	plan := g.plan()
	ax := g.na.axis()

	g.centralNotes(r)

	out := ax.walk(plan, r)
	totalNotes(out, r)

	return out, nil
}

// sideSign is +1 when a start value marks the upper end in frequency.
func sideSign(startIsEnd bool) float64 {
	if startIsEnd {
		return 1
	}
	return -1
}

func (g *contGrid) fromFreq(s RegridSpec, r *Report) {
	n := len(g.f)

	if cw, ok := s.ChanWidth.positive(); ok {
		g.cw, g.haveCW = cw, true
	}
	if s.WidthChans > 0 {
		g.cw, g.haveCW = float64(s.WidthChans)*g.w[0], true
	}
	if g.haveCW {
		g.step, g.haveStep = g.cw, true
	}
	if b, ok := s.Bandwidth.positive(); ok {
		g.bw, g.haveBW = b, true
	}

	if s.StartChan >= 0 {
		fc := s.StartChan
		if fc >= n {
			r.warn(WarnStartOutOfRange, float64(fc),
				" *** Parameter start exceeds total number of channels which is %d. Set to 0.", n)
			fc = 0
			g.startIsEnd = false
		}

		g.center = g.f[fc] + sideSign(g.startIsEnd)*g.w[fc]/2
		g.centerGiven = true
		g.centerIsStart = true

		return
	}

	c, ok := s.Center.Get()
	if !ok {
		g.centerIsStart = false
		g.center = (g.lowerEdge + g.upperEdge) / 2

		return
	}

	g.centerGiven = true
	g.center = c
	if g.centerIsStart {
		probe := g.w[0]
		if g.haveCW {
			probe = g.cw
		}
		g.center += sideSign(g.startIsEnd) * probe / 2
	}
}

func (g *contGrid) fromNative(s RegridSpec) error {
	na := g.na
	f0, w0 := g.f[0], g.w[0]

	cwX, haveCWX := s.ChanWidth.positive()
	probe := cwX
	if !haveCWX {
		probe = math.Abs(na.toNative(f0-w0/2) - na.toNative(f0+w0/2))
	}
	if haveCWX {
		g.step, g.haveStep = cwX, true
	}

	var x float64
	if v, ok := s.Center.Get(); ok {
		if err := na.validate(v); err != nil {
			return err
		}

		g.centerGiven = true
		if g.centerIsStart {
			v += na.sign * sideSign(g.startIsEnd) * probe / 2
		}
		x = v
	} else {
		g.centerIsStart = false
		x = na.toNative((g.lowerEdge + g.upperEdge) / 2)
	}

	switch b, haveB := s.Bandwidth.positive(); {
	case g.nchan > 0 && na.linear:
		g.cw, g.haveCW = w0, true
		if haveCWX {
			g.cw = 2 * (na.toFreq(x+na.sign*cwX/2) - na.toFreq(x))
		}

	case g.nchan > 0:
		// Not linear in frequency: walk nchan probe widths in the native
		// quantity to find the far edge.
		div := 0.5
		if g.centerIsStart {
			div = 1
		}
		dir := -1.0
		if g.centerIsStart && !g.startIsEnd {
			dir = 1
		}

		end := na.toFreq(x + na.sign*dir*float64(g.nchan)*probe*div)
		g.bw, g.haveBW = math.Abs(end-na.toFreq(x))/div, true

		if g.centerIsStart {
			x -= na.sign * sideSign(g.startIsEnd) * float64(g.nchan) * probe / 2
			g.centerIsStart = false
		}

		g.nchan = 0
		g.step, g.haveStep = probe, true

	case haveB:
		if g.centerIsStart {
			x -= na.sign * sideSign(g.startIsEnd) * b / 2
			g.centerIsStart = false
		}

		g.bw, g.haveBW = 2*(na.toFreq(x+na.sign*b/2)-na.toFreq(x)), true
	}

	g.center = na.toFreq(x)
	if g.haveStep && !g.haveCW {
		g.cw, g.haveCW = 2*(na.toFreq(x+na.sign*g.step/2)-g.center), true
	}

	switch {
	case !finite(g.center) || g.center <= 0:
		return fmt.Errorf("center %s %s does not map to a positive frequency", formatFloat(x), na.unit)
	case g.haveBW && (!finite(g.bw) || g.bw <= 0):
		return fmt.Errorf("bandwidth %s %s does not fit around center %s %s",
			s.Bandwidth, na.unit, formatFloat(x), na.unit)
	case g.haveCW && (!finite(g.cw) || g.cw <= 0):
		return fmt.Errorf("channel width %s %s does not fit around center %s %s",
			formatFloat(probe), na.unit, formatFloat(x), na.unit)
	}

	return nil
}

// validate rejects native values without a corresponding frequency.
func (na nativeAxis) validate(v float64) error {
	switch na.q {
	case QuantityVOpt:
		if v <= -frame.C {
			return fmt.Errorf("optical velocity %s m/s is not above -c", formatFloat(v))
		}
	case QuantityWave:
		if v <= 0 {
			return fmt.Errorf("wavelength %s m is not positive", formatFloat(v))
		}
	}
	return nil
}

// clampCenter keeps a given center or start within the input span.
func (g *contGrid) clampCenter(r *Report) {
	if !g.centerGiven {
		return
	}

	switch {
	case g.center-g.upperEdge > 1:
		r.warn(WarnCenterClamped, g.upperEdge,
			"*** Requested center of SPW %s Hz is too large by %s Hz. Reset to maximum possible value %s Hz",
			formatFloat(g.center), formatFloat(g.center-g.upperEdge), formatFloat(g.upperEdge))
		g.center = g.upperEdge
	case g.lowerEdge-g.center > 1:
		r.warn(WarnCenterClamped, g.lowerEdge,
			"*** Requested center of SPW %s Hz is smaller than minimum possible value by %s Hz. Reset to minimum possible value %s Hz",
			formatFloat(g.center), formatFloat(g.lowerEdge-g.center), formatFloat(g.lowerEdge))
		g.center = g.lowerEdge
	case g.center > g.upperEdge:
		g.center = g.upperEdge
	case g.center < g.lowerEdge:
		g.center = g.lowerEdge
	}
}

// unitWidth is the width whole-channel fills are counted in.
func (g *contGrid) unitWidth() float64 {
	if g.haveCW {
		return g.cw
	}
	return g.w[0]
}

// floorChannels rounds bw down to whole channels of width u.
func floorChannels(bw, u float64) float64 {
	return u * math.Floor((bw+u*0.01)/u)
}

func (g *contGrid) resolveBandwidth(r *Report) {
	span := g.upperEdge - g.lowerEdge

	if !g.haveBW || g.nchan != 0 {
		g.bw = span

		if g.nchan != 0 {
			u := g.unitWidth()

			switch {
			case g.nchan > 0:
				g.bw = u * float64(g.nchan)
			case g.na.linear:
				g.bw = floorChannels(span, u)
			}

			switch {
			case !g.centerGiven:
				if g.nchan < 0 && g.na.linear {
					g.tail, g.tailAbove = span-g.bw, true
				}
				g.center = g.lowerEdge + g.bw/2
				g.centerIsStart = false

			case g.nchan < 0 && g.centerIsStart:
				if g.startIsEnd {
					g.bw = g.center - g.lowerEdge
				} else {
					g.bw = g.upperEdge - g.center
				}

				if g.na.linear {
					full := g.bw
					g.bw = floorChannels(full, u)
					g.tail, g.tailAbove = full-g.bw, !g.startIsEnd
				}

			case g.nchan < 0:
				g.bw = 2 * math.Min(g.center-g.lowerEdge, g.upperEdge-g.center)
			}
		}

		g.startToCenter()
		if g.nchan == 0 {
			g.clampBandwidth(r)
		}
	} else {
		g.startToCenter()
		g.clampBandwidth(r)
	}

	if !(g.bw > 0) {
		r.warn(WarnBandwidthClamped, span,
			" *** Requested output SPW has no extent. Using the full input span of %s Hz.", formatFloat(span))
		g.center = (g.lowerEdge + g.upperEdge) / 2
		g.bw = span
		g.tail = 0
	}
}

func (g *contGrid) startToCenter() {
	if !g.centerIsStart {
		return
	}

	g.center -= sideSign(g.startIsEnd) * g.bw / 2
	g.centerIsStart = false
}

func (g *contGrid) clampBandwidth(r *Report) {
	rangeTol := 1.0
	if !g.na.linear {
		rangeTol = g.w[0]
	}

	if g.center+g.bw/2-g.upperEdge > rangeTol {
		g.fitBandwidth()
		r.warn(WarnBandwidthClamped, g.bw,
			" *** Input spectral window exceeds upper end of original window. Adjusting to max. possible value.")
	}
	if g.center-g.bw/2-g.lowerEdge < -rangeTol {
		g.fitBandwidth()
		r.warn(WarnBandwidthClamped, g.bw,
			" *** Input spectral window exceeds lower end of original window. Adjusting to max. possible value.")
	}
}

// fitBandwidth shrinks bw symmetrically around center to the input span.
// A result narrower than one input channel falls back to the whole span.
func (g *contGrid) fitBandwidth() {
	g.bw = 2 * math.Min(math.Abs(g.upperEdge-g.center), math.Abs(g.center-g.lowerEdge))
	if g.bw < g.w[0] {
		g.center = (g.lowerEdge + g.upperEdge) / 2
		g.bw = g.upperEdge - g.lowerEdge
	}
}

func (g *contGrid) resolveChanWidth(r *Report) error {
	const op = "regridChanBounds"

	if !g.haveCW {
		if g.nchan != 0 || g.inputIsStart {
			g.cw = g.w[0]
		} else {
			g.cw = g.w[len(g.w)/2]
		}

		return nil
	}

	switch {
	case g.cw > g.bw:
		g.cw = g.bw
		g.cwWasReduced = true
		r.warn(WarnChanWidthClamped, g.bw,
			" *** Requested new channel width exceeds defined SPW width. Creating a single channel with the defined SPW width.")
	case g.cw < g.w[0]:
		ii := floats.MinIdx(g.w)
		smallest := g.w[ii]

		if g.cw < smallest-1 {
			msg := fmt.Sprintf(" *** Requested new channel width is smaller than smallest original channel width"+
				" which is %s Hz", formatFloat(smallest))
			if g.na.q.velocity() {
				vw := 2 * math.Abs(g.na.toNative(g.f[ii])-g.na.toNative(g.f[ii]+g.w[ii]/2))
				msg += fmt.Sprintf(" or %s m/s", formatFloat(vw))
			}

			return newError(op, KindInvalidInput, ErrChanWidthTooSmall, r, msg)
		}
	}

	return nil
}

// plan places the central channel and the walk bounds.
func (g *contGrid) plan() walkPlan {
	na := g.na

	loEnd := g.center - g.bw/2
	hiEnd := g.center + g.bw/2
	tol := 0.01 * g.cw

	if g.tail > tol {
		if g.tailAbove {
			hiEnd += g.tail
		} else {
			loEnd -= g.tail
		}
	}

	lo := g.center
	if int(math.Floor((g.bw+tol)/g.cw))%2 != 0 {
		lo = g.center - g.cw/2
	}

	step := math.Abs(na.toNative(lo+g.cw) - na.toNative(lo))
	if g.haveStep && !g.cwWasReduced {
		step = g.step
	}

	return walkPlan{
		start:  na.toNative(lo),
		step:   step,
		loEnd:  loEnd,
		hiEnd:  hiEnd,
		loEndX: na.toNative(loEnd),
		hiEndX: na.toNative(hiEnd),
		tol:    tol,
	}
}

func (g *contGrid) centralNotes(r *Report) {
	na := g.na

	r.note(" Channels equidistant in %s", na.q)

	centerNote := fmt.Sprintf(" Central frequency (in output frame) = %s Hz", formatFloat(g.center))
	widthNote := fmt.Sprintf(" Width of central channel (in output frame) = %s Hz", formatFloat(g.cw))

	switch na.q {
	case QuantityVRad, QuantityVOpt:
		kind := "radio"
		if na.q == QuantityVOpt {
			kind = "optical"
		}
		vw := math.Abs(na.toNative(g.center-g.cw/2) - na.toNative(g.center+g.cw/2))
		centerNote += fmt.Sprintf(" == %s m/s %s velocity", formatFloat(na.toNative(g.center)), kind)
		widthNote += fmt.Sprintf(" == %s m/s", formatFloat(vw))
	case QuantityWave:
		lw := math.Abs(na.toNative(g.center-g.cw/2) - na.toNative(g.center+g.cw/2))
		centerNote += fmt.Sprintf(" == %s m wavelength", formatFloat(na.toNative(g.center)))
		widthNote += fmt.Sprintf(" == %s m", formatFloat(lw))
	}

	r.note("%s", centerNote)
	r.note("%s", widthNote)
}
