package spw

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/cwbudde/algo-spw/spw/frame"
)

// minRadialVelocity is the smallest radial velocity in m/s that is applied
// when regridding into the SOURCE frame.
const minRadialVelocity = 1e-6

// ChanInput is an input channel table together with its reference frame.
type ChanInput struct {
	Frequencies []float64
	Widths      []float64
	Frame       frame.Type
	Context     frame.Context
	// RadialVelocity of the source in m/s, removed when the output frame
	// is SOURCE.
	RadialVelocity float64
}

// ChanFreqs is the output grid of CalcChanFreqs.
type ChanFreqs struct {
	Frequencies []float64
	Widths      []float64
	Bounds      []Bound
	// Frame is the reference frame of the output grid.
	Frame frame.Type
	// InputFrequencies are the input channel centers converted to Frame,
	// the abscissa for interpolating input data onto the new channels.
	InputFrequencies []float64
	// WeightScale is the width of the first new channel divided by the
	// width of the first input channel after frame conversion.
	WeightScale float64
	Params      *GridParams
	Report      *Report
}

// CalcChanFreqs converts the channel table in into the output frame of req
// and computes the regridded channels there.
//
// An empty OutFrame keeps the input frame. SOURCE converts to GEO and
// removes in.RadialVelocity. Any conversion goes through conv, which may
// be nil only if no conversion is needed. Channel widths are converted by
// converting both channel edges. Negative input widths are used by their
// magnitude and reported once.
func CalcChanFreqs(in ChanInput, req Request, conv frame.Converter, opts ...Option) (*ChanFreqs, error) {
	const op = "calcChanFreqs"

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	res, err := calcChanFreqs(in, req, conv, r)
	cfg.emit(op, r)

	return res, err
}

func calcChanFreqs(in ChanInput, req Request, conv frame.Converter, r *Report) (*ChanFreqs, error) {
	const op = "calcChanFreqs"

	params, err := convertGridPars(req, r)
	if err != nil {
		return nil, err
	}

	out, source, err := outputFrame(in.Frame, req.OutFrame)
	if err != nil {
		return nil, newError(op, KindInvalidInput, ErrInvalidFrame, r,
			fmt.Sprintf("Parameter \"outframe\" value %s is invalid.", req.OutFrame))
	}

	res := &ChanFreqs{Frame: out, Params: params, Report: r}

	n := len(in.Frequencies)
	if n == 0 {
		return res, nil
	}
	if n != len(in.Widths) {
		return nil, newError(op, KindInternal, ErrLengthMismatch, r,
			"Internal error: inconsistent dimensions of input channel frequency and width arrays.")
	}

	widths := make([]float64, n)
	neg := false
	for i, v := range in.Widths {
		if v < 0 {
			neg = true
		}
		widths[i] = math.Abs(v)
	}
	if neg {
		r.warn(WarnNegativeWidths, 0, " *** Encountered negative channel widths in input spectral window.")
	}

	transF, transW, err := convertChannels(in, widths, out, source, conv, r)
	if err != nil {
		return nil, err
	}

	bounds, err := regridChanBounds(transF, transW, params.Spec, r)
	if err != nil {
		return nil, err
	}

	res.InputFrequencies = transF
	res.Bounds = bounds
	res.Frequencies = make([]float64, len(bounds))
	res.Widths = make([]float64, len(bounds))
	for i, b := range bounds {
		res.Frequencies[i] = b.Center()
		res.Widths[i] = b.Width()
	}

	if len(bounds) > 0 {
		res.WeightScale = res.Widths[0] / transW[0]
	}

	return res, nil
}

// outputFrame resolves the outframe parameter against the input frame.
func outputFrame(in frame.Type, name string) (frame.Type, bool, error) {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return in, false, nil
	case strings.EqualFold(name, frame.Source):
		return frame.TypeGEO, true, nil
	}

	t, err := frame.Parse(name)
	if err != nil {
		return 0, false, err
	}
	return t, false, nil
}

func convertChannels(in ChanInput, widths []float64, out frame.Type, source bool,
	conv frame.Converter, r *Report,
) ([]float64, []float64, error) {
	const op = "calcChanFreqs"

	n := len(in.Frequencies)
	transF := make([]float64, n)
	transW := make([]float64, n)

	if out == in.Frame {
		copy(transF, in.Frequencies)
		copy(transW, widths)
	} else {
		if conv == nil {
			return nil, nil, newError(op, KindInvalidInput, ErrNoConverter, r,
				fmt.Sprintf("Conversion from %v to %v needs a frame converter.", in.Frame, out))
		}

		fn, err := conv.Prepare(frame.Ref{Type: in.Frame, Context: in.Context},
			frame.Ref{Type: out, Context: in.Context})
		if err != nil {
			return nil, nil, newError(op, KindInvalidInput, ErrInvalidFrame, r,
				errors.Wrapf(err, "cannot convert from %v to %v", in.Frame, out).Error())
		}

		for i, f := range in.Frequencies {
			transF[i] = fn(f)
			transW[i] = fn(f+widths[i]/2) - fn(f-widths[i]/2)
		}
	}

	if source {
		r.note("Note: The given additional radial velocity of %s m/s will be taken into account.",
			formatFloat(in.RadialVelocity))

		if math.Abs(in.RadialVelocity) > minRadialVelocity {
			d := frame.Doppler{Velocity: -in.RadialVelocity, Convention: frame.ConventionRelativistic}
			if err := d.Shift(transF, transF); err != nil {
				return nil, nil, newError(op, KindInvalidInput, ErrInvalidFrame, r, err.Error())
			}
			if err := d.Shift(transW, transW); err != nil {
				return nil, nil, newError(op, KindInvalidInput, ErrInvalidFrame, r, err.Error())
			}
		}
	}

	return transF, transW, nil
}
