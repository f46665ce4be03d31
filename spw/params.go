package spw

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cwbudde/algo-spw/units"
)

// NChanFill as RegridSpec.NChan fills the available span with whole channels.
const NChanFill = -1

// RegridSpec is a normalized regrid request.
//
// The meaning of Center, Bandwidth and ChanWidth follows Quantity: channel
// numbers for QuantityChan, Hz for QuantityFreq, m/s for the velocities and
// meters for QuantityWave. Non-positive Bandwidth and ChanWidth count as unset.
type RegridSpec struct {
	Quantity      Quantity
	Center        Value
	Bandwidth     Value
	ChanWidth     Value
	RestFrequency Value

	// NChan > 0 requests that many channels. 0 uses Bandwidth or the whole
	// input. Negative values fill the span from Center (or from the lower
	// edge) with whole channels.
	NChan int

	// WidthChans > 0 sets the channel width of a frequency grid to that many
	// input channels. StartChan >= 0 starts a frequency grid at that input
	// channel. Both are set in channel mode.
	WidthChans int
	StartChan  int

	// CenterIsStart marks Center (or StartChan) as an edge of the new
	// window. StartIsEnd selects its upper edge in frequency.
	CenterIsStart bool
	StartIsEnd    bool
}

// DefaultSpec returns a spec that reproduces the input window on the given
// quantity: no center, bandwidth or width, and the span filled.
func DefaultSpec(q Quantity) RegridSpec {
	return RegridSpec{Quantity: q, NChan: NChanFill, StartChan: -1}
}

// Request holds user-facing regrid parameters as strings.
type Request struct {
	Mode          string
	NChan         int
	Start         string
	Width         string
	Interpolation string
	RestFreq      string
	OutFrame      string
	VelType       string
}

// GridParams is the result of ConvertGridPars.
type GridParams struct {
	Mode          Mode
	OutFrame      string
	Interpolation string
	Spec          RegridSpec
	Report        *Report
}

// ConvertGridPars validates req and converts it into a RegridSpec.
//
// Mode "channel" selects input channels by index and width in channels on
// a frequency grid; "channel_b" bins whole input channels; "frequency"
// takes start and width as frequencies; "velocity" takes them as
// velocities and needs a rest frequency. Empty strings and "[]" leave a
// parameter unset. A negative width places start at the upper end in
// frequency; in velocity mode a non-negative or missing width does.
func ConvertGridPars(req Request, opts ...Option) (*GridParams, error) {
	const op = "convertGridPars"

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	res, err := convertGridPars(req, r)
	cfg.emit(op, r)

	return res, err
}

func convertGridPars(req Request, r *Report) (*GridParams, error) {
	const op = "convertGridPars"

	fail := func(err error) (*GridParams, error) {
		return nil, newError(op, KindInvalidInput, ErrParse, r, err.Error())
	}

	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, newError(op, KindInvalidInput, ErrInvalidMode, r, "Invalid mode "+req.Mode)
	}

	spec := DefaultSpec(QuantityFreq)

	if isSet(req.RestFreq) {
		f, err := units.ParseIn(req.RestFreq, "Hz")
		if err != nil {
			return fail(errors.Wrap(err, "restfreq"))
		}
		if f != 0 {
			spec.RestFrequency = Some(f)
		}
	}

	if isSet(req.Start) {
		switch mode {
		case ModeChannel:
			n, err := parseInt(req.Start)
			if err != nil {
				return fail(errors.Wrap(err, "start"))
			}
			spec.StartChan = n
		case ModeChannelBinned:
			n, err := parseInt(req.Start)
			if err != nil {
				return fail(errors.Wrap(err, "start"))
			}
			spec.Center = Some(float64(n))
		case ModeFrequency, ModeVelocity:
			v, err := units.ParseIn(req.Start, modeUnit(mode))
			if err != nil {
				return fail(errors.Wrap(err, "start"))
			}
			spec.Center = Some(v)
		}
	}

	if isSet(req.Width) {
		var w float64
		switch mode {
		case ModeChannel, ModeChannelBinned:
			n, err := parseInt(req.Width)
			if err != nil {
				return fail(errors.Wrap(err, "width"))
			}
			w = float64(n)
		default:
			w, err = units.ParseIn(req.Width, modeUnit(mode))
			if err != nil {
				return fail(errors.Wrap(err, "width"))
			}
		}

		switch mode {
		case ModeChannel:
			spec.WidthChans = int(abs(w))
		default:
			spec.ChanWidth = Some(abs(w))
		}

		if mode == ModeVelocity {
			spec.StartIsEnd = w >= 0
		} else {
			spec.StartIsEnd = w < 0
		}
	} else if mode == ModeVelocity {
		spec.StartIsEnd = true
	}

	if req.NChan > 0 {
		if mode == ModeChannelBinned {
			if cw, ok := spec.ChanWidth.positive(); ok {
				spec.Bandwidth = Some(float64(req.NChan) * cw)
			} else {
				spec.Bandwidth = Some(float64(req.NChan))
			}
		} else {
			spec.NChan = req.NChan
		}
	}

	switch mode {
	case ModeChannel, ModeFrequency:
		spec.Quantity = QuantityFreq
	case ModeChannelBinned:
		spec.Quantity = QuantityChan
	case ModeVelocity:
		if !spec.RestFrequency.IsSet() {
			return nil, newError(op, KindInvalidInput, ErrRestFrequency, r, "Need to set restfreq in velocity mode.")
		}

		spec.Quantity = QuantityVRad
		switch req.VelType {
		case "optical":
			spec.Quantity = QuantityVOpt
		case "radio", "":
		default:
			r.warn(WarnInvalidVelType, 0, "Invalid velocity type %s, setting type to \"radio\"", req.VelType)
		}
	}

	spec.CenterIsStart = true

	return &GridParams{
		Mode:          mode,
		OutFrame:      req.OutFrame,
		Interpolation: req.Interpolation,
		Spec:          spec,
		Report:        r,
	}, nil
}

func isSet(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "[]"
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a channel number", s)
	}
	return n, nil
}

func modeUnit(m Mode) string {
	if m == ModeVelocity {
		return "m/s"
	}
	return "Hz"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
