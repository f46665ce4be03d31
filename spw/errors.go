package spw

import "errors"

var (
	// ErrInvalidSpw is returned for a window index outside the input or a window without channels.
	ErrInvalidSpw = errors.New("spw: invalid spectral window id")
	// ErrFrameMismatch is returned when combined windows use different reference frames.
	ErrFrameMismatch = errors.New("spw: windows have different reference frames")
	// ErrMixedOrder is returned when channel frequencies are not monotonic.
	ErrMixedOrder = errors.New("spw: channel frequencies are neither ascending nor descending")
	// ErrOutOfRange is returned when a channel start or center lies outside the window.
	ErrOutOfRange = errors.New("spw: start or center outside the window")
	// ErrRestFrequency is returned when a velocity grid has no usable rest frequency.
	ErrRestFrequency = errors.New("spw: rest frequency missing or invalid")
	// ErrChanWidthTooSmall is returned when the requested width is below the narrowest input channel.
	ErrChanWidthTooSmall = errors.New("spw: channel width below the smallest input width")
	// ErrUnknownQuantity is returned for a regrid quantity outside the known set.
	ErrUnknownQuantity = errors.New("spw: unknown regrid quantity")
	// ErrInvalidMode is returned by ConvertGridPars for an unknown mode.
	ErrInvalidMode = errors.New("spw: invalid regrid mode")
	// ErrParse is returned when a start, width or rest frequency string cannot be parsed.
	ErrParse = errors.New("spw: cannot parse parameter")
	// ErrInvalidFrame is returned for an unknown output frame or a failed conversion.
	ErrInvalidFrame = errors.New("spw: invalid output reference frame")
	// ErrNoConverter is returned when a frame change is needed and no Converter was given.
	ErrNoConverter = errors.New("spw: frame conversion needed but no converter given")
	// ErrInvalidSpec is returned for inconsistent or non-physical regrid parameters.
	ErrInvalidSpec = errors.New("spw: invalid regrid parameter")
	// ErrLengthMismatch is returned when frequency and width slices differ in length.
	ErrLengthMismatch = errors.New("spw: frequency and width arrays differ in length")
)

// ErrorKind separates bad input from broken internal invariants.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota
	KindInternal
)

// String returns the kind name.
func (k ErrorKind) String() string {
	if k == KindInternal {
		return "internal"
	}
	return "invalid input"
}

// Error is returned by every failing operation of this package. Report
// holds the diagnostics collected up to and including the failure.
type Error struct {
	Op     string
	Kind   ErrorKind
	Err    error
	Msg    string
	Report *Report
}

func (e *Error) Error() string {
	return "spw: " + e.Op + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op string, kind ErrorKind, sentinel error, r *Report, msg string) *Error {
	r.fail(msg)
	return &Error{Op: op, Kind: kind, Err: sentinel, Msg: msg, Report: r}
}
