package transform

import "errors"

var (
	ErrEmpty          = errors.New("transform: empty input")
	ErrLengthMismatch = errors.New("transform: slice lengths differ")
	ErrNotMonotonic   = errors.New("transform: input frequencies not strictly monotonic")
	ErrNotFinite      = errors.New("transform: non-finite frequency")
	ErrInvalidMethod  = errors.New("transform: unknown interpolation method")
	ErrShiftGrid      = errors.New("transform: fftshift needs equal, uniformly spaced grids")
	ErrInvalidKernel  = errors.New("transform: invalid smoothing kernel")
	ErrInvalidBin     = errors.New("transform: bin width must be >= 1")
	ErrMissingData    = errors.New("transform: no data for contributing window")
)
