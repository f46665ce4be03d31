package transform

import (
	"fmt"
	"strings"
)

// Method selects how channel values are interpolated onto the new grid.
type Method int

const (
	MethodNearest Method = iota
	MethodLinear
	MethodCubic
	MethodSpline
	MethodFFTShift
)

var methodNames = [...]string{
	MethodNearest:  "nearest",
	MethodLinear:   "linear",
	MethodCubic:    "cubic",
	MethodSpline:   "spline",
	MethodFFTShift: "fftshift",
}

// String returns the name accepted by ParseMethod.
func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	return m >= MethodNearest && m <= MethodFFTShift
}

// ParseMethod parses an interpolation name case-insensitively. An empty
// string selects linear interpolation.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MethodLinear, nil
	}

	for m, name := range methodNames {
		if name == s {
			return Method(m), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}
