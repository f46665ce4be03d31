package frame

import (
	"fmt"
	"math"
)

// Identity is a Converter that leaves frequencies unchanged.
type Identity struct{}

// Prepare implements Converter.
func (Identity) Prepare(_, _ Ref) (Conversion, error) {
	return func(hz float64) float64 { return hz }, nil
}

// VelocityTable converts between frames using the radial velocity (m/s,
// positive receding) of each frame's rest point as seen from the
// observatory. TOPO is always 0 and need not be listed.
//
// A frequency observed in frame A maps to frame B by the ratio of the
// relativistic Doppler factors of both frames.
type VelocityTable map[Type]float64

// Prepare implements Converter.
func (vt VelocityTable) Prepare(from, to Ref) (Conversion, error) {
	if !from.Type.Valid() || !to.Type.Valid() {
		return nil, fmt.Errorf("%w: %v -> %v", ErrUnknownFrame, from.Type, to.Type)
	}

	vFrom, err := vt.velocity(from.Type)
	if err != nil {
		return nil, err
	}

	vTo, err := vt.velocity(to.Type)
	if err != nil {
		return nil, err
	}

	if vFrom == vTo {
		return func(hz float64) float64 { return hz }, nil
	}

	ratio := relativisticRatio(vTo) / relativisticRatio(vFrom)

	return func(hz float64) float64 { return hz / ratio }, nil
}

func (vt VelocityTable) velocity(t Type) (float64, error) {
	if t == TypeTOPO {
		return 0, nil
	}

	v, ok := vt[t]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoVelocity, t)
	}

	if math.Abs(v) >= C {
		return 0, fmt.Errorf("frame: radial velocity of %v must be below c: %g", t, v)
	}

	return v, nil
}

// relativisticRatio is the observed-over-emitted frequency ratio for a
// source receding at v.
func relativisticRatio(v float64) float64 {
	beta := v / C
	return math.Sqrt((1 - beta) / (1 + beta))
}
