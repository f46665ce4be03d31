package frame

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Convention selects how a velocity is turned into a frequency ratio.
type Convention int

const (
	// ConventionRadio uses f/f0 = 1 - v/c.
	ConventionRadio Convention = iota
	// ConventionOptical uses f/f0 = 1 / (1 + v/c).
	ConventionOptical
	// ConventionRelativistic uses f/f0 = sqrt((1 - v/c) / (1 + v/c)).
	ConventionRelativistic
)

// String returns the convention name.
func (c Convention) String() string {
	switch c {
	case ConventionRadio:
		return "radio"
	case ConventionOptical:
		return "optical"
	case ConventionRelativistic:
		return "relativistic"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// Doppler is a frequency shift operator for a radial velocity in m/s.
type Doppler struct {
	Velocity   float64
	Convention Convention
}

// Ratio returns the factor by which Shift multiplies frequencies.
func (d Doppler) Ratio() (float64, error) {
	beta := d.Velocity / C

	switch d.Convention {
	case ConventionRadio:
		return 1 - beta, nil
	case ConventionOptical:
		if beta <= -1 {
			return 0, fmt.Errorf("frame: optical velocity must be > -c: %g", d.Velocity)
		}

		return 1 / (1 + beta), nil
	case ConventionRelativistic:
		if math.Abs(beta) >= 1 {
			return 0, fmt.Errorf("frame: relativistic velocity must be below c: %g", d.Velocity)
		}

		return math.Sqrt((1 - beta) / (1 + beta)), nil
	default:
		return 0, fmt.Errorf("frame: invalid doppler convention: %d", d.Convention)
	}
}

// Shift writes the shifted frequencies of src into dst.
// dst and src must have equal length; they may alias.
func (d Doppler) Shift(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("frame: doppler length mismatch: %d != %d", len(dst), len(src))
	}

	ratio, err := d.Ratio()
	if err != nil {
		return err
	}

	vecmath.ScaleBlock(dst, src, ratio)

	return nil
}
