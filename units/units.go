package units

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Dimension is the physical dimension of a unit.
type Dimension int

const (
	Dimensionless Dimension = iota
	Frequency
	Velocity
	Length
)

// String returns the dimension name.
func (d Dimension) String() string {
	switch d {
	case Dimensionless:
		return "dimensionless"
	case Frequency:
		return "frequency"
	case Velocity:
		return "velocity"
	case Length:
		return "length"
	default:
		return "Dimension(" + strconv.Itoa(int(d)) + ")"
	}
}

var (
	// ErrSyntax is returned for strings that are not a number with an optional unit.
	ErrSyntax = errors.New("units: malformed quantity")
	// ErrUnknownUnit is returned for unit names outside the supported set.
	ErrUnknownUnit = errors.New("units: unknown unit")
	// ErrNonConformant is returned when converting between different dimensions.
	ErrNonConformant = errors.New("units: non-conformant units")
)

// base units in match order: "m/s" must be tried before "m".
var bases = []struct {
	name string
	dim  Dimension
}{
	{"m/s", Velocity},
	{"Hz", Frequency},
	{"m", Length},
}

var prefixes = map[string]float64{
	"":  1,
	"T": 1e12,
	"G": 1e9,
	"M": 1e6,
	"k": 1e3,
	"h": 1e2,
	"c": 1e-2,
	"m": 1e-3,
	"u": 1e-6,
	"n": 1e-9,
	"p": 1e-12,
}

var quantityRE = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*(\S*)$`)

// Quantity is a value with a unit.
type Quantity struct {
	Value float64
	Unit  string
}

// String formats q as value followed by unit.
func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'g', -1, 64) + q.Unit
}

// Dimension returns the dimension of q's unit.
func (q Quantity) Dimension() (Dimension, error) {
	dim, _, err := lookup(q.Unit)
	return dim, err
}

// Parse reads a quantity string. Surrounding blanks and blanks between the
// number and the unit are ignored.
func Parse(s string) (Quantity, error) {
	m := quantityRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Quantity{}, errors.Wrapf(ErrSyntax, "%q", s)
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, errors.Wrapf(ErrSyntax, "%q: %v", s, err)
	}

	if _, _, err := lookup(m[2]); err != nil {
		return Quantity{}, errors.Wrapf(err, "%q", s)
	}

	return Quantity{Value: v, Unit: m[2]}, nil
}

// In returns the value of q expressed in unit. A dimensionless q is
// taken to be in unit already.
func (q Quantity) In(unit string) (float64, error) {
	toDim, toScale, err := lookup(unit)
	if err != nil {
		return 0, err
	}

	if q.Unit == "" {
		return q.Value, nil
	}

	fromDim, fromScale, err := lookup(q.Unit)
	if err != nil {
		return 0, err
	}

	if fromDim != toDim {
		return 0, errors.Wrapf(ErrNonConformant, "%s (%v) to %s (%v)", q.Unit, fromDim, unit, toDim)
	}

	return q.Value * fromScale / toScale, nil
}

// ParseIn parses s and converts it to unit in one step.
func ParseIn(s, unit string) (float64, error) {
	q, err := Parse(s)
	if err != nil {
		return 0, err
	}

	v, err := q.In(unit)
	if err != nil {
		return 0, errors.Wrapf(err, "%q", s)
	}

	return v, nil
}

func lookup(unit string) (Dimension, float64, error) {
	if unit == "" {
		return Dimensionless, 1, nil
	}

	for _, b := range bases {
		if !strings.HasSuffix(unit, b.name) {
			continue
		}

		if scale, ok := prefixes[strings.TrimSuffix(unit, b.name)]; ok {
			return b.dim, scale, nil
		}
	}

	return 0, 0, errors.Wrapf(ErrUnknownUnit, "%q", unit)
}
