package frame

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// C is the speed of light in vacuum in m/s.
const C = 299792458.0

// Type identifies a spectral reference frame.
type Type int

const (
	TypeREST Type = iota
	TypeLSRK
	TypeLSRD
	TypeBARY
	TypeGEO
	TypeTOPO
	TypeGALACTO
	TypeLGROUP
	TypeCMB
	typeCount
)

// Source is the pseudo-frame name that selects GEO plus a correction for
// the radial velocity of the observed source.
const Source = "SOURCE"

var (
	// ErrUnknownFrame is returned by Parse for names that are not a frame.
	ErrUnknownFrame = errors.New("frame: unknown reference frame")
	// ErrNoVelocity is returned by VelocityTable when a frame has no entry.
	ErrNoVelocity = errors.New("frame: no radial velocity known for frame")
)

var typeNames = [...]string{
	TypeREST:    "REST",
	TypeLSRK:    "LSRK",
	TypeLSRD:    "LSRD",
	TypeBARY:    "BARY",
	TypeGEO:     "GEO",
	TypeTOPO:    "TOPO",
	TypeGALACTO: "GALACTO",
	TypeLGROUP:  "LGROUP",
	TypeCMB:     "CMB",
}

// String returns the canonical upper-case frame name.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

// Valid reports whether t names a known frame.
func (t Type) Valid() bool {
	return t >= TypeREST && t < typeCount
}

// Parse resolves a frame name case-insensitively. "LSR" is accepted as an
// alias of LSRK and "BARYCENT" as an alias of BARY.
func Parse(name string) (Type, error) {
	n := strings.ToUpper(strings.TrimSpace(name))

	switch n {
	case "LSR":
		return TypeLSRK, nil
	case "BARYCENT":
		return TypeBARY, nil
	}

	for i, s := range typeNames {
		if s == n {
			return Type(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
}

// Direction is a sky direction in radians.
type Direction struct {
	RA  float64
	Dec float64
}

// Position is an observatory position in ITRF coordinates, in meters.
type Position struct {
	X, Y, Z float64
}

// Context carries the observation geometry a real frame conversion needs.
// It is opaque to this package; converters that ignore it are valid.
type Context struct {
	Direction Direction
	Position  Position
	Epoch     time.Time
}

// Ref is a frame together with the observation context it is defined in.
type Ref struct {
	Type    Type
	Context Context
}

// Conversion maps a frequency in Hz from one frame to another.
type Conversion func(hz float64) float64

// Converter prepares conversions between frame references.
type Converter interface {
	Prepare(from, to Ref) (Conversion, error)
}
