package spw

import (
	"fmt"
	"strings"
)

// Quantity is the quantity in which a regridded window is equidistant.
type Quantity int

const (
	QuantityChan Quantity = iota
	QuantityFreq
	QuantityVRad
	QuantityVOpt
	QuantityWave
)

var quantityNames = [...]string{
	QuantityChan: "chan",
	QuantityFreq: "freq",
	QuantityVRad: "vrad",
	QuantityVOpt: "vopt",
	QuantityWave: "wave",
}

// String returns the short quantity name ("chan", "freq", ...).
func (q Quantity) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
	return quantityNames[q]
}

// Valid reports whether q is a known quantity.
func (q Quantity) Valid() bool { return q >= QuantityChan && q <= QuantityWave }

// ParseQuantity resolves a quantity name.
func ParseQuantity(name string) (Quantity, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range quantityNames {
		if s == n {
			return Quantity(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
}

// velocity reports whether q needs a rest frequency.
func (q Quantity) velocity() bool { return q == QuantityVRad || q == QuantityVOpt }

// Mode is the user-facing regrid mode.
type Mode int

const (
	// ModeChannel selects channels by index; the grid is equidistant in frequency.
	ModeChannel Mode = iota
	// ModeChannelBinned bins whole original channels.
	ModeChannelBinned
	ModeFrequency
	ModeVelocity
)

var modeNames = [...]string{
	ModeChannel:       "channel",
	ModeChannelBinned: "channel_b",
	ModeFrequency:     "frequency",
	ModeVelocity:      "velocity",
}

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	if m < ModeChannel || m > ModeVelocity {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode resolves a mode name. Names are case-sensitive.
func ParseMode(name string) (Mode, error) {
	for i, s := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}
