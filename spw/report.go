package spw

import (
	"fmt"
	"strconv"
	"strings"
)

// WarningKind identifies a repairable condition recorded in a Report.
type WarningKind int

const (
	// WarnNoWindows: CombineSpws was called without window ids.
	WarnNoWindows WarningKind = iota + 1
	// WarnNegativeWidths: negative channel widths were made positive.
	WarnNegativeWidths
	// WarnStartOutOfRange: a start channel beyond the window was reset to 0.
	WarnStartOutOfRange
	// WarnCenterClamped: the requested center lay outside the input span.
	WarnCenterClamped
	// WarnCenterShifted: the center was moved so that all requested channels fit.
	WarnCenterShifted
	// WarnBandwidthClamped: the requested bandwidth exceeded the input span.
	WarnBandwidthClamped
	// WarnBandwidthAdjusted: the output bandwidth differs from the requested one.
	WarnBandwidthAdjusted
	// WarnChanWidthClamped: the requested channel width exceeded the bandwidth.
	WarnChanWidthClamped
	// WarnEdgeChannelNarrowed: an outermost channel is narrower than requested.
	WarnEdgeChannelNarrowed
	// WarnInvalidVelType: an unknown velocity type fell back to radio.
	WarnInvalidVelType
)

var warningNames = map[WarningKind]string{
	WarnNoWindows:           "no-windows",
	WarnNegativeWidths:      "negative-widths",
	WarnStartOutOfRange:     "start-out-of-range",
	WarnCenterClamped:       "center-clamped",
	WarnCenterShifted:       "center-shifted",
	WarnBandwidthClamped:    "bandwidth-clamped",
	WarnBandwidthAdjusted:   "bandwidth-adjusted",
	WarnChanWidthClamped:    "chanwidth-clamped",
	WarnEdgeChannelNarrowed: "edge-channel-narrowed",
	WarnInvalidVelType:      "invalid-veltype",
}

// String returns a short kebab-case name for k.
func (k WarningKind) String() string {
	if s, ok := warningNames[k]; ok {
		return s
	}
	return "WarningKind(" + strconv.Itoa(int(k)) + ")"
}

// Warning is a structured record of a repaired condition. Value holds the
// main numeric quantity involved (the clamped value, the narrowed width,
// the offending id), in the unit named by the message.
type Warning struct {
	Kind    WarningKind
	Message string
	Value   float64
}

type level int

const (
	levelInfo level = iota
	levelWarn
	levelError
)

type entry struct {
	level level
	text  string
}

// Report collects the diagnostics of one call. The zero value is ready to use.
type Report struct {
	entries  []entry
	Warnings []Warning
}

func (r *Report) note(format string, args ...any) {
	r.entries = append(r.entries, entry{levelInfo, fmt.Sprintf(format, args...)})
}

func (r *Report) warn(kind WarningKind, value float64, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.entries = append(r.entries, entry{levelWarn, msg})
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Message: msg, Value: value})
}

func (r *Report) fail(msg string) {
	r.entries = append(r.entries, entry{levelError, msg})
}

// Lines returns every recorded line in order.
func (r *Report) Lines() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.text
	}
	return out
}

// String joins all lines with newlines.
func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// Has reports whether a warning of kind k was recorded.
func (r *Report) Has(k WarningKind) bool { return r.Count(k) > 0 }

// Count returns the number of warnings of kind k.
func (r *Report) Count(k WarningKind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == k {
			n++
		}
	}
	return n
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}
