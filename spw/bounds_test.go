package spw

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-spw/internal/testutil"
)

const mhz = 1e6

func bounds(g *Grid) (lo, hi []float64) {
	lo = make([]float64, len(g.Channels))
	hi = make([]float64, len(g.Channels))
	for i, b := range g.Channels {
		lo[i], hi[i] = b.Lo, b.Hi
	}
	return lo, hi
}

func TestRegridChanIdentity(t *testing.T) {
	for _, n := range []int{1, 9, 10} {
		f, w := testutil.UniformChannels(1000*mhz, 1*mhz, n)
		spec := DefaultSpec(QuantityChan)
		spec.NChan = 0
		spec.Center = Some(float64(n / 2))
		spec.ChanWidth = Some(1)
		spec.Bandwidth = Some(float64(n))

		g, err := RegridChanBounds(f, w, spec)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		lo, hi := bounds(g)
		wantLo, wantHi := testutil.Edges(f, w)
		testutil.RequireSliceNearlyEqual(t, lo, wantLo, 0)
		testutil.RequireSliceNearlyEqual(t, hi, wantHi, 0)

		if len(g.Report.Warnings) != 0 {
			t.Fatalf("n=%d: unexpected warnings %v", n, g.Report.Warnings)
		}
	}
}

func TestRegridChanPairs(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityChan)
	spec.NChan = 5
	spec.ChanWidth = Some(2)
	spec.Center = Some(4)

	g, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	if len(g.Channels) != 5 {
		t.Fatalf("channels=%d want=5", len(g.Channels))
	}

	for i, b := range g.Channels {
		if math.Abs(b.Width()-2*mhz) > 1e-6 {
			t.Fatalf("channel %d width=%v want 2 MHz", i, b.Width())
		}
	}

	lo, hi := bounds(g)
	testutil.RequireContiguous(t, lo, hi, 1e-6)

	if span := hi[4] - lo[0]; math.Abs(span-10*mhz) > 1e-6 {
		t.Fatalf("span=%v want 10 MHz", span)
	}

	if g.Report.Has(WarnEdgeChannelNarrowed) {
		t.Fatalf("unexpected narrowing: %q", g.Report)
	}
}

func TestRegridChanNarrowEdge(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityChan)
	spec.NChan = 0
	spec.ChanWidth = Some(3)

	g, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	lo, hi := bounds(g)
	testutil.RequireContiguous(t, lo, hi, 1e-6)

	if lo[0] != f[0]-w[0]/2 || hi[len(hi)-1] != f[9]+w[9]/2 {
		t.Fatalf("span [%v, %v] want whole input", lo[0], hi[len(hi)-1])
	}

	if got := g.Report.Count(WarnEdgeChannelNarrowed); got == 0 {
		t.Fatalf("no narrowing warning, report:\n%s", g.Report)
	}
}

func TestRegridChanOutOfRange(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityChan)
	spec.Center = Some(12)

	g, err := RegridChanBounds(f, w, spec)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err=%v want ErrOutOfRange", err)
	}

	if g != nil {
		t.Fatalf("grid=%v want nil", g)
	}

	if !strings.Contains(err.Error(), "outside valid range which is 0 - 9") {
		t.Fatalf("message=%q", err)
	}
}

func TestRegridChanClampsBandwidth(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityChan)
	spec.NChan = 0
	spec.Center = Some(2)
	spec.Bandwidth = Some(9)

	g, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	if !g.Report.Has(WarnBandwidthClamped) {
		t.Fatalf("missing clamp warning:\n%s", g.Report)
	}

	// Center 2 leaves room for channels 0 - 4.
	if len(g.Channels) != 5 {
		t.Fatalf("channels=%d want=5", len(g.Channels))
	}
}

func TestRegridFreqStartChannel(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityFreq)
	spec.StartChan = 2
	spec.WidthChans = 3
	spec.CenterIsStart = true

	g, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	start := f[2] - w[2]/2
	want := []Bound{
		{start, start + 3*mhz},
		{start + 3*mhz, start + 6*mhz},
		{start + 6*mhz, start + 8*mhz},
	}

	if len(g.Channels) != len(want) {
		t.Fatalf("channels=%v want=%v", g.Channels, want)
	}

	for i := range want {
		if math.Abs(g.Channels[i].Lo-want[i].Lo) > 1e-3 || math.Abs(g.Channels[i].Hi-want[i].Hi) > 1e-3 {
			t.Fatalf("channel %d=%v want=%v", i, g.Channels[i], want[i])
		}
	}

	if got := g.Report.Count(WarnEdgeChannelNarrowed); got != 1 {
		t.Fatalf("narrowing warnings=%d want 1:\n%s", got, g.Report)
	}
}

func TestRegridFreqStartFrequency(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityFreq)
	spec.Center = Some(f[2])
	spec.ChanWidth = Some(3 * mhz)
	spec.CenterIsStart = true

	g, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	if len(g.Channels) != 3 {
		t.Fatalf("channels=%v want 3", g.Channels)
	}

	// The start frequency is the center of the first new channel.
	if c := g.Channels[0].Center(); math.Abs(c-f[2]) > 1e-3 {
		t.Fatalf("first center=%v want=%v", c, f[2])
	}

	if g.Report.Has(WarnEdgeChannelNarrowed) {
		t.Fatalf("unexpected narrowing:\n%s", g.Report)
	}
}

func TestRegridFreqStartBeyondWindow(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityFreq)
	spec.StartChan = 12
	spec.CenterIsStart = true

	g, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	if !g.Report.Has(WarnStartOutOfRange) {
		t.Fatalf("missing warning:\n%s", g.Report)
	}

	if got := g.Channels[0].Lo; math.Abs(got-(f[0]-w[0]/2)) > 1e-3 {
		t.Fatalf("first lo=%v want lower edge", got)
	}
}

func TestRegridFreqIdentity(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 16)

	g, err := RegridChanBounds(f, w, DefaultSpec(QuantityFreq))
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, g.Frequencies(), f, 1e-3)
	testutil.RequireSliceNearlyEqual(t, g.Widths(), w, 1e-3)
}

func TestRegridFreqIdempotent(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	spec := DefaultSpec(QuantityFreq)
	spec.ChanWidth = Some(2 * mhz)

	g1, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	g2, err := RegridChanBounds(g1.Frequencies(), g1.Widths(), spec)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if len(g1.Channels) != len(g2.Channels) {
		t.Fatalf("channels %d then %d", len(g1.Channels), len(g2.Channels))
	}

	tol := 0.01 * 2 * mhz
	for i := range g1.Channels {
		if math.Abs(g1.Channels[i].Lo-g2.Channels[i].Lo) > tol ||
			math.Abs(g1.Channels[i].Hi-g2.Channels[i].Hi) > tol {
			t.Fatalf("channel %d moved: %v -> %v", i, g1.Channels[i], g2.Channels[i])
		}
	}
}

func TestRegridDescendingSymmetry(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 12)
	fd, wd := testutil.Reversed(f), testutil.Reversed(w)

	specs := map[string]RegridSpec{
		"chan": {Quantity: QuantityChan, ChanWidth: Some(3), NChan: NChanFill, StartChan: -1},
		"freq": {Quantity: QuantityFreq, ChanWidth: Some(2.5 * mhz), NChan: NChanFill, StartChan: -1},
		"vrad": {
			Quantity:      QuantityVRad,
			ChanWidth:     Some(600e3),
			RestFrequency: Some(1010 * mhz),
			NChan:         NChanFill,
			StartChan:     -1,
		},
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			asc, err := RegridChanBounds(f, w, spec)
			if err != nil {
				t.Fatalf("ascending: %v", err)
			}

			desc, err := RegridChanBounds(fd, wd, spec)
			if err != nil {
				t.Fatalf("descending: %v", err)
			}

			if len(asc.Channels) != len(desc.Channels) {
				t.Fatalf("channels %d vs %d", len(asc.Channels), len(desc.Channels))
			}

			n := len(asc.Channels)
			for i := range asc.Channels {
				if asc.Channels[i] != desc.Channels[n-1-i] {
					t.Fatalf("channel %d: %v vs %v", i, asc.Channels[i], desc.Channels[n-1-i])
				}
			}
		})
	}
}

func TestRegridDescendingStartChannel(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	fd, wd := testutil.Reversed(f), testutil.Reversed(w)

	spec := DefaultSpec(QuantityFreq)
	spec.StartChan = 0
	spec.WidthChans = 2
	spec.CenterIsStart = true

	g, err := RegridChanBounds(fd, wd, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	// Channel 0 of the descending input is the highest frequency; the grid
	// starts at its upper edge and runs downward.
	if got, want := g.Channels[0].Hi, fd[0]+wd[0]/2; math.Abs(got-want) > 1e-3 {
		t.Fatalf("first hi=%v want=%v", got, want)
	}

	if len(g.Channels) != 5 {
		t.Fatalf("channels=%d want=5", len(g.Channels))
	}
}

func TestRegridVRad(t *testing.T) {
	rest := 1420.405752 * mhz
	f, w := testutil.UniformChannels(1419*mhz, 0.1*mhz, 20)

	spec := DefaultSpec(QuantityVRad)
	spec.RestFrequency = Some(rest)
	spec.ChanWidth = Some(2 * RadioVelocity(rest-0.1*mhz, rest))

	g, err := RegridChanBounds(f, w, spec)
	if err != nil {
		t.Fatalf("RegridChanBounds: %v", err)
	}

	if len(g.Channels) != 10 {
		t.Fatalf("channels=%d want=10", len(g.Channels))
	}

	for i, b := range g.Channels {
		if math.Abs(b.Width()-0.2*mhz) > 1e-2 {
			t.Fatalf("channel %d width=%v want 0.2 MHz", i, b.Width())
		}
	}

	lo, hi := bounds(g)
	testutil.RequireContiguous(t, lo, hi, 1e-3)
}

func TestRegridNonLinearQuantities(t *testing.T) {
	rest := 1420.405752 * mhz
	f, w := testutil.UniformChannels(1400*mhz, 1*mhz, 40)

	tests := []struct {
		name string
		spec RegridSpec
	}{
		{"vopt", RegridSpec{
			Quantity:      QuantityVOpt,
			RestFrequency: Some(rest),
			ChanWidth:     Some(600e3),
			NChan:         NChanFill,
			StartChan:     -1,
		}},
		{"vopt nchan", RegridSpec{
			Quantity:      QuantityVOpt,
			RestFrequency: Some(rest),
			Center:        Some(OpticalVelocity(1420*mhz, rest)),
			ChanWidth:     Some(400e3),
			NChan:         10,
			StartChan:     -1,
		}},
		{"wave", RegridSpec{
			Quantity:  QuantityWave,
			ChanWidth: Some(0.0004),
			NChan:     NChanFill,
			StartChan: -1,
		}},
		{"wave bandwidth", RegridSpec{
			Quantity:  QuantityWave,
			Center:    Some(Wavelength(1420 * mhz)),
			Bandwidth: Some(0.002),
			StartChan: -1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := RegridChanBounds(f, w, tt.spec)
			if err != nil {
				t.Fatalf("RegridChanBounds: %v", err)
			}

			if len(g.Channels) == 0 {
				t.Fatal("no channels")
			}

			lo, hi := bounds(g)
			testutil.RequireContiguous(t, lo, hi, 1e-3)

			lower, upper := f[0]-w[0]/2, f[39]+w[39]/2
			if lo[0] < lower-w[0] || hi[len(hi)-1] > upper+w[0] {
				t.Fatalf("grid [%v, %v] exceeds input [%v, %v]", lo[0], hi[len(hi)-1], lower, upper)
			}
		})
	}
}

func TestRegridErrors(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)

	vrad := DefaultSpec(QuantityVRad)

	badRest := DefaultSpec(QuantityVOpt)
	badRest.RestFrequency = Some(-1)

	narrow := DefaultSpec(QuantityFreq)
	narrow.ChanWidth = Some(0.25 * mhz)

	badWave := DefaultSpec(QuantityWave)
	badWave.Center = Some(-1)

	tests := []struct {
		name   string
		freqs  []float64
		widths []float64
		spec   RegridSpec
		want   error
		text   string
	}{
		{"restfreq unset", f, w, vrad, ErrRestFrequency, "restfreq"},
		{"restfreq invalid", f, w, badRest, ErrRestFrequency, "restfreq"},
		{"too narrow", f, w, narrow, ErrChanWidthTooSmall, "smallest original channel width"},
		{"wave center", f, w, badWave, ErrInvalidSpec, "wavelength"},
		{"mixed", []float64{1, 3, 2}, []float64{1, 1, 1}, DefaultSpec(QuantityFreq), ErrMixedOrder, "neither"},
		{"mismatch", f, w[:3], DefaultSpec(QuantityFreq), ErrLengthMismatch, "widths"},
		{"zero width", f, make([]float64, 10), DefaultSpec(QuantityFreq), ErrInvalidSpec, "width"},
		{"quantity", f, w, RegridSpec{Quantity: Quantity(42)}, ErrUnknownQuantity, "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := RegridChanBounds(tt.freqs, tt.widths, tt.spec)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v want %v", err, tt.want)
			}

			if g != nil {
				t.Fatalf("grid=%v want nil", g)
			}

			if !strings.Contains(err.Error(), tt.text) {
				t.Fatalf("message %q lacks %q", err, tt.text)
			}

			var se *Error
			if !errors.As(err, &se) || se.Report == nil || len(se.Report.Lines()) == 0 {
				t.Fatalf("error without report: %#v", err)
			}
		})
	}
}

func TestRegridClamps(t *testing.T) {
	f, w := testutil.UniformChannels(1000*mhz, 1*mhz, 10)
	lower, upper := f[0]-w[0]/2, f[9]+w[9]/2

	t.Run("bandwidth", func(t *testing.T) {
		spec := DefaultSpec(QuantityFreq)
		spec.NChan = 0
		spec.Center = Some(f[3])
		spec.Bandwidth = Some(40 * mhz)

		g, err := RegridChanBounds(f, w, spec)
		if err != nil {
			t.Fatalf("RegridChanBounds: %v", err)
		}

		if !g.Report.Has(WarnBandwidthClamped) {
			t.Fatalf("missing warning:\n%s", g.Report)
		}

		lo, hi := bounds(g)
		if lo[0] < lower-1e-3 || hi[len(hi)-1] > upper+1e-3 {
			t.Fatalf("grid [%v, %v] exceeds input", lo[0], hi[len(hi)-1])
		}
	})

	t.Run("channel width", func(t *testing.T) {
		spec := DefaultSpec(QuantityFreq)
		spec.ChanWidth = Some(100 * mhz)

		g, err := RegridChanBounds(f, w, spec)
		if err != nil {
			t.Fatalf("RegridChanBounds: %v", err)
		}

		if !g.Report.Has(WarnChanWidthClamped) || len(g.Channels) != 1 {
			t.Fatalf("channels=%v report:\n%s", g.Channels, g.Report)
		}
	})

	t.Run("center", func(t *testing.T) {
		spec := DefaultSpec(QuantityFreq)
		spec.NChan = 0
		spec.Center = Some(upper + 5*mhz)

		g, err := RegridChanBounds(f, w, spec)
		if err != nil {
			t.Fatalf("RegridChanBounds: %v", err)
		}

		if !g.Report.Has(WarnCenterClamped) {
			t.Fatalf("missing warning:\n%s", g.Report)
		}
	})
}
