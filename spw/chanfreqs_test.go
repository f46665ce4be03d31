package spw

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spw/internal/testutil"
	"github.com/cwbudde/algo-spw/spw/frame"
)

func topoInput(n int) ChanInput {
	f, w := testutil.UniformChannels(100*ghz, 0.1*ghz, n)
	return ChanInput{Frequencies: f, Widths: w, Frame: frame.TypeTOPO}
}

func TestCalcChanFreqsKeepsFrame(t *testing.T) {
	in := topoInput(8)

	res, err := CalcChanFreqs(in, Request{Mode: "channel"}, nil)
	if err != nil {
		t.Fatalf("CalcChanFreqs: %v", err)
	}

	if res.Frame != frame.TypeTOPO {
		t.Fatalf("frame=%v want TOPO", res.Frame)
	}

	testutil.RequireSliceNearlyEqual(t, res.Frequencies, in.Frequencies, 1e-3)
	testutil.RequireSliceNearlyEqual(t, res.Widths, in.Widths, 1e-3)

	if math.Abs(res.WeightScale-1) > 1e-9 {
		t.Fatalf("weight scale=%v want 1", res.WeightScale)
	}
}

func TestCalcChanFreqsBinned(t *testing.T) {
	in := topoInput(8)

	res, err := CalcChanFreqs(in, Request{Mode: "channel_b", Width: "2"}, nil)
	if err != nil {
		t.Fatalf("CalcChanFreqs: %v", err)
	}

	if len(res.Frequencies) != 4 {
		t.Fatalf("channels=%d want 4", len(res.Frequencies))
	}

	if math.Abs(res.WeightScale-2) > 1e-9 {
		t.Fatalf("weight scale=%v want 2", res.WeightScale)
	}
}

func TestCalcChanFreqsNegativeWidths(t *testing.T) {
	in := topoInput(6)
	for i := range in.Widths {
		in.Widths[i] = -0.1 * ghz
	}

	res, err := CalcChanFreqs(in, Request{Mode: "channel"}, nil)
	if err != nil {
		t.Fatalf("CalcChanFreqs: %v", err)
	}

	if got := res.Report.Count(WarnNegativeWidths); got != 1 {
		t.Fatalf("negative width warnings=%d want 1", got)
	}

	for i, w := range res.Widths {
		if math.Abs(w-0.1*ghz) > 1e-3 {
			t.Fatalf("width[%d]=%v want +0.1 GHz", i, w)
		}
	}
}

func TestCalcChanFreqsConvertsFrame(t *testing.T) {
	in := topoInput(10)
	vt := frame.VelocityTable{frame.TypeLSRK: 20e3}

	res, err := CalcChanFreqs(in, Request{Mode: "channel", OutFrame: "lsrk"}, vt)
	if err != nil {
		t.Fatalf("CalcChanFreqs: %v", err)
	}

	if res.Frame != frame.TypeLSRK {
		t.Fatalf("frame=%v want LSRK", res.Frame)
	}

	conv, _ := vt.Prepare(frame.Ref{Type: frame.TypeTOPO}, frame.Ref{Type: frame.TypeLSRK})
	for i, f := range in.Frequencies {
		if want := conv(f); math.Abs(res.Frequencies[i]-want) > 1 || math.Abs(res.InputFrequencies[i]-want) > 1e-6 {
			t.Fatalf("freq[%d]=%v input=%v want=%v", i, res.Frequencies[i], res.InputFrequencies[i], want)
		}
	}

	wantW := conv(in.Frequencies[0]+in.Widths[0]/2) - conv(in.Frequencies[0]-in.Widths[0]/2)
	if math.Abs(res.Widths[0]-wantW) > 1 {
		t.Fatalf("width=%v want=%v", res.Widths[0], wantW)
	}
}

func TestCalcChanFreqsSource(t *testing.T) {
	in := topoInput(4)
	in.Frame = frame.TypeGEO
	in.RadialVelocity = 30e3

	res, err := CalcChanFreqs(in, Request{Mode: "channel", OutFrame: "SOURCE"}, nil)
	if err != nil {
		t.Fatalf("CalcChanFreqs: %v", err)
	}

	ratio, _ := frame.Doppler{Velocity: -30e3, Convention: frame.ConventionRelativistic}.Ratio()
	if ratio <= 1 {
		t.Fatalf("ratio=%v want > 1 for a receding source", ratio)
	}

	for i, f := range in.Frequencies {
		if want := f * ratio; math.Abs(res.Frequencies[i]-want) > 1 {
			t.Fatalf("freq[%d]=%v want=%v", i, res.Frequencies[i], want)
		}
	}

	if math.Abs(res.WeightScale-1) > 1e-9 {
		t.Fatalf("weight scale=%v want 1", res.WeightScale)
	}
}

func TestCalcChanFreqsEmpty(t *testing.T) {
	res, err := CalcChanFreqs(ChanInput{}, Request{Mode: "channel"}, nil)
	if err != nil {
		t.Fatalf("CalcChanFreqs: %v", err)
	}

	if len(res.Frequencies) != 0 || len(res.Widths) != 0 {
		t.Fatalf("result=%+v want empty", res)
	}
}

func TestCalcChanFreqsErrors(t *testing.T) {
	short := topoInput(4)
	short.Widths = short.Widths[:3]

	tests := []struct {
		name string
		in   ChanInput
		req  Request
		conv frame.Converter
		want error
		kind ErrorKind
	}{
		{"outframe", topoInput(4), Request{Mode: "channel", OutFrame: "HELIO"}, nil, ErrInvalidFrame, KindInvalidInput},
		{"converter", topoInput(4), Request{Mode: "channel", OutFrame: "BARY"}, nil, ErrNoConverter, KindInvalidInput},
		{"table", topoInput(4), Request{Mode: "channel", OutFrame: "BARY"}, frame.VelocityTable{}, ErrInvalidFrame, KindInvalidInput},
		{"lengths", short, Request{Mode: "channel"}, nil, ErrLengthMismatch, KindInternal},
		{"mode", topoInput(4), Request{Mode: "bogus"}, nil, ErrInvalidMode, KindInvalidInput},
		{"restfreq", topoInput(4), Request{Mode: "velocity"}, nil, ErrRestFrequency, KindInvalidInput},
		{"regrid", topoInput(4), Request{Mode: "frequency", Width: "1MHz"}, nil, ErrChanWidthTooSmall, KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CalcChanFreqs(tt.in, tt.req, tt.conv)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v want %v", err, tt.want)
			}

			if res != nil {
				t.Fatalf("result=%+v want nil", res)
			}

			var se *Error
			if !errors.As(err, &se) || se.Kind != tt.kind {
				t.Fatalf("err=%#v want kind %v", err, tt.kind)
			}
		})
	}
}
