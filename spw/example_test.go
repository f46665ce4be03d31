package spw_test

import (
	"fmt"

	"github.com/cwbudde/algo-spw/spw"
)

func ExampleRegridChanBounds() {
	freqs := []float64{1000e6, 1001e6, 1002e6, 1003e6, 1004e6, 1005e6}
	widths := []float64{1e6, 1e6, 1e6, 1e6, 1e6, 1e6}

	spec := spw.DefaultSpec(spw.QuantityChan)
	spec.ChanWidth = spw.Some(2)

	g, err := spw.RegridChanBounds(freqs, widths, spec)
	if err != nil {
		panic(err)
	}

	for _, b := range g.Channels {
		fmt.Printf("%.1f - %.1f MHz\n", b.Lo/1e6, b.Hi/1e6)
	}

	// Output:
	// 999.5 - 1001.5 MHz
	// 1001.5 - 1003.5 MHz
	// 1003.5 - 1005.5 MHz
}

func ExampleCombineSpws() {
	windows := []spw.Window{
		{
			ID:          0,
			Frequencies: []float64{100.0e9, 100.1e9, 100.2e9, 100.3e9},
			Widths:      []float64{0.1e9, 0.1e9, 0.1e9, 0.1e9},
		},
		{
			ID:          1,
			Frequencies: []float64{100.35e9, 100.45e9, 100.55e9},
			Widths:      []float64{0.1e9, 0.1e9, 0.1e9},
		},
	}

	res, err := spw.CombineSpws(windows, []int{spw.AllWindows})
	if err != nil {
		panic(err)
	}

	for i, f := range res.Window.Frequencies {
		fmt.Printf("%.3f GHz %v\n", f/1e9, res.Channels[i])
	}

	// Output:
	// 100.000 GHz [{0 0 1}]
	// 100.100 GHz [{0 1 1}]
	// 100.200 GHz [{0 2 1}]
	// 100.325 GHz [{0 3 1} {1 0 1}]
	// 100.450 GHz [{1 1 1}]
	// 100.550 GHz [{1 2 1}]
}

func ExampleConvertGridPars() {
	p, err := spw.ConvertGridPars(spw.Request{
		Mode:     "velocity",
		Start:    "-20km/s",
		Width:    "2.5km/s",
		RestFreq: "1420.405752MHz",
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(p.Spec.Quantity, p.Spec.Center, p.Spec.ChanWidth, p.Spec.StartIsEnd)

	// Output:
	// vrad -20000 2500 true
}
