package transform_test

import (
	"fmt"

	"github.com/cwbudde/algo-spw/transform"
)

func ExampleRegridder() {
	in := []float64{1000e6, 1001e6, 1002e6, 1003e6}
	out := []float64{1000.5e6, 1002.5e6, 1004e6}

	r, err := transform.NewRegridder(in, out, transform.MethodLinear)
	if err != nil {
		panic(err)
	}

	values := make([]float64, len(out))
	flags := make([]bool, len(out))

	if err := r.Apply(values, []float64{2, 4, 6, 8}); err != nil {
		panic(err)
	}

	if err := r.ApplyFlags(flags, nil); err != nil {
		panic(err)
	}

	for i := range out {
		fmt.Printf("%.1f MHz %.1f %v\n", out[i]/1e6, values[i], flags[i])
	}

	// Output:
	// 1000.5 MHz 3.0 false
	// 1002.5 MHz 7.0 false
	// 1004.0 MHz 8.0 true
}

func ExampleHanning() {
	smoothed := make([]float64, 5)
	if err := transform.Hanning(smoothed, []float64{0, 0, 4, 0, 0}); err != nil {
		panic(err)
	}

	fmt.Println(smoothed)

	// Output:
	// [0 1 2 1 0]
}
