package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
)

func printGrids(w io.Writer, results []gridResult) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return errors.Wrap(err, "failed to write output")
			}
		}

		if err := printGrid(w, r); err != nil {
			return err
		}
	}

	return nil
}

func printGrid(w io.Writer, r gridResult) error {
	g := r.grid

	if _, err := fmt.Fprintf(w, "spw %d: %d channels, frame %v, weight scale %.6g\n",
		r.id, len(g.Frequencies), g.Frame, g.WeightScale); err != nil {
		return errors.Wrap(err, "failed to write output header")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "Chan\tCenter [Hz]\tWidth [Hz]\tLower [Hz]\tUpper [Hz]"
	rule := "----\t-----------\t----------\t----------\t----------"

	if r.values != nil {
		header += "\tValue\tFlag"
		rule += "\t-----\t----"
	}

	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return errors.Wrap(err, "failed to write table header")
	}

	for k, b := range g.Bounds {
		row := fmt.Sprintf("%d\t%.3f\t%.3f\t%.3f\t%.3f", k, g.Frequencies[k], g.Widths[k], b.Lo, b.Hi)
		if r.values != nil {
			row += fmt.Sprintf("\t%.6g\t%v", r.values[k], r.flags[k])
		}

		if _, err := fmt.Fprintln(tw, row); err != nil {
			return errors.Wrap(err, "failed to write table row")
		}
	}

	return errors.Wrap(tw.Flush(), "failed to flush output")
}
