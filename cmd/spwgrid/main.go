// Command spwgrid computes the channel grid of regridded spectral windows.
//
// Usage:
//
//	spwgrid [flags]
//
// The input windows and the regrid parameters come from a request file
// (YAML, TOML or JSON). Regrid flags override the file.
//
// Examples:
//
//	spwgrid -config request.yaml
//	spwgrid -config request.yaml -mode velocity -start -20km/s -width 2.5km/s -restfreq 1420.405752MHz
//	spwgrid -config request.yaml -combine all -outframe LSRK
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-spw/spw"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, log.StandardLogger()); err != nil {
		log.Errorf("spwgrid: %v", err)
		os.Exit(1)
	}
}

type options struct {
	config   string
	combine  string
	logLevel string
	verbose  bool
	regrid   regridConfig
}

func parseFlags(args []string) (*options, *flag.FlagSet, error) {
	o := &options{}
	fs := flag.NewFlagSet("spwgrid", flag.ContinueOnError)

	fs.StringVar(&o.config, "config", "", "request file (yaml, toml or json)")
	fs.StringVar(&o.combine, "combine", "", "comma-separated window ids to combine first, or \"all\"")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&o.verbose, "verbose", false, "log every regrid note")
	fs.StringVar(&o.regrid.Mode, "mode", "", "regrid mode: channel, channel_b, frequency or velocity")
	fs.IntVar(&o.regrid.NChan, "nchan", 0, "number of output channels (-1 fills the window)")
	fs.StringVar(&o.regrid.Start, "start", "", "start of the output grid")
	fs.StringVar(&o.regrid.Width, "width", "", "output channel width")
	fs.StringVar(&o.regrid.RestFreq, "restfreq", "", "rest frequency for velocity mode")
	fs.StringVar(&o.regrid.OutFrame, "outframe", "", "output reference frame")
	fs.StringVar(&o.regrid.VelType, "veltype", "", "velocity definition: radio or optical")
	fs.StringVar(&o.regrid.Interpolation, "interpolation", "", "interpolation method: nearest, linear, cubic, spline or fftshift")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: spwgrid [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Computes the channel grid of regridded spectral windows.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nExamples:\n")
		fmt.Fprintf(fs.Output(), "  spwgrid -config request.yaml\n")
		fmt.Fprintf(fs.Output(), "  spwgrid -config request.yaml -combine all -outframe LSRK\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return o, fs, nil
}

// override copies every regrid flag given on the command line into cfg.
func (o *options) override(fs *flag.FlagSet, cfg *regridConfig) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = o.regrid.Mode
		case "nchan":
			cfg.NChan = o.regrid.NChan
		case "start":
			cfg.Start = o.regrid.Start
		case "width":
			cfg.Width = o.regrid.Width
		case "restfreq":
			cfg.RestFreq = o.regrid.RestFreq
		case "outframe":
			cfg.OutFrame = o.regrid.OutFrame
		case "veltype":
			cfg.VelType = o.regrid.VelType
		case "interpolation":
			cfg.Interpolation = o.regrid.Interpolation
		}
	})
}

func parseIDs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.EqualFold(s, "all") {
		return []int{spw.AllWindows}, nil
	}

	var ids []int

	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid window id %q", part)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	o, fs, err := parseFlags(args)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid -log-level")
	}

	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	cfg, err := loadRequest(o.config)
	if err != nil {
		return err
	}

	o.override(fs, &cfg.Regrid)

	if o.combine != "" {
		if cfg.Combine, err = parseIDs(o.combine); err != nil {
			return err
		}
	}

	results, err := regrid(cfg, logger, o.verbose)
	if err != nil {
		return err
	}

	return printGrids(stdout, results)
}
