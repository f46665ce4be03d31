package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-spw/spw"
	"github.com/cwbudde/algo-spw/spw/frame"
	"github.com/cwbudde/algo-spw/units"
)

// windowConfig describes one input spectral window. Either Frequencies and
// Widths list every channel, or Start, Width and NChan describe a uniform
// window.
type windowConfig struct {
	ID          int       `mapstructure:"id"`
	Frame       string    `mapstructure:"frame"`
	Start       string    `mapstructure:"start"`
	Width       string    `mapstructure:"width"`
	NChan       int       `mapstructure:"nchan"`
	Frequencies []float64 `mapstructure:"frequencies"`
	Widths      []float64 `mapstructure:"widths"`
	// Data holds one optional value per channel, regridded along with the
	// channels.
	Data []float64 `mapstructure:"data"`
}

type regridConfig struct {
	Mode          string `mapstructure:"mode"`
	NChan         int    `mapstructure:"nchan"`
	Start         string `mapstructure:"start"`
	Width         string `mapstructure:"width"`
	RestFreq      string `mapstructure:"restfreq"`
	OutFrame      string `mapstructure:"outframe"`
	VelType       string `mapstructure:"veltype"`
	Interpolation string `mapstructure:"interpolation"`
}

// requestConfig is the request file layout.
type requestConfig struct {
	Windows []windowConfig `mapstructure:"windows"`
	Combine []int          `mapstructure:"combine"`
	Regrid  regridConfig   `mapstructure:"regrid"`
	// Frames maps a frame name to its radial velocity relative to TOPO in m/s.
	Frames         map[string]float64 `mapstructure:"frames"`
	RadialVelocity float64            `mapstructure:"radial_velocity"`
}

func loadRequest(path string) (*requestConfig, error) {
	v := viper.New()
	v.SetDefault("regrid.mode", "channel")
	v.SetDefault("regrid.nchan", spw.NChanFill)

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "could not read request file %s", path)
		}
	}

	var cfg requestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode request file")
	}

	return &cfg, nil
}

func (c *requestConfig) request() spw.Request {
	r := c.Regrid

	return spw.Request{
		Mode:          r.Mode,
		NChan:         r.NChan,
		Start:         r.Start,
		Width:         r.Width,
		Interpolation: r.Interpolation,
		RestFreq:      r.RestFreq,
		OutFrame:      r.OutFrame,
		VelType:       r.VelType,
	}
}

func (c *requestConfig) converter() (frame.Converter, error) {
	if len(c.Frames) == 0 {
		return frame.Identity{}, nil
	}

	vt := make(frame.VelocityTable, len(c.Frames))

	for name, vel := range c.Frames {
		t, err := frame.Parse(name)
		if err != nil {
			return nil, errors.Wrapf(err, "frames: %s", name)
		}

		vt[t] = vel
	}

	return vt, nil
}

func (w windowConfig) window() (spw.Window, error) {
	win := spw.Window{ID: w.ID, Frame: frame.TypeTOPO}

	if w.Frame != "" {
		t, err := frame.Parse(strings.TrimSpace(w.Frame))
		if err != nil {
			return win, errors.Wrapf(err, "window %d", w.ID)
		}

		win.Frame = t
	}

	if len(w.Frequencies) > 0 {
		if len(w.Widths) != len(w.Frequencies) {
			return win, errors.Errorf("window %d: %d frequencies but %d widths",
				w.ID, len(w.Frequencies), len(w.Widths))
		}

		win.Frequencies = append([]float64(nil), w.Frequencies...)
		win.Widths = append([]float64(nil), w.Widths...)

		return win, nil
	}

	if w.NChan <= 0 {
		return win, errors.Errorf("window %d: nchan must be > 0 without a channel list", w.ID)
	}

	start, err := units.ParseIn(w.Start, "Hz")
	if err != nil {
		return win, errors.Wrapf(err, "window %d start", w.ID)
	}

	width, err := units.ParseIn(w.Width, "Hz")
	if err != nil {
		return win, errors.Wrapf(err, "window %d width", w.ID)
	}

	win.Frequencies = make([]float64, w.NChan)
	win.Widths = make([]float64, w.NChan)

	for i := range win.Frequencies {
		win.Frequencies[i] = start + float64(i)*width
		win.Widths[i] = width
	}

	return win, nil
}
