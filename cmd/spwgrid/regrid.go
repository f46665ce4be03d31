package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spw/spw"
	"github.com/cwbudde/algo-spw/transform"
)

// job is one window to regrid, with its optional channel data.
type job struct {
	win    spw.Window
	values []float64
	flags  []bool
}

type gridResult struct {
	id     int
	grid   *spw.ChanFreqs
	values []float64
	flags  []bool
}

func regrid(cfg *requestConfig, logger *log.Logger, verbose bool) ([]gridResult, error) {
	if len(cfg.Windows) == 0 {
		return nil, errors.New("request names no windows")
	}

	method, err := transform.ParseMethod(cfg.Regrid.Interpolation)
	if err != nil {
		return nil, errors.Wrap(err, "regrid interpolation")
	}

	conv, err := cfg.converter()
	if err != nil {
		return nil, err
	}

	opts := []spw.Option{spw.WithLogger(logger), spw.WithVerbose(verbose)}

	jobs, err := buildJobs(cfg, opts)
	if err != nil {
		return nil, err
	}

	req := cfg.request()
	results := make([]gridResult, len(jobs))

	var grp errgroup.Group

	for i, j := range jobs {
		grp.Go(func() error {
			res, err := spw.CalcChanFreqs(spw.ChanInput{
				Frequencies:    j.win.Frequencies,
				Widths:         j.win.Widths,
				Frame:          j.win.Frame,
				RadialVelocity: cfg.RadialVelocity,
			}, req, conv, opts...)
			if err != nil {
				return errors.Wrapf(err, "could not regrid spw %d", j.win.ID)
			}

			results[i] = gridResult{id: j.win.ID, grid: res}
			if j.values == nil || len(res.Frequencies) == 0 {
				return nil
			}

			if err := results[i].interpolate(j, method); err != nil {
				return errors.Wrapf(err, "could not interpolate spw %d", j.win.ID)
			}

			logger.Debugf("spw %d: %s interpolation onto %d channels", j.win.ID, method, len(res.Frequencies))

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// buildJobs turns the request windows into regrid jobs. Window data is
// keyed by position in the request, which is how spw.CombineSpws refers
// to windows; request ids are only used to select and label them.
func buildJobs(cfg *requestConfig, opts []spw.Option) ([]job, error) {
	windows := make([]spw.Window, len(cfg.Windows))
	data := make(map[int][]float64)
	index := make(map[int]int, len(cfg.Windows))

	for i, wc := range cfg.Windows {
		w, err := wc.window()
		if err != nil {
			return nil, err
		}

		if _, dup := index[w.ID]; dup {
			return nil, errors.Errorf("window id %d used twice", w.ID)
		}

		index[w.ID] = i

		if len(wc.Data) > 0 {
			if len(wc.Data) != w.NumChannels() {
				return nil, errors.Errorf("window %d: %d data values for %d channels",
					w.ID, len(wc.Data), w.NumChannels())
			}

			data[i] = wc.Data
		}

		windows[i] = w
	}

	if len(cfg.Combine) == 0 {
		jobs := make([]job, len(windows))
		for i, w := range windows {
			jobs[i] = job{win: w, values: data[i]}
		}

		return jobs, nil
	}

	sel, err := selectWindows(cfg.Combine, index)
	if err != nil {
		return nil, err
	}

	comb, err := spw.CombineSpws(windows, sel, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not combine windows")
	}

	j := job{win: comb.Window}

	var missing []int

	for _, i := range comb.Order {
		if _, ok := data[i]; !ok {
			missing = append(missing, windows[i].ID)
		}
	}

	switch {
	case len(missing) == len(comb.Order):
		return []job{j}, nil
	case len(missing) > 0:
		return nil, errors.Errorf("cannot combine data: windows %v have no data", missing)
	}

	j.values, j.flags, err = transform.Combine(comb.Channels, data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not combine window data")
	}

	return []job{j}, nil
}

// selectWindows maps request window ids to positions in the window list.
func selectWindows(ids []int, index map[int]int) ([]int, error) {
	if len(ids) == 1 && ids[0] == spw.AllWindows {
		return ids, nil
	}

	sel := make([]int, len(ids))

	for k, id := range ids {
		i, ok := index[id]
		if !ok {
			return nil, errors.Errorf("combine: no window with id %d", id)
		}

		sel[k] = i
	}

	return sel, nil
}

func (g *gridResult) interpolate(j job, method transform.Method) error {
	r, err := transform.NewRegridder(g.grid.InputFrequencies, g.grid.Frequencies, method)
	if err != nil {
		return err
	}

	g.values = make([]float64, r.Len())
	g.flags = make([]bool, r.Len())

	if err := r.Apply(g.values, j.values); err != nil {
		return err
	}

	return r.ApplyFlags(g.flags, j.flags)
}
