/*
DESCRIPTION
  timings.go provides recording, summarising and plotting of per frame
  processing times.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package driver

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/utils/logging"
)

// Plot dimensions.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// Timings holds processing times in milliseconds, in the order they were
// recorded.
type Timings struct {
	ms []float64
}

// Add records d.
func (t *Timings) Add(d time.Duration) {
	t.ms = append(t.ms, float64(d)/float64(time.Millisecond))
}

// Len returns the number of recorded times.
func (t *Timings) Len() int { return len(t.ms) }

// Summary describes a set of processing times, in milliseconds.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P95    float64 // 95th percentile.
}

// Summary returns a summary of the recorded times. The zero Summary is
// returned if nothing has been recorded.
func (t *Timings) Summary() Summary {
	n := len(t.ms)
	if n == 0 {
		return Summary{}
	}
	s := Summary{N: n, Min: floats.Min(t.ms), Max: floats.Max(t.ms)}
	if n == 1 {
		s.Mean = t.ms[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(t.ms, nil)
	}

	sorted := append([]float64(nil), t.ms...)
	sort.Float64s(sorted)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}

// Plot saves a line plot of processing time against frame to path. The
// image format is taken from the file extension.
func (t *Timings) Plot(path string) error {
	if len(t.ms) == 0 {
		return errors.New("no timings to plot")
	}
	p := plot.New()
	p.Title.Text = "Processing time"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Time (ms)"

	pts := make(plotter.XYs, len(t.ms))
	for i, v := range t.ms {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "could not create line")
	}
	p.Add(line, plotter.NewGrid())

	err = p.Save(plotWidth, plotHeight, path)
	if err != nil {
		return errors.Wrap(err, "could not save plot")
	}
	return nil
}

// Log writes the summary of the recorded times to l.
func (t *Timings) Log(l logging.Logger) {
	s := t.Summary()
	l.Info("processing time summary",
		"frames", s.N,
		"meanMS", s.Mean,
		"stdDevMS", s.StdDev,
		"minMS", s.Min,
		"maxMS", s.Max,
		"p95MS", s.P95,
	)
}
