package main

import (
	"fmt"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/interval"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const nbins = 32

// plotCurve draws the coarse error of c over [1, 4).
func plotCurve(s *interval.Searcher, c fastsqrt.Coeffs, path string) error {
	p := plot.New()
	p.Title.Text = c.String()
	p.X.Label.Text = "x"
	p.Y.Label.Text = fmt.Sprintf("%v error", s.Mode)

	samples := s.Samples(c)
	pts := make(plotter.XYs, len(samples))
	for i, smp := range samples {
		pts[i].X = float64(smp.X)
		pts[i].Y = float64(smp.E)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// plotHist draws the histogram of the coarse errors of c as a step line.
func plotHist(s *interval.Searcher, c fastsqrt.Coeffs, path string) error {
	p := plot.New()
	p.Title.Text = c.String()
	p.X.Label.Text = fmt.Sprintf("%v error", s.Mode)
	p.Y.Label.Text = "Count"

	dividers, counts := s.Histogram(c, nbins)
	pts := make(plotter.XYs, 0, 2*len(counts))
	for i, n := range counts {
		pts = append(pts, plotter.XY{X: dividers[i], Y: n}, plotter.XY{X: dividers[i+1], Y: n})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
