// Package interval evaluates the fitness of bit trick coefficients by
// scanning the error over [1, 4) on a coarse grid and refining the largest
// samples with the peak finder.
package interval

import (
	"fmt"
	"math"
	"sort"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/peak"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultNDiv      = 512
	DefaultNRefine   = 4
	DefaultHalfWidth = 2
)

// Sample is the error E of a triple at grid position X.
type Sample struct {
	X, E float32
}

// Searcher computes fitness values.  A Searcher is not modified by Search
// and may be shared between goroutines.
type Searcher struct {
	// NDiv is the number of coarse grid points over [1, 4).
	NDiv int
	// NRefine is the number of largest coarse samples refined with the peak
	// finder.
	NRefine int
	// HalfWidth is the half-width, in grid steps, of the bracket built around
	// each refined sample.
	HalfWidth int
	Mode      fastsqrt.Mode
	// Step is the slope step handed to the peak finder.
	Step float32
	grid   Grid
	finder *peak.Finder
}

type Option func(*Searcher)

func NDiv(n int) Option {
	return func(s *Searcher) {
		s.NDiv = n
	}
}

func Refine(n int) Option {
	return func(s *Searcher) {
		s.NRefine = n
	}
}

func HalfWidth(n int) Option {
	return func(s *Searcher) {
		s.HalfWidth = n
	}
}

func Mode(m fastsqrt.Mode) Option {
	return func(s *Searcher) {
		s.Mode = m
	}
}

func Step(dx float32) Option {
	return func(s *Searcher) {
		s.Step = dx
	}
}

func New(opts ...Option) *Searcher {
	s := &Searcher{
		NDiv:      DefaultNDiv,
		NRefine:   DefaultNRefine,
		HalfWidth: DefaultHalfWidth,
		Mode:      fastsqrt.Relative,
		Step:      fastsqrt.DefaultSlopeStep,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.NRefine < 0 || s.NRefine > s.NDiv {
		panic(fmt.Sprintf("interval: cannot refine %v of %v samples", s.NRefine, s.NDiv))
	} else if s.HalfWidth < 1 {
		panic("interval: bracket half-width must be at least one grid step")
	}
	s.grid = NewGrid(fastsqrt.Lo, fastsqrt.Hi, s.NDiv)
	s.finder = peak.New(peak.Step(s.Step))
	return s
}

// Samples returns the error of c at every coarse grid point in increasing x
// order.
func (s *Searcher) Samples(c fastsqrt.Coeffs) []Sample {
	samples := make([]Sample, s.grid.N)
	for i := range samples {
		x := s.grid.At(i)
		samples[i] = Sample{X: x, E: fastsqrt.Error(x, c, s.Mode)}
	}
	return samples
}

// Eval implements fastsqrt.Evaler.
func (s *Searcher) Eval(c fastsqrt.Coeffs) (fastsqrt.Fitness, error) { return s.Search(c) }

// Search computes the fitness of c.  Every coarse sample contributes to the
// RMS error.  The NRefine largest samples are then checked for a bracketed
// peak (slope rising on the left and falling on the right of the sample) and
// refined with the peak finder; samples that do not bracket a peak (domain
// edges, kinks between grid points) keep their coarse value.  A peak finder
// failure on a verified bracket means fitness cannot be trusted: the error
// is returned along with fastsqrt.Worst.
func (s *Searcher) Search(c fastsqrt.Coeffs) (fastsqrt.Fitness, error) {
	samples := s.Samples(c)

	errs := make([]float64, len(samples))
	for i, smp := range samples {
		errs[i] = float64(smp.E)
	}
	rms := float32(math.Sqrt(floats.Dot(errs, errs) / float64(len(errs))))

	sort.SliceStable(samples, func(i, j int) bool { return samples[i].E > samples[j].E })

	fit := fastsqrt.Fitness{
		MaxError:    samples[0].E,
		MaxErrorLoc: samples[0].X,
		RMSError:    rms,
	}

	fn := peak.Coeffs(c, s.Mode)
	delta := float32(s.HalfWidth) * s.grid.Step()
	for _, smp := range samples[:s.NRefine] {
		x1, x2 := smp.X-delta, smp.X+delta
		rising := fastsqrt.Slope(x1, c, s.Mode, s.Step) > 0
		falling := fastsqrt.Slope(x2, c, s.Mode, s.Step) < 0
		if !rising || !falling {
			continue
		}

		res, err := s.finder.Find(fn, x1, x2)
		if err != nil {
			return fastsqrt.Worst, fmt.Errorf("interval: refining peak near x=%v for %v: %w", smp.X, c, err)
		}
		if res.Y > fit.MaxError {
			fit.MaxError = res.Y
			fit.MaxErrorLoc = res.X
		}
	}
	return fit, nil
}

// Histogram bins the coarse grid errors of c into nbins equal bins spanning
// [0, max error].  It returns the nbins+1 bin dividers and the counts.
func (s *Searcher) Histogram(c fastsqrt.Coeffs, nbins int) (dividers, counts []float64) {
	if nbins < 1 {
		panic("interval: histogram needs at least one bin")
	}

	samples := s.Samples(c)
	x := make([]float64, len(samples))
	for i, smp := range samples {
		x[i] = float64(smp.E)
	}
	sort.Float64s(x)

	hi := x[len(x)-1]
	if hi <= 0 {
		hi = 1
	}
	dividers = floats.Span(make([]float64, nbins+1), 0, hi)
	// the largest error must fall strictly below the last divider
	dividers[nbins] = math.Nextafter(hi, math.Inf(1))
	counts = stat.Histogram(nil, dividers, x, nil)
	return dividers, counts
}
