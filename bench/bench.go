// Package bench provides reference coefficient triples and tools for
// measuring how far a population improves on them.
package bench

import (
	"fmt"
	"time"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/pop"
)

// Ref is a known triple with its max relative error over [1, 4).
type Ref struct {
	Name string
	fastsqrt.Coeffs
	// MaxError is the published (or, lacking one, densely sampled) max
	// relative error.
	MaxError float32
}

var Known = []Ref{
	{Name: "Quake", Coeffs: fastsqrt.Quake, MaxError: 1.75228e-3},
	{Name: "Lomont", Coeffs: fastsqrt.Lomont, MaxError: 1.75128e-3},
	{Name: "Kadlec", Coeffs: fastsqrt.Kadlec, MaxError: 6.50196e-4},
	{Name: "BestMax", Coeffs: fastsqrt.BestMax, MaxError: 6.856e-4},
	{Name: "BestRMS", Coeffs: fastsqrt.BestRMS, MaxError: 1.0632e-3},
}

// Score evaluates every known triple with ev, in the order of Known.
func Score(ev fastsqrt.Evaler) ([]fastsqrt.Fitness, error) {
	cs := make([]fastsqrt.Coeffs, len(Known))
	for i, r := range Known {
		cs[i] = r.Coeffs
	}
	fs, _, err := fastsqrt.SerialEvaler{ContinueOnErr: true}.EvalAll(ev, cs...)
	return fs, err
}

type Result struct {
	Start, End pop.Snapshot
	// Gain is the start key value divided by the end key value.
	Gain    float32
	Elapsed time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("%v generations in %v, gain %.3fx: %v", r.End.Gen-r.Start.Gen, r.Elapsed, r.Gain, r.End)
}

// Benchmark evolves p for ngen generations and reports the improvement of
// the best candidate under key.
func Benchmark(p *pop.Population, key fastsqrt.Key, ngen int) (Result, error) {
	if ngen < 1 {
		panic("bench: need at least one generation")
	}

	r := Result{Start: p.Best()}
	t0 := time.Now()
	err := p.Evolve(ngen)
	r.Elapsed = time.Since(t0)
	r.End = p.Best()
	if end := key.Value(r.End.Fitness); end > 0 {
		r.Gain = key.Value(r.Start.Fitness) / end
	}
	return r, err
}
