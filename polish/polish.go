// Package polish refines the Newton step coefficients of a triple with a
// local derivative-free search while holding the integer constant fixed.
package polish

import (
	"fmt"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/interval"
	"gonum.org/v1/gonum/optimize"
)

// SimplexSize is the initial Nelder-Mead simplex edge in (c2, c3).
const SimplexSize = 1e-2

// Polish minimizes key over (c2, c3) starting from c with at most maxeval
// evaluations of s.  It returns c and its fitness unchanged if no better
// triple is found.  Evaluation failures count as Penalty.
func Polish(c fastsqrt.Coeffs, s *interval.Searcher, key fastsqrt.Key, maxeval int) (fastsqrt.Coeffs, fastsqrt.Fitness, error) {
	start, err := s.Search(c)
	if err != nil {
		return c, start, fmt.Errorf("polish: starting point %v: %w", c, err)
	}
	if maxeval < 1 {
		return c, start, nil
	}

	best, bestf := c, start
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			trial := fastsqrt.Coeffs{C1: c.C1, C2: float32(x[0]), C3: float32(x[1])}
			f, err := s.Search(trial)
			if err != nil {
				return float64(fastsqrt.Penalty)
			}
			if key.Less(trial, f, best, bestf) {
				best, bestf = trial, f
			}
			return float64(key.Value(f))
		},
	}
	settings := &optimize.Settings{FuncEvaluations: maxeval}

	x0 := []float64{float64(c.C2), float64(c.C3)}
	_, err = optimize.Minimize(problem, x0, settings, &optimize.NelderMead{SimplexSize: SimplexSize})
	if err != nil {
		return best, bestf, fmt.Errorf("polish: %v: %w", c, err)
	}
	return best, bestf, nil
}
