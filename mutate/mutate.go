// Package mutate perturbs bit trick coefficient triples.
package mutate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/davidssmith/fastsqrt"
	"gonum.org/v1/gonum/stat/distuv"
)

// Strategy identifies one way of perturbing a triple.
type Strategy int

const (
	// C1Normal moves c1 by a normal sample proportional to c1.
	C1Normal Strategy = iota
	// C1Uniform moves c1 by a uniform integer offset.
	C1Uniform
	// C2Scale multiplies c2 by 1 + normal sample.
	C2Scale
	// C3Scale multiplies c3 by 1 + normal sample.
	C3Scale
	// Jump redraws c1 and jointly scales c2 and c3 to escape local optima.
	Jump
	nstrategies
)

var strategyNames = [nstrategies]string{"c1normal", "c1uniform", "c2scale", "c3scale", "jump"}

func (s Strategy) String() string {
	if s < 0 || s >= nstrategies {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Weights holds the relative selection weight of each strategy.  They need
// not sum to one.
type Weights [nstrategies]float64

var (
	// EqualWeights selects every strategy with the same probability.
	EqualWeights = Weights{1, 1, 1, 1, 1}
	// ParamWeights spends 30% on each parameter and 10% on jumps.
	ParamWeights = Weights{0.3, 0, 0.3, 0.3, 0.1}
)

// Bounds is an inclusive clamping range for one parameter.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) Clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

const (
	DefaultC1Scale   = 1e-3
	DefaultC1Window  = 0xc000
	DefaultC2Scale   = 1e-2
	DefaultC3Scale   = 1e-2
	DefaultJumpScale = 0.1
)

var (
	// DefaultC1Jump is the range c1 is redrawn from by Jump.
	DefaultC1Jump = [2]uint32{0x5f000000, 0x5f600000}

	DefaultC1Bounds = Bounds{Min: 0x5f000000, Max: 0x5f600000}
	DefaultC2Bounds = Bounds{Min: 0.1, Max: 2}
	DefaultC3Bounds = Bounds{Min: 1, Max: 8}
)

// Mutator produces new triples from old ones.  A Mutator holds no random
// state and may be shared between goroutines; randomness comes from the
// generator passed to Mutate.
type Mutator struct {
	Weights Weights
	// C1Scale is the standard deviation of C1Normal relative to c1.
	C1Scale float64
	// C1Window is the width of the C1Uniform offset range centered on zero.
	C1Window uint32
	C2Scale  float64
	C3Scale  float64
	// JumpScale is the standard deviation of the c2 and c3 factors in Jump.
	JumpScale float64
	// C1Jump is the half-open range c1 is redrawn from in Jump.
	C1Jump [2]uint32
	// C1, C2 and C3 clamp the parameters after a perturbation.  Nil means
	// unclamped.
	C1, C2, C3 *Bounds
}

// Default returns a Mutator with equal strategy weights, the default scales
// and the default clamping bounds.
func Default() *Mutator {
	c1, c2, c3 := DefaultC1Bounds, DefaultC2Bounds, DefaultC3Bounds
	return &Mutator{
		Weights:   EqualWeights,
		C1Scale:   DefaultC1Scale,
		C1Window:  DefaultC1Window,
		C2Scale:   DefaultC2Scale,
		C3Scale:   DefaultC3Scale,
		JumpScale: DefaultJumpScale,
		C1Jump:    DefaultC1Jump,
		C1:        &c1,
		C2:        &c2,
		C3:        &c3,
	}
}

// Unclamped returns m with all clamping removed.
func (m Mutator) Unclamped() *Mutator {
	m.C1, m.C2, m.C3 = nil, nil, nil
	return &m
}

// Mutate returns a perturbed copy of c.
func (m *Mutator) Mutate(c fastsqrt.Coeffs, rng *rand.Rand) fastsqrt.Coeffs {
	c, _ = m.MutateStrategy(c, rng)
	return c
}

// MutateStrategy is Mutate but also reports which strategy was applied.
func (m *Mutator) MutateStrategy(c fastsqrt.Coeffs, rng *rand.Rand) (fastsqrt.Coeffs, Strategy) {
	s := m.choose(rng.Float64())
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	switch s {
	case C1Normal:
		c.C1 = addC1(c.C1, math.Round(float64(c.C1)*norm.Rand()*m.C1Scale))
	case C1Uniform:
		if m.C1Window > 0 {
			off := float64(rng.Uint32N(m.C1Window)) - float64(m.C1Window/2)
			c.C1 = addC1(c.C1, off)
		}
	case C2Scale:
		c.C2 *= float32(1 + norm.Rand()*m.C2Scale)
	case C3Scale:
		c.C3 *= float32(1 + norm.Rand()*m.C3Scale)
	case Jump:
		lo, hi := m.C1Jump[0], m.C1Jump[1]
		if hi > lo {
			c.C1 = lo + rng.Uint32N(hi-lo)
		}
		c.C2 *= float32(1 + norm.Rand()*m.JumpScale)
		c.C3 *= float32(1 + norm.Rand()*m.JumpScale)
	}
	return m.clamp(c), s
}

// choose maps a uniform draw r in [0, 1) to a strategy by cumulative weight.
func (m *Mutator) choose(r float64) Strategy {
	tot := 0.0
	for _, w := range m.Weights {
		if w < 0 {
			panic("mutate: negative strategy weight")
		}
		tot += w
	}
	if tot == 0 {
		panic("mutate: all strategy weights are zero")
	}

	r *= tot
	last := Strategy(0)
	for i, w := range m.Weights {
		if w == 0 {
			continue
		}
		last = Strategy(i)
		if r < w {
			return last
		}
		r -= w
	}
	return last // rounding pushed r past the final bucket
}

func (m *Mutator) clamp(c fastsqrt.Coeffs) fastsqrt.Coeffs {
	if m.C1 != nil {
		c.C1 = addC1(0, m.C1.Clamp(float64(c.C1)))
	}
	if m.C2 != nil {
		c.C2 = float32(m.C2.Clamp(float64(c.C2)))
	}
	if m.C3 != nil {
		c.C3 = float32(m.C3.Clamp(float64(c.C3)))
	}
	return c
}

// addC1 adds delta to c1 saturating at the uint32 range instead of wrapping.
func addC1(c1 uint32, delta float64) uint32 {
	v := float64(c1) + delta
	if v != v {
		return c1
	}
	return uint32(math.Max(0, math.Min(math.MaxUint32, v)))
}
