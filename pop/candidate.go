package pop

import (
	"math/rand/v2"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/mutate"
)

// Candidate is one member of a population.  It owns its random number
// generator, which is never shared with other candidates.
type Candidate struct {
	fastsqrt.Coeffs
	fastsqrt.Fitness
	// Seed is the seed the candidate's generator was created from.  It is
	// zero for entropy candidates.
	Seed uint64
	// Err holds the failure of the most recent evaluation, if any.
	Err error
	rng *rand.Rand
}

// NewCandidate creates a candidate whose generator and initial
// coefficients are fully determined by seed.  A single uniform draw picks,
// with equal probability, the best known max error triple, the best known
// RMS triple, Kadlec's triple or a random triple.  The candidate is not
// evaluated; its fitness is Worst until Evaluate is called.
func NewCandidate(seed uint64) *Candidate {
	rng := fastsqrt.NewRand(seed)
	var c fastsqrt.Coeffs
	switch r := rng.Float64(); {
	case r < 0.25:
		c = fastsqrt.BestMax
	case r < 0.5:
		c = fastsqrt.BestRMS
	case r < 0.75:
		c = fastsqrt.Kadlec
	default:
		c = fastsqrt.Random(rng)
	}
	return &Candidate{Coeffs: c, Fitness: fastsqrt.Worst, Seed: seed, rng: rng}
}

// NewCandidateRand creates a candidate with an entropy seeded generator
// starting from the Quake triple.
func NewCandidateRand() *Candidate {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return &Candidate{Coeffs: fastsqrt.Quake, Fitness: fastsqrt.Worst, rng: rng}
}

// Evaluate recomputes the candidate's fitness.  On failure the fitness is
// set to Worst and the error is stored in Err as well as returned.
func (c *Candidate) Evaluate(ev fastsqrt.Evaler) error {
	f, err := ev.Eval(c.Coeffs)
	if err != nil {
		c.Fitness, c.Err = fastsqrt.Worst, err
		return err
	}
	c.Fitness, c.Err = f, nil
	return nil
}

// Step mutates the candidate with its own generator and re-evaluates it.
func (c *Candidate) Step(m *mutate.Mutator, ev fastsqrt.Evaler) error {
	c.Coeffs = m.Mutate(c.Coeffs, c.rng)
	return c.Evaluate(ev)
}

// Copy overwrites c's coefficients and fitness with those of from.  The
// generator and seed of c are untouched.
func (c *Candidate) Copy(from *Candidate) {
	c.Coeffs = from.Coeffs
	c.Fitness = from.Fitness
	c.Err = from.Err
}

func (c *Candidate) String() string {
	return c.Fitness.String() + "," + c.Coeffs.String()
}
