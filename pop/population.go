// Package pop evolves populations of fast inverse square root coefficient
// triples.  Each generation the best candidates are kept, the rest are
// mutated and re-evaluated in parallel, the population is ranked and the
// ranking is used to refill the tail with copies of the elites.
package pop

import (
	"database/sql"
	"fmt"
	"runtime"
	"sort"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/interval"
	"github.com/davidssmith/fastsqrt/mutate"
	"github.com/sourcegraph/conc/pool"
)

// Seeds of candidate i are DefaultBase + i*DefaultStride unless a different
// SeedFunc is given.
const (
	DefaultBase   uint64 = 0x1337
	DefaultStride uint64 = 0xc0ffee
	DefaultSize          = 1000
)

// SeedFunc returns the seed of the i'th candidate of a new population.
type SeedFunc func(i int) uint64

func OffsetSeed(base, stride uint64) SeedFunc {
	return func(i int) uint64 { return base + uint64(i)*stride }
}

// Snapshot is the state of the best candidate at the end of a generation.
type Snapshot struct {
	Gen int
	fastsqrt.Coeffs
	fastsqrt.Fitness
	// Keep is the elite count used by the generation.
	Keep int
	// Failures is the number of evaluations that failed during the
	// generation.
	Failures int
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%6d. %v,%v", s.Gen, s.Fitness, s.Coeffs)
}

type ProgressFunc func(s Snapshot)

type Option func(p *Population)

// Evaluator sets the evaluator used to score candidates.  The default is
// an interval.Searcher with default settings.
func Evaluator(ev fastsqrt.Evaler) Option {
	return func(p *Population) { p.ev = ev }
}

func Mutation(m *mutate.Mutator) Option {
	return func(p *Population) { p.mut = m }
}

// Objective sets the fitness value the population minimizes.
func Objective(k fastsqrt.Key) Option {
	return func(p *Population) { p.key = k }
}

func Keep(fn KeepFunc) Option {
	return func(p *Population) { p.keep = fn }
}

// Workers bounds the number of candidates evaluated concurrently.
func Workers(n int) Option {
	if n < 1 {
		panic("pop: need at least one worker")
	}
	return func(p *Population) { p.workers = n }
}

// Progress calls fn with the best candidate every n generations.
func Progress(every int, fn ProgressFunc) Option {
	if every < 1 {
		panic("pop: progress interval must be positive")
	}
	return func(p *Population) {
		p.every = every
		p.progress = fn
	}
}

// DB records the best candidate and the ranking of every generation to db.
func DB(db *sql.DB) Option {
	return func(p *Population) { p.db = db }
}

// HallOfFame remembers the n best distinct triples seen during the run.
func HallOfFame(n int) Option {
	return func(p *Population) { p.hall = NewHall(n, p.key) }
}

// Cache memoizes evaluations so replicated triples are not searched twice.
// The cache holds at most one entry per candidate.
func Cache(on bool) Option {
	return func(p *Population) { p.cache = on }
}

type Population struct {
	cands    []*Candidate
	ev       fastsqrt.Evaler
	mut      *mutate.Mutator
	key      fastsqrt.Key
	keep     KeepFunc
	workers  int
	every    int
	progress ProgressFunc
	db       *sql.DB
	hall     *Hall
	cache    bool

	gen int
	// pending is the elite count of the last sort, whose replication is
	// applied at the start of the next generation.
	pending  int
	failures int
}

// New creates and evaluates a population of size candidates.  A nil seed
// creates entropy candidates starting from the Quake triple.  New panics if
// size is less than two or if the database tables cannot be created.
func New(size int, seed SeedFunc, opts ...Option) *Population {
	if size < 2 {
		panic("pop: population needs at least two candidates")
	}

	p := &Population{
		key:     fastsqrt.KeyRMS,
		keep:    FixedKeep(DefaultKeep),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ev == nil {
		p.ev = interval.New()
	}
	if p.mut == nil {
		p.mut = mutate.Default()
	}
	if p.cache {
		p.ev = fastsqrt.NewCacheEvaler(p.ev, size)
	}
	if p.hall != nil {
		// HallOfFame may have been given before Objective.
		p.hall.key = p.key
	}

	p.cands = make([]*Candidate, size)
	for i := range p.cands {
		if seed == nil {
			p.cands[i] = NewCandidateRand()
		} else {
			p.cands[i] = NewCandidate(seed(i))
		}
	}

	p.initdb()

	all := make([]int, size)
	for i := range all {
		all[i] = i
	}
	p.failures = p.step(all, false)
	p.rank()
	p.addHall(p.keepAt(0, 0))
	return p
}

func (p *Population) Len() int { return len(p.cands) }

// At returns the candidate of rank i.
func (p *Population) At(i int) *Candidate { return p.cands[i] }

// Generation returns the number of completed generations.
func (p *Population) Generation() int { return p.gen }

// Best returns the rank zero candidate.  Keep is zero before the first
// generation.
func (p *Population) Best() Snapshot { return p.snapshot(p.pending) }

// Hall returns the hall of fame from best to worst, or nil if the
// population keeps none.
func (p *Population) Hall() []Snapshot {
	if p.hall == nil {
		return nil
	}
	return p.hall.List()
}

// Evolve runs ngen generations.  If ngen is not positive, Evolve runs
// until the process is stopped.  Evaluation failures only penalize the
// failing candidates; an error is returned if recording fails.
func (p *Population) Evolve(ngen int) error {
	for t := 0; ngen <= 0 || t < ngen; t++ {
		if err := p.generation(t, ngen); err != nil {
			return err
		}
	}
	return nil
}

func (p *Population) generation(t, nt int) error {
	k := p.keepAt(t, nt)

	if p.pending > 0 {
		p.replicate(p.pending)
	}

	idx := make([]int, 0, len(p.cands)-k)
	for i := k; i < len(p.cands); i++ {
		idx = append(idx, i)
	}
	p.failures = p.step(idx, true)
	p.rank()
	p.pending = k
	p.gen++

	p.addHall(k)
	if err := p.updateDb(k); err != nil {
		return err
	}
	if p.progress != nil && p.gen%p.every == 0 {
		p.progress(p.snapshot(k))
	}
	return nil
}

// step evaluates the candidates at idx in parallel, mutating them first if
// perturb is set, and returns the number of failed evaluations.
func (p *Population) step(idx []int, perturb bool) int {
	wp := pool.New().WithMaxGoroutines(p.workers)
	for _, i := range idx {
		c := p.cands[i]
		if perturb {
			wp.Go(func() { c.Step(p.mut, p.ev) })
		} else {
			wp.Go(func() { c.Evaluate(p.ev) })
		}
	}
	wp.Wait()

	nfail := 0
	for _, i := range idx {
		if p.cands[i].Err != nil {
			nfail++
		}
	}
	return nfail
}

func (p *Population) rank() {
	sort.SliceStable(p.cands, func(i, j int) bool {
		a, b := p.cands[i], p.cands[j]
		return p.key.Less(a.Coeffs, a.Fitness, b.Coeffs, b.Fitness)
	})
}

// replicate overwrites every candidate of rank j >= 2k with the elite of
// rank j%k.
func (p *Population) replicate(k int) {
	for j := 2 * k; j < len(p.cands); j++ {
		p.cands[j].Copy(p.cands[j%k])
	}
}

func (p *Population) keepAt(t, nt int) int {
	return clampKeep(p.keep(t, nt), len(p.cands))
}

func (p *Population) snapshot(k int) Snapshot {
	best := p.cands[0]
	return Snapshot{
		Gen:      p.gen,
		Coeffs:   best.Coeffs,
		Fitness:  best.Fitness,
		Keep:     k,
		Failures: p.failures,
	}
}

func (p *Population) addHall(k int) {
	if p.hall == nil {
		return
	}
	for _, c := range p.cands[:k] {
		p.hall.Add(Snapshot{Gen: p.gen, Coeffs: c.Coeffs, Fitness: c.Fitness, Keep: k})
	}
}
