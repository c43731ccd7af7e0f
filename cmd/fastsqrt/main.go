// Command fastsqrt evolves fast inverse square root coefficients.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/bench"
	"github.com/davidssmith/fastsqrt/interval"
	"github.com/davidssmith/fastsqrt/mutate"
	"github.com/davidssmith/fastsqrt/polish"
	"github.com/davidssmith/fastsqrt/pop"
	_ "github.com/mxk/go-sqlite/sqlite3"
)

var (
	ngen     = flag.Int("gen", 1000, "number of generations (0 runs until killed)")
	npop     = flag.Int("pop", pop.DefaultSize, "population size")
	nkeep    = flag.Int("keep", pop.DefaultKeep, "elite candidates kept each generation")
	keepend  = flag.Int("keepend", 0, "if positive, shrink the elite count linearly to this value")
	seed     = flag.Uint64("seed", pop.DefaultBase, "seed of the first candidate")
	stride   = flag.Uint64("stride", pop.DefaultStride, "seed increment between candidates")
	entropy  = flag.Bool("entropy", false, "seed candidates from entropy, starting at the Quake triple")
	objflag  = flag.String("objective", "rms", "fitness to minimize: rms|max")
	modeflag = flag.String("mode", "relative", "error definition: relative|absolute")
	weights  = flag.String("weights", "equal", "mutation weights: equal|param")
	ndiv     = flag.Int("ndiv", interval.DefaultNDiv, "coarse grid points over [1, 4)")
	nrefine  = flag.Int("refine", interval.DefaultNRefine, "coarse maxima refined by bisection")
	workers  = flag.Int("workers", runtime.GOMAXPROCS(0), "concurrent evaluations")
	every    = flag.Int("every", 10, "log the best candidate every n generations")
	dbpath   = flag.String("db", "", "record generations to this sqlite file")
	plotpath = flag.String("plot", "", "plot the error curve and histogram of the best triple to <prefix>-curve.png and <prefix>-hist.png")
	race     = flag.Bool("race", false, "also evolve a population minimizing the other objective and compare")
	npolish  = flag.Int("polish", 0, "polish the best triple's (c2, c3) with this many evaluations")
	nhall    = flag.Int("hall", 10, "size of the hall of fame (0 disables it)")
	cache    = flag.Bool("cache", false, "memoize evaluations, at most one per candidate")
	known    = flag.Bool("known", false, "print the known triples and exit")
	verbose  = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log); err != nil {
		log.Error("fastsqrt failed", "err", err)
		os.Exit(1)
	}
}

// checkFlags rejects values the packages would panic on.
func checkFlags() error {
	switch {
	case *npop < 2:
		return fmt.Errorf("population size %v is below 2", *npop)
	case *nkeep < 1:
		return fmt.Errorf("keep %v is below 1", *nkeep)
	case *every < 1:
		return fmt.Errorf("log interval -every %v is below 1", *every)
	case *workers < 1:
		return fmt.Errorf("worker count %v is below 1", *workers)
	case *nhall < 0:
		return fmt.Errorf("hall of fame size %v is negative", *nhall)
	case *ndiv < 1:
		return fmt.Errorf("grid size %v is below 1", *ndiv)
	case *nrefine < 0 || *nrefine > *ndiv:
		return fmt.Errorf("cannot refine %v of %v grid points", *nrefine, *ndiv)
	}
	return nil
}

func run(log *slog.Logger) error {
	if err := checkFlags(); err != nil {
		return err
	}
	key, err := fastsqrt.ParseKey(*objflag)
	if err != nil {
		return err
	}
	mode, err := fastsqrt.ParseMode(*modeflag)
	if err != nil {
		return err
	}
	s := interval.New(interval.NDiv(*ndiv), interval.Refine(*nrefine), interval.Mode(mode))

	if *known {
		return printKnown(s)
	}

	var ev fastsqrt.Evaler = s
	if *verbose {
		fp := fastsqrt.NewFitnessPrinter(s)
		fp.W = slog.NewLogLogger(log.Handler(), slog.LevelDebug).Writer()
		ev = fp
	}

	m := mutate.Default()
	switch *weights {
	case "equal":
	case "param":
		m.Weights = mutate.ParamWeights
	default:
		return fmt.Errorf("unknown mutation weights %q", *weights)
	}

	var db *sql.DB
	if *dbpath != "" {
		db, err = sql.Open("sqlite3", *dbpath)
		if err != nil {
			return err
		}
		defer db.Close()
		db.SetMaxOpenConns(1)
	}

	newPop := func(k fastsqrt.Key, db *sql.DB) *pop.Population {
		keep := pop.FixedKeep(*nkeep)
		if *keepend > 0 {
			keep = pop.LinKeep(*nkeep, *keepend)
		}
		var seedfn pop.SeedFunc
		if !*entropy {
			seedfn = pop.OffsetSeed(*seed, *stride)
		}
		opts := []pop.Option{
			pop.Evaluator(ev),
			pop.Mutation(m),
			pop.Objective(k),
			pop.Keep(keep),
			pop.Workers(*workers),
			pop.Cache(*cache),
			pop.Progress(*every, func(snap pop.Snapshot) {
				log.Info("progress", "objective", k, "best", snap, "keep", snap.Keep, "failures", snap.Failures)
			}),
		}
		if *nhall > 0 {
			opts = append(opts, pop.HallOfFame(*nhall))
		}
		if db != nil {
			opts = append(opts, pop.DB(db))
		}
		return pop.New(*npop, seedfn, opts...)
	}

	log.Debug("creating population", "size", *npop, "objective", key, "mode", mode, "workers", *workers)
	p := newPop(key, db)
	log.Info("initial", "best", p.Best())

	if *race {
		other := newPop(otherKey(key), nil)
		if err := pop.Race(p, other, *ngen); err != nil {
			return err
		}
		log.Info("race", "objective", otherKey(key), "best", other.Best())
	} else if *ngen > 0 {
		r, err := bench.Benchmark(p, key, *ngen)
		if err != nil {
			return err
		}
		log.Info("evolved", "generations", r.End.Gen-r.Start.Gen, "elapsed", r.Elapsed, "gain", r.Gain,
			"start", r.Start, "end", r.End)
	} else if err := p.Evolve(*ngen); err != nil {
		return err
	}

	best := p.Best()
	log.Info("final", "objective", key, "best", best)
	for i, h := range p.Hall() {
		log.Debug("hall of fame", "rank", i, "entry", h)
	}

	c, f := best.Coeffs, best.Fitness
	if *npolish > 0 {
		c, f, err = polish.Polish(c, s, key, *npolish)
		if err != nil {
			return err
		}
		log.Info("polished", "coeffs", c, "fitness", f)
	}
	fmt.Printf("%v,%v\n", f, c)

	if *plotpath != "" {
		if err := plotCurve(s, c, *plotpath+"-curve.png"); err != nil {
			return err
		}
		if err := plotHist(s, c, *plotpath+"-hist.png"); err != nil {
			return err
		}
		log.Info("wrote plots", "prefix", *plotpath)
	}
	return nil
}

func otherKey(k fastsqrt.Key) fastsqrt.Key {
	if k == fastsqrt.KeyMax {
		return fastsqrt.KeyRMS
	}
	return fastsqrt.KeyMax
}

func printKnown(s *interval.Searcher) error {
	fs, err := bench.Score(s)
	for i, r := range bench.Known {
		fmt.Printf("%-8v %v,%v  published %v\n", r.Name, fs[i], r.Coeffs, r.MaxError)
	}
	return err
}
