package fastsqrt

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
)

type Evaler interface {
	// Eval computes the fitness of c.  If the evaluation fails, Worst
	// should be returned along with an error.  Eval must be deterministic:
	// evaluating the same coefficients twice gives bit-identical results.
	Eval(c Coeffs) (Fitness, error)
}

// EvalFunc adapts an ordinary function to the Evaler interface.
type EvalFunc func(Coeffs) (Fitness, error)

func (fn EvalFunc) Eval(c Coeffs) (Fitness, error) { return fn(c) }

func hashCoeffs(c Coeffs) [sha1.Size]byte {
	var data [12]byte
	binary.BigEndian.PutUint32(data[0:], c.C1)
	binary.BigEndian.PutUint32(data[4:], math.Float32bits(c.C2))
	binary.BigEndian.PutUint32(data[8:], math.Float32bits(c.C3))
	return sha1.Sum(data[:])
}

// CacheEvaler memoizes successful evaluations of ev.  It is safe for
// concurrent use.  A cache created with a positive limit is emptied whenever
// it holds limit entries, so its size never exceeds limit.
type CacheEvaler struct {
	ev    Evaler
	limit int
	mu    sync.RWMutex
	cache map[[sha1.Size]byte]Fitness
	hits  int
}

// NewCacheEvaler returns a cache in front of ev holding at most limit
// entries, or any number if limit is not positive.
func NewCacheEvaler(ev Evaler, limit int) *CacheEvaler {
	return &CacheEvaler{
		ev:    ev,
		limit: limit,
		cache: map[[sha1.Size]byte]Fitness{},
	}
}

func (ev *CacheEvaler) Eval(c Coeffs) (Fitness, error) {
	h := hashCoeffs(c)
	ev.mu.RLock()
	f, ok := ev.cache[h]
	ev.mu.RUnlock()
	if ok {
		ev.mu.Lock()
		ev.hits++
		ev.mu.Unlock()
		return f, nil
	}

	f, err := ev.ev.Eval(c)
	if err != nil {
		return f, err
	}
	ev.mu.Lock()
	if ev.limit > 0 && len(ev.cache) >= ev.limit {
		clear(ev.cache)
	}
	ev.cache[h] = f
	ev.mu.Unlock()
	return f, nil
}

// Stats returns the number of cached triples and cache hits so far.
func (ev *CacheEvaler) Stats() (size, hits int) {
	ev.mu.RLock()
	defer ev.mu.RUnlock()
	return len(ev.cache), ev.hits
}

type SerialEvaler struct {
	ContinueOnErr bool
}

// EvalAll evaluates each triple in order and returns the results and the
// number of evaluations n.  Unless ContinueOnErr is set, it stops at the
// first error and returns the results so far including the failed one.
func (se SerialEvaler) EvalAll(ev Evaler, cs ...Coeffs) (results []Fitness, n int, err error) {
	results = make([]Fitness, 0, len(cs))
	var firsterr error
	for _, c := range cs {
		f, err := ev.Eval(c)
		results = append(results, f)
		if err != nil && !se.ContinueOnErr {
			return results, len(results), err
		} else if err != nil && firsterr == nil {
			firsterr = err
		}
	}
	return results, len(results), firsterr
}

// FitnessPrinter wraps an Evaler and prints every evaluation to W (stdout
// if nil).
type FitnessPrinter struct {
	Evaler
	W     io.Writer
	mu    sync.Mutex
	Count int
}

func NewFitnessPrinter(ev Evaler) *FitnessPrinter {
	return &FitnessPrinter{Evaler: ev}
}

func (fp *FitnessPrinter) Eval(c Coeffs) (Fitness, error) {
	f, err := fp.Evaler.Eval(c)

	fp.mu.Lock()
	defer fp.mu.Unlock()
	w := fp.W
	if w == nil {
		w = os.Stdout
	}
	fp.Count++
	fmt.Fprintf(w, "%v %v     %v\n", fp.Count, c, f)
	return f, err
}
