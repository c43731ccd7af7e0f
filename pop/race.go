package pop

import (
	"errors"

	"github.com/sourcegraph/conc"
)

// Race evolves a and b for ngen generations concurrently.  The populations
// must not share a candidate, cache or database.
func Race(a, b *Population, ngen int) error {
	if a == b {
		panic("pop: cannot race a population against itself")
	}

	var erra, errb error
	var wg conc.WaitGroup
	wg.Go(func() { erra = a.Evolve(ngen) })
	wg.Go(func() { errb = b.Evolve(ngen) })
	wg.Wait()
	return errors.Join(erra, errb)
}
