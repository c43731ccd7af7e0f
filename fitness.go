package fastsqrt

import (
	"fmt"
	"math"
)

// Fitness summarizes the error of one coefficient triple over [Lo, Hi).
type Fitness struct {
	// MaxError is the largest error found, refined by peak finding.
	MaxError float32
	// MaxErrorLoc is the x position where MaxError occurs.
	MaxErrorLoc float32
	// RMSError is the root mean square of the coarse grid errors.
	RMSError float32
}

// Worst is the fitness of a candidate whose evaluation failed.
var Worst = Fitness{MaxError: Penalty, MaxErrorLoc: Lo, RMSError: Penalty}

func (f Fitness) String() string {
	return fmt.Sprintf("%.10f,%v,%e", f.MaxError, f.MaxErrorLoc, f.RMSError)
}

// Key selects which fitness value a population minimizes.
type Key int

const (
	KeyRMS Key = iota
	KeyMax
)

func (k Key) String() string {
	switch k {
	case KeyRMS:
		return "rms"
	case KeyMax:
		return "max"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey converts "rms" or "max" to a Key.
func ParseKey(s string) (Key, error) {
	switch s {
	case "rms":
		return KeyRMS, nil
	case "max":
		return KeyMax, nil
	}
	return 0, fmt.Errorf("unknown fitness key %q", s)
}

// Value returns the fitness value selected by k.
func (k Key) Value(f Fitness) float32 {
	if k == KeyMax {
		return f.MaxError
	}
	return f.RMSError
}

// other returns the tie breaking value for k.
func (k Key) other(f Fitness) float32 {
	if k == KeyMax {
		return f.RMSError
	}
	return f.MaxError
}

// Less orders (a, fa) before (b, fb) if fa is better under k.  Ties are
// broken by the other fitness value and then by the coefficient bits, which
// makes the order total and sorting reproducible.
func (k Key) Less(a Coeffs, fa Fitness, b Coeffs, fb Fitness) bool {
	if va, vb := k.Value(fa), k.Value(fb); va != vb {
		return va < vb
	}
	if va, vb := k.other(fa), k.other(fb); va != vb {
		return va < vb
	}
	if a.C1 != b.C1 {
		return a.C1 < b.C1
	}
	if a.C2 != b.C2 {
		return math.Float32bits(a.C2) < math.Float32bits(b.C2)
	}
	return math.Float32bits(a.C3) < math.Float32bits(b.C3)
}
