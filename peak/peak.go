// Package peak locates the maximum of a one dimensional function inside a
// bracket by bisecting on the sign of its finite difference slope.
package peak

import (
	"errors"
	"math"

	"github.com/davidssmith/fastsqrt"
)

var (
	ErrBracket    = errors.New("peak: interval does not bracket a maximum")
	ErrNaN        = errors.New("peak: slope is NaN")
	ErrNoConverge = errors.New("peak: bisection did not converge")
)

// DefaultMaxIter bounds the bisection.  A valid float32 bracket collapses in
// fewer than 30 halvings, so reaching it means the function is misbehaving.
const DefaultMaxIter = 64

// Func is the function whose maximum is searched for.
type Func func(x float32) float32

// Coeffs returns the error of the bit trick approximation with coefficients
// c as a Func.
func Coeffs(c fastsqrt.Coeffs, mode fastsqrt.Mode) Func {
	return func(x float32) float32 { return fastsqrt.Error(x, c, mode) }
}

// Result describes a located peak.
type Result struct {
	// X and Y are the location and value of the peak.
	X, Y float32
	// Lo and Hi are the final bracket around X.
	Lo, Hi float32
	// Iter is the number of bisection steps taken.
	Iter int
}

type Finder struct {
	// Step is the half-width of the symmetric difference used for slopes.
	Step    float32
	MaxIter int
}

type Option func(*Finder)

func Step(dx float32) Option {
	return func(fd *Finder) {
		fd.Step = dx
	}
}

func MaxIter(n int) Option {
	return func(fd *Finder) {
		fd.MaxIter = n
	}
}

func New(opts ...Option) *Finder {
	fd := &Finder{Step: fastsqrt.DefaultSlopeStep, MaxIter: DefaultMaxIter}
	for _, opt := range opts {
		opt(fd)
	}
	if fd.Step <= 0 {
		panic("peak: slope step must be positive")
	}
	return fd
}

// Find is shorthand for New(opts...).Find(f, a, b).
func Find(f Func, a, b float32, opts ...Option) (Result, error) {
	return New(opts...).Find(f, a, b)
}

// Slope returns the sign-carrying symmetric difference of f at x.
func (fd *Finder) Slope(f Func, x float32) float32 {
	return f(x+fd.Step) - f(x-fd.Step)
}

// Find returns the maximum of f inside (a, b).  The slope of f must be
// positive at a and negative at b.  Bisection keeps the half of the bracket
// toward which the midpoint slope points until the bracket is two ulps wide
// or the slope vanishes.
func (fd *Finder) Find(f Func, a, b float32) (Result, error) {
	sa, sb := fd.Slope(f, a), fd.Slope(f, b)
	if isNaN(sa) || isNaN(sb) {
		return Result{}, ErrNaN
	} else if !(a < b && sa > 0 && sb < 0) {
		return Result{}, ErrBracket
	}

	l, r := a, b
	iter := 0
	for ; r-l > 2*ulp(l, r); iter++ {
		if iter >= fd.MaxIter {
			return Result{Lo: l, Hi: r, Iter: iter}, ErrNoConverge
		}

		m := l + 0.5*(r-l)
		if m <= l || m >= r {
			break
		}

		s := fd.Slope(f, m)
		if s < 0 { // maximum is to the left
			r = m
		} else if s > 0 { // maximum is to the right
			l = m
		} else if s == 0 {
			l, r = m, m
		} else {
			return Result{Lo: l, Hi: r, Iter: iter}, ErrNaN
		}
	}

	m := l + 0.5*(r-l)
	res := Result{X: m, Y: f(m), Lo: l, Hi: r, Iter: iter}
	for _, x := range [2]float32{l, r} {
		if y := f(x); y > res.Y {
			res.X, res.Y = x, y
		}
	}
	return res, nil
}

// ulp returns the spacing of float32 values at the larger magnitude of a
// and b.
func ulp(a, b float32) float32 {
	v := float32(math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
	return math.Nextafter32(v, float32(math.Inf(1))) - v
}

func isNaN(v float32) bool { return v != v }
