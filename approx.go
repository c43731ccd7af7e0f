// Package fastsqrt searches for coefficients of the fast inverse square root
// bit trick:
//
//     y0 = float(c1 - bits(x)>>1)
//     y  = c2 * y0 * (c3 - x*y0*y0)
//
// that minimize the approximation error over the interval [1, 4).  Four is
// enough because the bit trick repeats itself every factor of four in x.
package fastsqrt

import (
	"fmt"
	"math"
)

const (
	// Lo and Hi bound the half-open domain [Lo, Hi) searched for errors.
	Lo float32 = 1
	Hi float32 = 4

	// Penalty replaces NaN and infinite errors so that fitness values
	// always have a total order.
	Penalty float32 = 100

	// Eps is the float32 machine epsilon.
	Eps float32 = 1.0 / (1 << 23)

	// DefaultSlopeStep is the half-width of the symmetric difference used
	// to estimate the sign of the error slope.
	DefaultSlopeStep = 1024 * Eps
)

// Mode selects how the deviation from the exact 1/sqrt(x) is measured.
type Mode int

const (
	// Relative error |y - 1/sqrt(x)| * sqrt(x).
	Relative Mode = iota
	// Absolute error |y - 1/sqrt(x)|.
	Absolute
)

func (m Mode) String() string {
	switch m {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts "relative"/"rel" or "absolute"/"abs" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "relative", "rel":
		return Relative, nil
	case "absolute", "abs":
		return Absolute, nil
	}
	return 0, fmt.Errorf("unknown error mode %q", s)
}

// Coeffs is one candidate set of bit trick coefficients.  C1 is the raw
// integer constant (3/2 * 2^23 * (127 - mu)), C2 and C3 come from the Newton
// step.
type Coeffs struct {
	C1 uint32
	C2 float32
	C3 float32
}

// Quake is the classic 0x5f3759df constant with a plain Newton step.
var Quake = Coeffs{C1: 0x5f3759df, C2: 0.5, C3: 3}

func (c Coeffs) String() string {
	return fmt.Sprintf("%x,%.9f,%1.9f", c.C1, c.C2, c.C3)
}

// Approx returns the bit trick estimate of 1/sqrt(x).  The float is
// reinterpreted as an integer (and back) bit for bit; a numeric conversion
// would destroy the trick.  Products are rounded explicitly so no operation
// is fused and results are identical on every architecture.
func Approx(x float32, c Coeffs) float32 {
	y := math.Float32frombits(c.C1 - math.Float32bits(x)>>1)
	xyy := float32(float32(x*y) * y)
	return float32(c.C2*y) * (c.C3 - xyy)
}

// Error returns the error of Approx at x.  Non-finite errors (x <= 0 or
// coefficients that overflow) are reported as Penalty.
func Error(x float32, c Coeffs, mode Mode) float32 {
	approx := Approx(x, c)
	exact := 1 / float32(math.Sqrt(float64(x)))
	e := float32(math.Abs(float64(approx - exact)))
	if mode == Relative {
		e /= exact
	}
	if e != e || math.IsInf(float64(e), 0) {
		return Penalty
	}
	return e
}

// Slope estimates the slope of the error at x with a symmetric difference of
// half-width dx.  The result is not divided by 2*dx: only its sign matters.
func Slope(x float32, c Coeffs, mode Mode, dx float32) float32 {
	return Error(x+dx, c, mode) - Error(x-dx, c, mode)
}
