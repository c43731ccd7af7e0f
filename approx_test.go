package fastsqrt

import (
	"math"
	"testing"
)

func TestApproxQuake(t *testing.T) {
	tests := []struct {
		X      float32
		MaxErr float32
	}{
		{X: 1, MaxErr: 0.0018},
		{X: 2, MaxErr: 0.0018},
		{X: 3.9, MaxErr: 0.0018},
		{X: 100, MaxErr: 0.0018},
	}

	for _, test := range tests {
		got := Approx(test.X, Quake)
		exact := 1 / math.Sqrt(float64(test.X))
		rel := math.Abs(float64(got)-exact) / exact
		if rel > float64(test.MaxErr) {
			t.Errorf("x=%v: got %v, want %v (rel err %v)", test.X, got, exact, rel)
		}
		if e := Error(test.X, Quake, Relative); math.Abs(float64(e)-rel) > 1e-6 {
			t.Errorf("x=%v: Error=%v, expected %v", test.X, e, rel)
		}
	}
}

func TestApproxBitPattern(t *testing.T) {
	// 0x5f3759df - 0x3f800000>>1 == 0x3f7759df
	c := Coeffs{C1: 0x5f3759df, C2: 1, C3: 1}
	y0 := math.Float32frombits(0x3f7759df)
	want := y0 * (1 - float32(y0*y0))
	if got := Approx(1, c); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestErrorPenalty(t *testing.T) {
	xs := []float32{0, -1, float32(math.Inf(1)), float32(math.NaN())}
	for _, x := range xs {
		for _, mode := range []Mode{Relative, Absolute} {
			if e := Error(x, Quake, mode); e != Penalty {
				t.Errorf("x=%v mode=%v: got %v, expected penalty", x, mode, e)
			}
		}
	}

	// c3 overflow makes every estimate infinite
	bad := Coeffs{C1: 0x5f3759df, C2: 1, C3: float32(math.Inf(1))}
	if e := Error(2, bad, Relative); e != Penalty {
		t.Errorf("infinite estimate: got %v, expected penalty", e)
	}
}

func TestErrorAbsolute(t *testing.T) {
	x := float32(3)
	rel := Error(x, Quake, Relative)
	abs := Error(x, Quake, Absolute)
	exact := 1 / float32(math.Sqrt(3))
	if diff := math.Abs(float64(abs/exact - rel)); diff > 1e-6 {
		t.Errorf("absolute %v and relative %v disagree", abs, rel)
	}
}

func TestSlopeDefinition(t *testing.T) {
	for _, x := range []float32{1, 1.5, 2.25, 3.75} {
		want := Error(x+DefaultSlopeStep, Quake, Relative) - Error(x-DefaultSlopeStep, Quake, Relative)
		if got := Slope(x, Quake, Relative, DefaultSlopeStep); got != want {
			t.Errorf("x=%v: got %v, want %v", x, got, want)
		}
	}
}

func TestKeyLess(t *testing.T) {
	a := Coeffs{C1: 1}
	b := Coeffs{C1: 2}
	fa := Fitness{MaxError: 1, RMSError: 2}
	fb := Fitness{MaxError: 2, RMSError: 1}

	if !KeyMax.Less(a, fa, b, fb) || KeyMax.Less(b, fb, a, fa) {
		t.Errorf("KeyMax ordered by wrong value")
	}
	if !KeyRMS.Less(b, fb, a, fa) || KeyRMS.Less(a, fa, b, fb) {
		t.Errorf("KeyRMS ordered by wrong value")
	}
	if !KeyRMS.Less(a, fa, b, fa) {
		t.Errorf("equal fitness not broken by coefficients")
	}
	if KeyRMS.Less(a, fa, a, fa) {
		t.Errorf("Less is not irreflexive")
	}
}

func TestParse(t *testing.T) {
	if k, err := ParseKey("max"); err != nil || k != KeyMax {
		t.Errorf("ParseKey(max) = %v, %v", k, err)
	}
	if _, err := ParseKey("median"); err == nil {
		t.Errorf("ParseKey accepted bogus key")
	}
	if m, err := ParseMode("abs"); err != nil || m != Absolute {
		t.Errorf("ParseMode(abs) = %v, %v", m, err)
	}
}

func TestRandomInBox(t *testing.T) {
	rng := NewRand(7)
	for i := 0; i < 1000; i++ {
		c := Random(rng)
		if c.C1 < RandC1Lo || c.C1 >= RandC1Hi {
			t.Fatalf("c1 %x out of range", c.C1)
		}
		if c.C2 < RandLow[0] || c.C2 >= RandUp[0] || c.C3 < RandLow[1] || c.C3 >= RandUp[1] {
			t.Fatalf("%v out of range", c)
		}
	}
}
