package peak

import (
	"errors"
	"math"
	"testing"

	"github.com/davidssmith/fastsqrt"
)

type problem struct {
	Name string
	Fn   Func
	A, B float32
	Want float32
}

var problems = []problem{
	{
		Name: "parabola",
		Fn:   func(x float32) float32 { return 1 - (x-2.3)*(x-2.3) },
		A:    2.0, B: 2.6,
		Want: 2.3,
	},
	{
		Name: "xexp",
		Fn:   func(x float32) float32 { return x * float32(math.Exp(-float64(x))) },
		A:    0.5, B: 1.7,
		Want: 1,
	},
	{
		Name: "spike",
		Fn: func(x float32) float32 {
			d := (x - 1.7) / 0.002
			return 1 / (1 + d*d)
		},
		A: 1.69, B: 1.71,
		Want: 1.7,
	},
	{
		Name: "cosine",
		Fn:   func(x float32) float32 { return float32(math.Cos(float64(x - 3.1))) },
		A:    2.9, B: 3.3,
		Want: 3.1,
	},
}

func TestFind(t *testing.T) {
	for _, prob := range problems {
		res, err := Find(prob.Fn, prob.A, prob.B)
		if err != nil {
			t.Errorf("[FAIL:%v] %v", prob.Name, err)
			continue
		}

		if width := res.Hi - res.Lo; width > 2*ulp(res.Lo, res.Hi) {
			t.Errorf("[FAIL:%v] final bracket [%v, %v] is %v wide", prob.Name, res.Lo, res.Hi, width)
		}
		if res.X < res.Lo || res.X > res.Hi {
			t.Errorf("[FAIL:%v] peak %v outside final bracket [%v, %v]", prob.Name, res.X, res.Lo, res.Hi)
		}
		if diff := math.Abs(float64(res.X - prob.Want)); diff > 1e-3 {
			t.Errorf("[FAIL:%v] peak at %v, want %v", prob.Name, res.X, prob.Want)
		}
		if res.Iter > 40 {
			t.Errorf("[FAIL:%v] took %v iterations", prob.Name, res.Iter)
		}

		// no grid point in the starting bracket may beat the peak
		n := 1000
		for i := 0; i <= n; i++ {
			x := prob.A + float32(i)*(prob.B-prob.A)/float32(n)
			if v := prob.Fn(x); v > res.Y+4*ulp(v, res.Y) {
				t.Errorf("[FAIL:%v] f(%v)=%v beats peak f(%v)=%v", prob.Name, x, v, res.X, res.Y)
				break
			}
		}
		t.Logf("[pass:%v] peak f(%v)=%v after %v iterations", prob.Name, res.X, res.Y, res.Iter)
	}
}

func TestFindBadBracket(t *testing.T) {
	fn := problems[0].Fn
	tests := []struct{ A, B float32 }{
		{2.4, 2.6}, // slope negative on both ends
		{2.0, 2.2}, // slope positive on both ends
		{2.6, 2.0}, // reversed
	}
	for _, test := range tests {
		if _, err := Find(fn, test.A, test.B); !errors.Is(err, ErrBracket) {
			t.Errorf("(%v, %v): expected ErrBracket, got %v", test.A, test.B, err)
		}
	}

	nan := func(x float32) float32 { return float32(math.NaN()) }
	if _, err := Find(nan, 1, 2); !errors.Is(err, ErrNaN) {
		t.Errorf("expected ErrNaN, got %v", err)
	}
}

func TestFindMaxIter(t *testing.T) {
	_, err := Find(problems[1].Fn, problems[1].A, problems[1].B, MaxIter(3))
	if !errors.Is(err, ErrNoConverge) {
		t.Errorf("expected ErrNoConverge, got %v", err)
	}
}

func TestFindCoeffs(t *testing.T) {
	// scan for the largest Quake error and refine around it
	fn := Coeffs(fastsqrt.Quake, fastsqrt.Relative)
	var xbest, ebest float32
	for i := 0; i < 512; i++ {
		x := 1 + float32(i)*3/512
		if e := fn(x); e > ebest {
			xbest, ebest = x, e
		}
	}

	fd := New()
	a, b := xbest-3.0/512, xbest+3.0/512
	if !(fd.Slope(fn, a) > 0 && fd.Slope(fn, b) < 0) {
		t.Skipf("coarse maximum at %v is not an interior peak", xbest)
	}
	res, err := fd.Find(fn, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if res.Y < ebest {
		t.Errorf("refined peak %v below coarse sample %v", res.Y, ebest)
	}
	t.Logf("[INFO] coarse %v at %v, refined %v at %v", ebest, xbest, res.Y, res.X)
}
