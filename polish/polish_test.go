package polish

import (
	"testing"

	"github.com/davidssmith/fastsqrt"
	"github.com/davidssmith/fastsqrt/interval"
)

func TestPolishQuake(t *testing.T) {
	s := interval.New()
	c, f, err := Polish(fastsqrt.Quake, s, fastsqrt.KeyMax, 400)
	if err != nil {
		t.Fatal(err)
	}
	if c.C1 != fastsqrt.Quake.C1 {
		t.Errorf("[FAIL] c1 changed from %x to %x", fastsqrt.Quake.C1, c.C1)
	}

	want, _ := s.Search(fastsqrt.Quake)
	if f.MaxError >= want.MaxError {
		t.Errorf("[FAIL] no improvement over %v: got %v", want.MaxError, f.MaxError)
	}
	t.Logf("[INFO] %v -> %v (%v)", fastsqrt.Quake, c, f)

	got, err := s.Search(c)
	if err != nil {
		t.Fatal(err)
	}
	if got != f {
		t.Errorf("[FAIL] reported fitness %v, recomputed %v", f, got)
	}
}

func TestPolishNeverWorse(t *testing.T) {
	s := interval.New()
	for _, c := range []fastsqrt.Coeffs{fastsqrt.Kadlec, fastsqrt.BestRMS, fastsqrt.BestMax} {
		for _, key := range []fastsqrt.Key{fastsqrt.KeyRMS, fastsqrt.KeyMax} {
			start, _ := s.Search(c)
			_, f, err := Polish(c, s, key, 60)
			if err != nil {
				t.Errorf("[FAIL] %v: %v", c, err)
				continue
			}
			if key.Value(f) > key.Value(start) {
				t.Errorf("[FAIL] %v by %v got worse: %v -> %v", c, key, start, f)
			}
		}
	}
}

func TestPolishNoBudget(t *testing.T) {
	s := interval.New()
	c, f, err := Polish(fastsqrt.Kadlec, s, fastsqrt.KeyRMS, 0)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := s.Search(fastsqrt.Kadlec)
	if c != fastsqrt.Kadlec || f != want {
		t.Errorf("[FAIL] zero budget changed %v to %v", fastsqrt.Kadlec, c)
	}
}
