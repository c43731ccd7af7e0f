package fastsqrt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const errcount = 3

type ErrEvaler struct {
	count int
}

func (e *ErrEvaler) Eval(c Coeffs) (Fitness, error) {
	e.count++
	if e.count >= errcount {
		return Worst, errors.New("fake error")
	}
	return Fitness{}, nil
}

func TestSerialEvalerErr(t *testing.T) {
	ev := &ErrEvaler{}
	se := SerialEvaler{}

	results, n, err := se.EvalAll(ev, Coeffs{}, Coeffs{}, Coeffs{}, Coeffs{}, Coeffs{})
	if len(results) != errcount {
		t.Errorf("returned wrong number of results: expected %v, got %v", errcount, len(results))
	}
	if n != errcount {
		t.Errorf("returned wrong evaluation count: expected %v, got %v", errcount, n)
	}
	if err == nil {
		t.Errorf("did not propogate error through return")
	}
}

func TestSerialEvalerContinue(t *testing.T) {
	ev := &ErrEvaler{}
	se := SerialEvaler{ContinueOnErr: true}

	results, n, err := se.EvalAll(ev, Coeffs{}, Coeffs{}, Coeffs{}, Coeffs{}, Coeffs{})
	if len(results) != 5 || n != 5 {
		t.Errorf("expected 5 results and evals, got %v and %v", len(results), n)
	}
	if err == nil {
		t.Errorf("did not report first error")
	}
}

func TestCacheEvaler(t *testing.T) {
	count := 0
	inner := EvalFunc(func(c Coeffs) (Fitness, error) {
		count++
		return Fitness{MaxError: c.C2}, nil
	})
	ev := NewCacheEvaler(inner, 0)

	a := Coeffs{C1: 1, C2: 0.5, C3: 3}
	b := Coeffs{C1: 1, C2: 0.25, C3: 3}
	for i := 0; i < 3; i++ {
		if f, _ := ev.Eval(a); f.MaxError != 0.5 {
			t.Errorf("cached value for a: got %v", f.MaxError)
		}
	}
	if f, _ := ev.Eval(b); f.MaxError != 0.25 {
		t.Errorf("value for b: got %v", f.MaxError)
	}

	size, hits := ev.Stats()
	if count != 2 || size != 2 || hits != 2 {
		t.Errorf("expected 2 evals, 2 entries and 2 hits, got %v, %v, %v", count, size, hits)
	}
}

func TestCacheEvalerBounded(t *testing.T) {
	const limit = 4
	ev := NewCacheEvaler(EvalFunc(func(c Coeffs) (Fitness, error) {
		return Fitness{MaxError: c.C2}, nil
	}), limit)

	for i := 0; i < 10*limit; i++ {
		c := Coeffs{C1: uint32(i), C2: float32(i), C3: 3}
		if f, _ := ev.Eval(c); f.MaxError != c.C2 {
			t.Errorf("value for %v: got %v", c, f.MaxError)
		}
		if size, _ := ev.Stats(); size > limit {
			t.Fatalf("cache grew to %v entries, limit is %v", size, limit)
		}
	}

	// the most recent entry survives a flush
	last := Coeffs{C1: 10*limit - 1, C2: 10*limit - 1, C3: 3}
	ev.Eval(last)
	if _, hits := ev.Stats(); hits != 1 {
		t.Errorf("expected a hit on the newest entry, got %v hits", hits)
	}
}

func TestCacheEvalerSkipsErrors(t *testing.T) {
	ev := NewCacheEvaler(&ErrEvaler{count: errcount}, 0)
	if _, err := ev.Eval(Quake); err == nil {
		t.Fatal("expected error")
	}
	if size, _ := ev.Stats(); size != 0 {
		t.Errorf("failed evaluation was cached")
	}
}

func TestFitnessPrinter(t *testing.T) {
	var buf bytes.Buffer
	fp := NewFitnessPrinter(EvalFunc(func(c Coeffs) (Fitness, error) { return Fitness{}, nil }))
	fp.W = &buf
	fp.Eval(Quake)
	fp.Eval(Quake)

	if fp.Count != 2 {
		t.Errorf("expected count 2, got %v", fp.Count)
	}
	if !strings.HasPrefix(buf.String(), "1 5f3759df,") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
