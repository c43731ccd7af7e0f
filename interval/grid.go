package interval

import "fmt"

// Grid is n equally spaced points covering the half-open interval [Lo, Hi).
type Grid struct {
	Lo, Hi float32
	N      int
}

func NewGrid(lo, hi float32, n int) Grid {
	if n < 1 {
		panic(fmt.Sprintf("interval: grid needs at least one point, got %v", n))
	} else if !(lo < hi) {
		panic("interval: grid bounds are not increasing")
	}
	return Grid{Lo: lo, Hi: hi, N: n}
}

// Step returns the spacing between neighboring grid points.
func (g Grid) Step() float32 { return (g.Hi - g.Lo) / float32(g.N) }

// At returns the i'th grid point Lo + i*(Hi-Lo)/N.
func (g Grid) At(i int) float32 {
	return g.Lo + float32(float32(i)*(g.Hi-g.Lo))/float32(g.N)
}
