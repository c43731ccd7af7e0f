package fastsqrt

import "math/rand/v2"

// Random box bounds used when a triple is drawn from scratch.
const (
	RandC1Lo uint32 = 0x59400000
	RandC1Hi uint32 = 0x5f400000
)

var (
	RandLow = [2]float32{0, 2}
	RandUp  = [2]float32{1, 5}
)

// Random draws a triple uniformly from the box [RandC1Lo, RandC1Hi) x
// [RandLow, RandUp).
func Random(rng *rand.Rand) Coeffs {
	c1 := RandC1Lo + rng.Uint32N(RandC1Hi-RandC1Lo)
	c2 := RandLow[0] + rng.Float32()*(RandUp[0]-RandLow[0])
	c3 := RandLow[1] + rng.Float32()*(RandUp[1]-RandLow[1])
	return Coeffs{C1: c1, C2: c2, C3: c3}
}

// NewRand returns a PCG backed generator seeded deterministically from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
