package pop

import "math"

// DefaultKeep is the number of elite candidates kept unchanged each
// generation.
const DefaultKeep = 20

// KeepFunc returns the number of elites to keep at generation t of an nt
// generation run.  nt is zero when the run has no fixed length.  The result
// is clamped by the population to [1, len/2].
type KeepFunc func(t, nt int) int

func FixedKeep(k int) KeepFunc {
	return func(t, nt int) int { return k }
}

// LinKeep shrinks the elite count linearly from start at the first
// generation to end at the last.  Runs without a fixed length keep start.
func LinKeep(start, end int) KeepFunc {
	return func(t, nt int) int {
		if nt <= 1 {
			return start
		}
		frac := float64(t) / float64(nt-1)
		k := int(math.Round(float64(start) + frac*float64(end-start)))
		if k < 1 {
			return 1
		}
		return k
	}
}

func clampKeep(k, n int) int {
	if hi := n / 2; k > hi {
		k = hi
	}
	if k < 1 {
		k = 1
	}
	return k
}
