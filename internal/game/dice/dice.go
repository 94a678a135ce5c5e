// Package dice provides the randomness abstraction used by every probabilistic
// rule in the battle engine: stat rolls, spawn selection, damage variance,
// crit and dodge checks, capture and loot.
package dice

// Source is the randomness provider for the engine.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Chance reports whether a draw from src falls below p.
//
// Postcondition: Consumes exactly one Float64 draw whatever p is, so a
// seeded or scripted replay stays aligned when a probability is tuned to 0
// or 1. Returns false when p <= 0 and true when p >= 1.
func Chance(src Source, p float64) bool {
	roll := src.Float64()
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return roll < p
}

// Between returns a uniform float in [lo, hi).
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// IntRange returns a uniform int in [lo, hi] inclusive.
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi; exactly one Intn draw is consumed, even
// when lo == hi. Returns lo without drawing when hi < lo.
func IntRange(src Source, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
