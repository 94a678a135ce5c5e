package creature

import "math"

// ExpToLevel is the exp needed to advance past level: 5 + level^2 * 5.
// Fractional levels use their whole part.
func ExpToLevel(level float64) int {
	l := int(math.Floor(level))
	return 5 + l*l*5
}
