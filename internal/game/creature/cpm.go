package creature

import "math"

const (
	// MaxLevel is the level beyond which stats stop growing.
	MaxLevel = 50
	// CPMCapLevel is the last level covered by the CPM table.
	CPMCapLevel = 30
	// CPMStep is the CPM increase per level above CPMCapLevel.
	CPMStep = 0.01
)

// cpmTable holds the combat power multiplier for half levels 1, 1.5 ... 30.
var cpmTable = []float64{
	0.094, 0.135, 0.1664, 0.192, 0.2157, 0.236, 0.2557, 0.2644, // 1 .. 4.5
	0.273, 0.291, 0.3, 0.315, 0.33, 0.345, 0.36, 0.375, // 5 .. 8.5
	0.39, 0.405, 0.42, 0.435, 0.45, 0.465, 0.48, 0.495, // 9 .. 12.5
	0.51, 0.525, 0.54, 0.555, 0.57, 0.585, 0.6, 0.615, // 13 .. 16.5
	0.63, 0.645, 0.66, 0.675, 0.69, 0.705, 0.72, 0.735, // 17 .. 20.5
	0.75, 0.765, 0.78, 0.795, 0.81, 0.825, 0.84, 0.855, // 21 .. 24.5
	0.87, 0.885, 0.9, 0.915, 0.93, 0.945, 0.96, 0.975, // 25 .. 28.5
	0.99, 1.0, 1.0, // 29, 29.5, 30
}

// CPM returns the combat power multiplier for a level. Levels are floored to
// the nearest half level and clamped to [1, MaxLevel]; above CPMCapLevel the
// multiplier grows linearly by CPMStep per level.
//
// Postcondition: CPM is non-decreasing in level.
func CPM(level float64) float64 {
	if level < 1 || math.IsNaN(level) {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	half := math.Floor(level*2) / 2
	if half <= CPMCapLevel {
		return cpmTable[int(half*2)-2]
	}
	return cpmTable[len(cpmTable)-1] + (half-CPMCapLevel)*CPMStep
}

// EffectiveLevel clamps level to [1, MaxLevel].
func EffectiveLevel(level float64) float64 {
	switch {
	case level < 1:
		return 1
	case level > MaxLevel:
		return MaxLevel
	default:
		return level
	}
}
