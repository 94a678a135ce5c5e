package creature

import (
	"math"

	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

// MinCP is the lowest combat power any creature reports.
const MinCP = 10

// CalculateCP returns the combat power and the talent-adjusted max CP.
//
//	cp = floor(atk * sqrt(def) * sqrt(sta) * cpm^2 / 10)
//
// capped at 55 up to level 3, 90 up to level 5 and 180 up to level 10,
// floored at MinCP, and bounded by baseMaxCP + BonusMaxCP.
//
// Postcondition: MinCP <= cp (unless maxCP < MinCP) and cp <= maxCP.
func CalculateCP(t Totals, level float64, baseMaxCP int, talents []talent.Talent) (cp, maxCP int) {
	eff := EffectiveLevel(level)
	cpm := CPM(math.Min(eff, CPMCapLevel))

	cp = int(math.Floor(t.Attack * math.Sqrt(t.Defense) * math.Sqrt(t.Stamina) * cpm * cpm / 10))

	switch {
	case eff <= 3:
		cp = min(cp, 55)
	case eff <= 5:
		cp = min(cp, 90)
	case eff <= 10:
		cp = min(cp, 180)
	}
	cp = max(MinCP, cp)

	maxCP = baseMaxCP + BonusMaxCP(talents, eff, baseMaxCP)
	return min(cp, maxCP), maxCP
}

// BonusMaxCP is the max CP headroom granted by positive flat talent bonuses,
// scaled by level and capped at 25% of baseMaxCP.
func BonusMaxCP(talents []talent.Talent, level float64, baseMaxCP int) int {
	pct := 0.0
	for _, t := range talents {
		if t.Attack > 0 {
			pct += t.Attack * 0.002
		}
		if t.Defense > 0 {
			pct += t.Defense * 0.0015
		}
		if t.Stamina > 0 {
			pct += t.Stamina * 0.0025
		}
	}
	pct *= EffectiveLevel(level) / MaxLevel
	bonus := int(math.Floor(float64(baseMaxCP) * pct))
	return min(bonus, int(math.Floor(float64(baseMaxCP)*0.25)))
}
