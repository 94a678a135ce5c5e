package creature

import (
	"math"

	"github.com/cory-johannsen/pocketbattle/internal/game/species"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

const (
	// MinAttack and MinDefense floor the attack and defense totals.
	MinAttack  = 5
	MinDefense = 5
	// MinStamina floors the stamina total.
	MinStamina = 10
	// LevelGrowth is the per-level multiplier growth above level 1.
	LevelGrowth = 0.02
)

// Rates are a creature's base combat probabilities before talents.
type Rates struct {
	CritRate   float64
	CritDamage float64
	DodgeRate  float64
}

// DefaultRates returns 5% crit, 1.5x crit damage and 5% dodge.
func DefaultRates() Rates {
	return Rates{CritRate: 0.05, CritDamage: 1.5, DodgeRate: 0.05}
}

// Bonus is the total level-scaled talent contribution.
type Bonus struct {
	Attack     float64
	Defense    float64
	Stamina    float64
	CritRate   float64
	CritDamage float64
	DodgeRate  float64
}

// Totals is the derived stat block of a creature. It is a cache over species,
// level, IVs, talents and rates and is never stored on its own.
type Totals struct {
	Attack     float64
	Defense    float64
	Stamina    float64
	CritRate   float64
	CritDamage float64
	DodgeRate  float64
	// MaxHP is floor(Stamina * 2).
	MaxHP int
	CP    int
	// MaxCP is the species max CP plus the talent bonus.
	MaxCP int
	Bonus Bonus
}

// TalentBonus sums talent deltas scaled by effectiveLevel / MaxLevel.
func TalentBonus(talents []talent.Talent, level float64) Bonus {
	scale := EffectiveLevel(level) / MaxLevel
	var b Bonus
	for _, t := range talents {
		b.Attack += t.Attack * scale
		b.Defense += t.Defense * scale
		b.Stamina += t.Stamina * scale
		b.CritRate += t.CritRate * scale
		b.CritDamage += t.CritDamage * scale
		b.DodgeRate += t.DodgeRate * scale
	}
	return b
}

// ComputeTotals derives the full stat block. Base stats are scaled by
// CPM(min(level, CPMCapLevel)) and 1 + (level-1)*LevelGrowth; IVs and talent
// bonuses are added as flat offsets; rate totals are clamped to [0, 1] and
// crit damage to at least 1.
//
// Precondition: sp must be non-nil.
// Postcondition: Attack >= MinAttack, Defense >= MinDefense, Stamina >= MinStamina,
// MaxHP == floor(Stamina*2).
func ComputeTotals(sp *species.Species, level float64, ivs IVs, talents []talent.Talent, rates Rates) Totals {
	eff := EffectiveLevel(level)
	cpm := CPM(math.Min(eff, CPMCapLevel))
	levelMult := 1 + (eff-1)*LevelGrowth
	bonus := TalentBonus(talents, eff)

	scaled := func(base int) float64 { return float64(base) * cpm * levelMult }

	t := Totals{
		Attack:     math.Max(MinAttack, scaled(sp.BaseAttack)+float64(ivs.Attack)+bonus.Attack),
		Defense:    math.Max(MinDefense, scaled(sp.BaseDefense)+float64(ivs.Defense)+bonus.Defense),
		Stamina:    math.Max(MinStamina, scaled(sp.BaseStamina)+float64(ivs.Stamina)+bonus.Stamina),
		CritRate:   clamp01(rates.CritRate + bonus.CritRate),
		CritDamage: math.Max(1, rates.CritDamage+bonus.CritDamage),
		DodgeRate:  clamp01(rates.DodgeRate + bonus.DodgeRate),
		Bonus:      bonus,
	}
	t.MaxHP = int(math.Floor(t.Stamina * 2))
	t.CP, t.MaxCP = CalculateCP(t, eff, sp.MaxCP, talents)
	return t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
