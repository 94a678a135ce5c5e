// Package progression computes battle rewards and applies experience to
// creatures and trainers.
package progression

import (
	"math"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
)

const (
	// BaseExp and ExpPerWildLevel give the unmodified reward 50 + 5*wildLevel.
	BaseExp         = 50
	ExpPerWildLevel = 5
	// PlayerExpShare scales the trainer's reward relative to the creature's.
	PlayerExpShare = 0.75
	ShinyBonus     = 1.5
	PinapBonus     = 2.0
	// LevelModStep is the bonus per level the wild is above the attacker,
	// capped at LevelModCap.
	LevelModStep = 0.1
	LevelModCap  = 0.5
)

// Victory describes a defeated wild creature for reward purposes.
type Victory struct {
	WildLevel     float64
	AttackerLevel float64
	Shiny         bool
	// Pinap is true when the trainer's last fed berry was a pinap.
	Pinap bool
}

// LevelMod is 1 + min((wild-attacker)*LevelModStep, LevelModCap). It is not
// bounded below; rewards are floored at zero instead.
func LevelMod(wildLevel, attackerLevel float64) float64 {
	return 1 + math.Min((wildLevel-attackerLevel)*LevelModStep, LevelModCap)
}

func baseReward(v Victory) float64 {
	exp := float64(BaseExp) + v.WildLevel*ExpPerWildLevel
	if v.Shiny {
		exp *= ShinyBonus
	}
	if v.Pinap {
		exp *= PinapBonus
	}
	return exp * LevelMod(v.WildLevel, v.AttackerLevel)
}

// RewardExp is the exp the victorious creature earns.
//
// Postcondition: result >= 0.
func RewardExp(v Victory) int {
	return max(0, int(math.Floor(baseReward(v))))
}

// PlayerRewardExp is the exp the trainer earns, PlayerExpShare of the
// creature formula before flooring.
//
// Postcondition: result >= 0.
func PlayerRewardExp(v Victory) int {
	return max(0, int(math.Floor(baseReward(v)*PlayerExpShare)))
}

// GainCreatureExp adds exp to c and levels it up while Exp >= ExpToNext.
// Every level gained recomputes stats and fully heals.
//
// Postcondition: c.Exp < c.ExpToNext; returns the levels reached in order.
func GainCreatureExp(c *creature.Creature, exp int) []float64 {
	c.Exp += max(0, exp)
	if c.ExpToNext <= 0 {
		c.ExpToNext = creature.ExpToLevel(c.Level())
	}
	var reached []float64
	for c.Exp >= c.ExpToNext {
		c.Exp -= c.ExpToNext
		c.LevelUp()
		reached = append(reached, c.Level())
	}
	return reached
}

// GainPlayerExp adds exp to t and raises its level while Exp meets the
// threshold for the current level.
//
// Postcondition: t.Exp < creature.ExpToLevel(t.Level); returns the levels reached.
func GainPlayerExp(t *trainer.Trainer, exp int) []int {
	t.Exp += max(0, exp)
	var reached []int
	for t.Exp >= creature.ExpToLevel(float64(t.Level)) {
		t.Exp -= creature.ExpToLevel(float64(t.Level))
		t.Level++
		reached = append(reached, t.Level)
	}
	return reached
}

// CoinReward is floor(U*5 + 5 + wildLevel*0.5) for one uniform draw U.
//
// Postcondition: 5 + floor(wildLevel/2) <= result < 10 + wildLevel/2.
func CoinReward(wildLevel float64, src dice.Source) int {
	return int(math.Floor(dice.Between(src, 5, 10) + wildLevel*0.5))
}
