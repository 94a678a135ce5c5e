// Package creature models owned and wild creature instances: their identity,
// individual values, talents, level and the derived stat block that the
// battle engine reads.
package creature

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

// DefaultMaxEnergy is the energy cap of every creature.
const DefaultMaxEnergy = 100

// SpeciesLookup resolves species by name.
type SpeciesLookup interface {
	Species(name string) (*species.Species, bool)
}

// Disguise marks a wild creature that shows one species while truly being
// another. The displayed form is the creature's current species.
type Disguise struct {
	TrueForm string
}

// Creature is one owned or wild creature instance.
//
// Invariant: 0 <= HP() <= MaxHP(), 0 <= Energy() <= MaxEnergy, and
// MaxHP() == floor(Totals().Stamina*2) after every mutation.
type Creature struct {
	ID        string
	Nature    Nature
	Shiny     bool
	CatchRate float64
	Exp       int
	ExpToNext int
	MaxEnergy int
	Disguise  *Disguise

	species *species.Species
	level   float64
	ivs     IVs
	talents []talent.Talent
	rates   Rates
	hp      int
	energy  int
	totals  Totals
}

// New creates a creature of sp at level with the given IVs, default rates, no
// talents, zero energy and full HP.
//
// Precondition: sp is non-nil; level >= 1; ivs.Valid().
// Postcondition: HP() == MaxHP(); Nature == NatureFor(ivs).
func New(sp *species.Species, level float64, ivs IVs) *Creature {
	c := &Creature{
		ID:        uuid.New().String(),
		Nature:    NatureFor(ivs),
		CatchRate: sp.CatchRate,
		MaxEnergy: DefaultMaxEnergy,
		ExpToNext: ExpToLevel(level),
		species:   sp,
		level:     math.Max(1, level),
		ivs:       ivs,
		rates:     DefaultRates(),
	}
	c.recompute(true)
	return c
}

// Species returns the species whose stats the creature currently uses.
func (c *Creature) Species() *species.Species { return c.species }

// Level returns the creature's level.
func (c *Creature) Level() float64 { return c.level }

// IVs returns the individual values.
func (c *Creature) IVs() IVs { return c.ivs }

// Talents returns a copy of the assigned talents.
func (c *Creature) Talents() []talent.Talent { return append([]talent.Talent(nil), c.talents...) }

// Rates returns the base combat rates before talents.
func (c *Creature) Rates() Rates { return c.rates }

// Totals returns the cached stat block.
func (c *Creature) Totals() Totals { return c.totals }

// HP returns current hit points.
func (c *Creature) HP() int { return c.hp }

// MaxHP returns maximum hit points.
func (c *Creature) MaxHP() int { return c.totals.MaxHP }

// Energy returns current energy.
func (c *Creature) Energy() int { return c.energy }

// CP returns current combat power.
func (c *Creature) CP() int { return c.totals.CP }

// Fainted reports whether HP has reached zero.
func (c *Creature) Fainted() bool { return c.hp <= 0 }

// DisplayName is the name shown to the player, the disguise if any.
func (c *Creature) DisplayName() string { return c.species.Name }

// TrueName is the creature's real species name.
func (c *Creature) TrueName() string {
	if c.Disguise != nil {
		return c.Disguise.TrueForm
	}
	return c.species.Name
}

// Recompute rebuilds the stat block, keeping the current HP ratio.
func (c *Creature) Recompute() { c.recompute(false) }

func (c *Creature) recompute(fullHeal bool) {
	oldMax := c.totals.MaxHP
	c.totals = ComputeTotals(c.species, c.level, c.ivs, c.talents, c.rates)
	newMax := c.totals.MaxHP
	if fullHeal || oldMax <= 0 {
		c.hp = newMax
	} else {
		c.hp = int(math.Floor(float64(newMax) * float64(c.hp) / float64(oldMax)))
	}
	c.hp = max(0, min(c.hp, newMax))
	c.energy = max(0, min(c.energy, c.MaxEnergy))
}

// AssignTalents rolls a fresh talent set from cat and recomputes stats.
//
// Postcondition: Talents() holds 0 to 2 distinct talents; totals reflect them.
func (c *Creature) AssignTalents(cat *talent.Catalog, src dice.Source) []talent.Talent {
	c.talents = cat.Roll(src)
	c.Recompute()
	return c.Talents()
}

// SetTalents replaces the talents and recomputes stats.
func (c *Creature) SetTalents(ts []talent.Talent) {
	c.talents = append([]talent.Talent(nil), ts...)
	c.Recompute()
}

// SetRates replaces the base combat rates and recomputes stats.
func (c *Creature) SetRates(r Rates) {
	c.rates = r
	c.Recompute()
}

// SetLevel changes the level and recomputes stats, keeping the HP ratio.
//
// Precondition: level >= 1.
func (c *Creature) SetLevel(level float64) {
	c.level = math.Max(1, level)
	c.Recompute()
}

// LevelUp raises the level by one, resets the exp threshold, recomputes stats
// and fully heals.
func (c *Creature) LevelUp() {
	c.level++
	c.ExpToNext = ExpToLevel(c.level)
	c.recompute(true)
}

// RerollIVs draws new IVs, rederives the nature and recomputes stats.
func (c *Creature) RerollIVs(src dice.Source) {
	c.ivs = RollIVs(src)
	c.Nature = NatureFor(c.ivs)
	c.Recompute()
}

// Damage subtracts amount from HP, flooring at zero, and returns the HP lost.
//
// Precondition: amount >= 0.
func (c *Creature) Damage(amount int) int {
	lost := min(max(amount, 0), c.hp)
	c.hp -= lost
	return lost
}

// Heal adds amount to HP, capped at MaxHP, and returns the HP gained.
func (c *Creature) Heal(amount int) int {
	gained := min(max(amount, 0), c.totals.MaxHP-c.hp)
	c.hp += gained
	return gained
}

// FullHeal restores HP to MaxHP.
func (c *Creature) FullHeal() { c.hp = c.totals.MaxHP }

// GainEnergy adds energy up to MaxEnergy.
func (c *Creature) GainEnergy(n int) { c.energy = min(c.MaxEnergy, c.energy+max(n, 0)) }

// SpendEnergy removes energy down to zero.
func (c *Creature) SpendEnergy(n int) { c.energy = max(0, c.energy-max(n, 0)) }

// DrainEnergy sets energy to zero.
func (c *Creature) DrainEnergy() { c.energy = 0 }

// FillEnergy sets energy to MaxEnergy.
func (c *Creature) FillEnergy() { c.energy = c.MaxEnergy }

// CanUse reports whether the creature can afford m.
func (c *Creature) CanUse(m *species.Move) bool {
	return !m.IsCharge() || c.energy >= m.Energy
}

// ApplyMoveEnergy applies m's energy rule: Fast moves gain EnergyGain, Charge
// moves spend Energy.
func (c *Creature) ApplyMoveEnergy(m *species.Move) {
	if m == nil {
		return
	}
	switch m.Category {
	case species.Fast:
		c.GainEnergy(m.EnergyGain)
	case species.Charge:
		c.SpendEnergy(m.Energy)
	}
}

// Reveal drops a disguise, switching to the true form's stats while keeping
// the HP ratio. It returns false when there is no disguise or the true form
// is unknown, leaving the creature unchanged.
func (c *Creature) Reveal(lookup SpeciesLookup) bool {
	if c.Disguise == nil {
		return false
	}
	sp, ok := lookup.Species(c.Disguise.TrueForm)
	if !ok {
		return false
	}
	c.species = sp
	c.Disguise = nil
	c.Recompute()
	return true
}

// Clone returns an independent copy with the same ID.
func (c *Creature) Clone() *Creature {
	cp := *c
	cp.talents = append([]talent.Talent(nil), c.talents...)
	if c.Disguise != nil {
		d := *c.Disguise
		cp.Disguise = &d
	}
	return &cp
}

// String returns "Name Lv N (CP x)".
func (c *Creature) String() string {
	return fmt.Sprintf("%s Lv %g (CP %d)", c.DisplayName(), c.level, c.totals.CP)
}
