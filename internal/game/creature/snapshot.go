package creature

import (
	"fmt"

	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

// Snapshot is the persistent form of a creature. It holds only source data;
// derived totals are rebuilt by Restore.
type Snapshot struct {
	ID        string   `json:"id"`
	Species   string   `json:"species"`
	Level     float64  `json:"level"`
	IVs       IVs      `json:"ivs"`
	Nature    Nature   `json:"nature"`
	Shiny     bool     `json:"shiny"`
	Talents   []string `json:"talents"`
	Exp       int      `json:"exp"`
	ExpToNext int      `json:"exp_to_next"`
	HP        int      `json:"hp"`
	Energy    int      `json:"energy"`
	MaxEnergy int      `json:"max_energy"`
	CatchRate float64  `json:"catch_rate"`
}

// Snapshot captures the creature's source data.
func (c *Creature) Snapshot() Snapshot {
	names := make([]string, len(c.talents))
	for i, t := range c.talents {
		names[i] = t.Name
	}
	return Snapshot{
		ID:        c.ID,
		Species:   c.TrueName(),
		Level:     c.level,
		IVs:       c.ivs,
		Nature:    c.Nature,
		Shiny:     c.Shiny,
		Talents:   names,
		Exp:       c.Exp,
		ExpToNext: c.ExpToNext,
		HP:        c.hp,
		Energy:    c.energy,
		MaxEnergy: c.MaxEnergy,
		CatchRate: c.CatchRate,
	}
}

// Restore rebuilds a creature from a snapshot, recomputing all totals.
//
// Postcondition: HP and energy are clamped to the recomputed maxima.
func Restore(s Snapshot, lookup SpeciesLookup, cat *talent.Catalog) (*Creature, error) {
	sp, ok := lookup.Species(s.Species)
	if !ok {
		return nil, fmt.Errorf("restoring creature %s: unknown species %q", s.ID, s.Species)
	}
	if !s.IVs.Valid() {
		return nil, fmt.Errorf("restoring creature %s: ivs out of range: %+v", s.ID, s.IVs)
	}
	talents := make([]talent.Talent, 0, len(s.Talents))
	for _, name := range s.Talents {
		t, ok := cat.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("restoring creature %s: unknown talent %q", s.ID, name)
		}
		talents = append(talents, t)
	}

	c := New(sp, s.Level, s.IVs)
	c.ID = s.ID
	c.Nature = s.Nature
	c.Shiny = s.Shiny
	c.Exp = s.Exp
	if s.ExpToNext > 0 {
		c.ExpToNext = s.ExpToNext
	}
	if s.MaxEnergy > 0 {
		c.MaxEnergy = s.MaxEnergy
	}
	if s.CatchRate > 0 {
		c.CatchRate = s.CatchRate
	}
	c.talents = talents
	c.recompute(true)
	c.hp = max(0, min(s.HP, c.totals.MaxHP))
	c.energy = max(0, min(s.Energy, c.MaxEnergy))
	return c, nil
}
