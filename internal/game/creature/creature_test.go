package creature_test

import (
	"testing"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/element"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func charmander() *species.Species {
	return &species.Species{
		ID: 4, Name: "Charmander", Types: []element.Type{element.Fire},
		BaseAttack: 116, BaseDefense: 93, BaseStamina: 118, MaxCP: 980, CatchRate: 0.5,
	}
}

func ditto() *species.Species {
	return &species.Species{
		ID: 132, Name: "Ditto", Types: []element.Type{element.Normal},
		BaseAttack: 91, BaseDefense: 91, BaseStamina: 134, MaxCP: 900, CatchRate: 0.5,
	}
}

type lookup map[string]*species.Species

func (l lookup) Species(name string) (*species.Species, bool) {
	s, ok := l[name]
	return s, ok
}

func TestCPM_TableAndExtension(t *testing.T) {
	assert.Equal(t, 0.094, creature.CPM(1))
	assert.Equal(t, 0.135, creature.CPM(1.5))
	assert.Equal(t, 0.42, creature.CPM(10))
	assert.Equal(t, 0.42, creature.CPM(10.3), "floors to the half level")
	assert.Equal(t, 1.0, creature.CPM(30))
	assert.InDelta(t, 1.05, creature.CPM(35), 1e-9)
	assert.InDelta(t, 1.20, creature.CPM(50), 1e-9)
	assert.InDelta(t, 1.20, creature.CPM(80), 1e-9, "clamped at MaxLevel")
	assert.Equal(t, 0.094, creature.CPM(0))
}

func TestProperty_CPMMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Float64Range(1, 50).Draw(rt, "a")
		b := rapid.Float64Range(a, 50).Draw(rt, "b")
		assert.LessOrEqual(rt, creature.CPM(a), creature.CPM(b))
	})
}

func TestComputeTotals_Level10NoIVs(t *testing.T) {
	tot := creature.ComputeTotals(charmander(), 10, creature.IVs{}, nil, creature.DefaultRates())
	assert.InDelta(t, 57.4896, tot.Attack, 1e-6)
	assert.InDelta(t, 46.0908, tot.Defense, 1e-6)
	assert.InDelta(t, 58.4808, tot.Stamina, 1e-6)
	assert.Equal(t, 116, tot.MaxHP)
	assert.Equal(t, 52, tot.CP)
	assert.Equal(t, 980, tot.MaxCP)
	assert.Equal(t, 0.05, tot.CritRate)
	assert.Equal(t, 1.5, tot.CritDamage)
	assert.Equal(t, 0.05, tot.DodgeRate)
}

func TestComputeTotals_IVsAreFlatOffsets(t *testing.T) {
	base := creature.ComputeTotals(charmander(), 10, creature.IVs{}, nil, creature.DefaultRates())
	perfect := creature.ComputeTotals(charmander(), 10, creature.IVs{Attack: 15, Defense: 15, Stamina: 15}, nil, creature.DefaultRates())
	assert.InDelta(t, base.Attack+15, perfect.Attack, 1e-9)
	assert.InDelta(t, base.Defense+15, perfect.Defense, 1e-9)
	assert.InDelta(t, base.Stamina+15, perfect.Stamina, 1e-9)
	assert.Equal(t, 146, perfect.MaxHP)
	assert.Equal(t, 85, perfect.CP)
}

func TestComputeTotals_Floors(t *testing.T) {
	weak := &species.Species{Name: "Weak", Types: []element.Type{element.Bug}, BaseAttack: 1, BaseDefense: 1, BaseStamina: 1, MaxCP: 100}
	tot := creature.ComputeTotals(weak, 1, creature.IVs{}, nil, creature.DefaultRates())
	assert.Equal(t, float64(creature.MinAttack), tot.Attack)
	assert.Equal(t, float64(creature.MinDefense), tot.Defense)
	assert.Equal(t, float64(creature.MinStamina), tot.Stamina)
	assert.Equal(t, 20, tot.MaxHP)
}

func TestComputeTotals_TalentsScaleWithLevel(t *testing.T) {
	titan := []talent.Talent{{Name: "Titan", Rarity: talent.Legendary, Attack: 20, Defense: 10, Stamina: 15}}
	without := creature.ComputeTotals(charmander(), 25, creature.IVs{}, nil, creature.DefaultRates())
	with := creature.ComputeTotals(charmander(), 25, creature.IVs{}, titan, creature.DefaultRates())
	assert.InDelta(t, 10.0, with.Attack-without.Attack, 1e-9, "half of +20 at level 25")
	assert.InDelta(t, 5.0, with.Defense-without.Defense, 1e-9)
	assert.InDelta(t, 7.5, with.Stamina-without.Stamina, 1e-9)
	assert.InDelta(t, 10.0, with.Bonus.Attack, 1e-9)
}

func TestComputeTotals_RatesClamped(t *testing.T) {
	stacked := []talent.Talent{
		{Name: "A", CritRate: 5, DodgeRate: -5, CritDamage: -5},
	}
	tot := creature.ComputeTotals(charmander(), 50, creature.IVs{}, stacked, creature.DefaultRates())
	assert.Equal(t, 1.0, tot.CritRate)
	assert.Equal(t, 0.0, tot.DodgeRate)
	assert.Equal(t, 1.0, tot.CritDamage)
}

func TestCalculateCP_EarlyCapsAndFloor(t *testing.T) {
	tot := creature.ComputeTotals(charmander(), 3, creature.IVs{}, nil, creature.DefaultRates())
	assert.Equal(t, creature.MinCP, tot.CP)

	big := creature.Totals{Attack: 500, Defense: 500, Stamina: 500}
	cp, _ := creature.CalculateCP(big, 3, 10000, nil)
	assert.Equal(t, 55, cp)
	cp, _ = creature.CalculateCP(big, 5, 10000, nil)
	assert.Equal(t, 90, cp)
	cp, _ = creature.CalculateCP(big, 10, 10000, nil)
	assert.Equal(t, 180, cp)
}

func TestCalculateCP_BoundedByMaxCP(t *testing.T) {
	tot := creature.ComputeTotals(charmander(), 30, creature.IVs{Attack: 15, Defense: 15, Stamina: 15}, nil, creature.DefaultRates())
	assert.Equal(t, 980, tot.CP)
	assert.Equal(t, 980, tot.MaxCP)
}

func TestBonusMaxCP_CappedAtQuarter(t *testing.T) {
	huge := []talent.Talent{{Name: "X", Attack: 1000}}
	assert.Equal(t, 25, creature.BonusMaxCP(huge, 50, 100))

	small := []talent.Talent{{Name: "Y", Attack: 50, Defense: -10}}
	// 50 * 0.002 = 10% at full scale; negative deltas are ignored.
	assert.Equal(t, 10, creature.BonusMaxCP(small, 50, 100))
	assert.Equal(t, 5, creature.BonusMaxCP(small, 25, 100))
}

func TestNew_FullHPAndDefaults(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{})
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 116, c.MaxHP())
	assert.Equal(t, c.MaxHP(), c.HP())
	assert.Equal(t, 0, c.Energy())
	assert.Equal(t, creature.DefaultMaxEnergy, c.MaxEnergy)
	assert.Equal(t, creature.ExpToLevel(10), c.ExpToNext)
	assert.Equal(t, creature.Nature("Humble"), c.Nature)
	assert.Equal(t, "Charmander Lv 10 (CP 52)", c.String())
}

func TestRecompute_PreservesHPRatio(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{})
	c.Damage(58) // 116 -> 58, half HP
	c.SetLevel(20)
	assert.Equal(t, c.MaxHP()/2, c.HP())
	assert.Equal(t, int(c.Totals().Stamina*2), c.MaxHP())
}

func TestLevelUp_FullHeals(t *testing.T) {
	c := creature.New(charmander(), 5, creature.IVs{})
	c.Damage(10)
	c.LevelUp()
	assert.Equal(t, 6.0, c.Level())
	assert.Equal(t, c.MaxHP(), c.HP())
	assert.Equal(t, creature.ExpToLevel(6), c.ExpToNext)
}

func TestAssignTalents_RecomputesStats(t *testing.T) {
	c := creature.New(charmander(), 50, creature.IVs{})
	before := c.Totals().Attack
	// one slot, Mythical, Overlord (index 5).
	got := c.AssignTalents(talent.DefaultCatalog(), dice.NewScript([]float64{0.1, 0.001}, []int{5}))
	require.Len(t, got, 1)
	assert.Equal(t, "Overlord", got[0].Name)
	assert.InDelta(t, before+35, c.Totals().Attack, 1e-9)
	assert.Equal(t, c.MaxHP(), c.HP())
}

func TestRerollIVs_ChangesOnlyOnExplicitCall(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{Attack: 1, Defense: 2, Stamina: 3})
	c.SetLevel(12)
	c.SetTalents(nil)
	assert.Equal(t, creature.IVs{Attack: 1, Defense: 2, Stamina: 3}, c.IVs())

	c.RerollIVs(dice.NewScript(nil, []int{15, 15, 15}))
	assert.Equal(t, creature.IVs{Attack: 15, Defense: 15, Stamina: 15}, c.IVs())
	assert.Equal(t, creature.Nature("Mythical"), c.Nature)
}

func TestDamageAndHealClamp(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{})
	assert.Equal(t, 116, c.Damage(500))
	assert.Equal(t, 0, c.HP())
	assert.True(t, c.Fainted())
	assert.Equal(t, 0, c.Damage(5))
	assert.Equal(t, 116, c.Heal(1000))
	assert.Equal(t, c.MaxHP(), c.HP())
}

func TestEnergyRules(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{})
	ember := &species.Move{Name: "Ember", Category: species.Fast, EnergyGain: 60}
	blast := &species.Move{Name: "Fire Blast", Category: species.Charge, Energy: 80}

	assert.False(t, c.CanUse(blast))
	assert.True(t, c.CanUse(ember))
	c.ApplyMoveEnergy(ember)
	c.ApplyMoveEnergy(ember)
	assert.Equal(t, 100, c.Energy(), "clamped at max")
	assert.True(t, c.CanUse(blast))
	c.ApplyMoveEnergy(blast)
	assert.Equal(t, 20, c.Energy())
	c.ApplyMoveEnergy(blast)
	assert.Equal(t, 0, c.Energy(), "floored at zero")
	c.FillEnergy()
	assert.Equal(t, 100, c.Energy())
	c.DrainEnergy()
	assert.Equal(t, 0, c.Energy())
}

func TestReveal_SwitchesToTrueForm(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{})
	c.Disguise = &creature.Disguise{TrueForm: "Ditto"}
	assert.Equal(t, "Charmander", c.DisplayName())
	assert.Equal(t, "Ditto", c.TrueName())

	c.Damage(c.HP())
	require.True(t, c.Reveal(lookup{"Ditto": ditto()}))
	assert.Nil(t, c.Disguise)
	assert.Equal(t, "Ditto", c.DisplayName())
	assert.Equal(t, 0, c.HP(), "a fainted creature stays fainted")
	assert.Equal(t, int(c.Totals().Stamina*2), c.MaxHP())

	assert.False(t, c.Reveal(lookup{}))
}

func TestReveal_UnknownTrueFormLeavesCreature(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{})
	c.Disguise = &creature.Disguise{TrueForm: "Ditto"}
	assert.False(t, c.Reveal(lookup{}))
	assert.NotNil(t, c.Disguise)
}

func TestClone_Independent(t *testing.T) {
	c := creature.New(charmander(), 10, creature.IVs{})
	c.SetTalents([]talent.Talent{{Name: "Sharp", Attack: 3}})
	cp := c.Clone()
	cp.Damage(10)
	cp.SetTalents(nil)
	assert.Equal(t, c.MaxHP(), c.HP())
	assert.Len(t, c.Talents(), 1)
}

func TestSnapshotRestore_RoundTripsSourceData(t *testing.T) {
	cat := talent.DefaultCatalog()
	titan, _ := cat.Lookup("Titan")
	c := creature.New(charmander(), 22, creature.IVs{Attack: 4, Defense: 9, Stamina: 12})
	c.SetTalents([]talent.Talent{titan})
	c.Shiny = true
	c.Exp = 40
	c.Damage(7)
	c.GainEnergy(35)

	r, err := creature.Restore(c.Snapshot(), lookup{"Charmander": charmander()}, cat)
	require.NoError(t, err)
	assert.Equal(t, c.ID, r.ID)
	assert.Equal(t, c.Totals(), r.Totals())
	assert.Equal(t, c.HP(), r.HP())
	assert.Equal(t, c.Energy(), r.Energy())
	assert.Equal(t, c.Nature, r.Nature)
	assert.True(t, r.Shiny)
}

func TestRestore_Errors(t *testing.T) {
	cat := talent.DefaultCatalog()
	_, err := creature.Restore(creature.Snapshot{Species: "Nope", Level: 1}, lookup{}, cat)
	assert.Error(t, err)

	_, err = creature.Restore(creature.Snapshot{Species: "Charmander", Level: 1, Talents: []string{"Nope"}},
		lookup{"Charmander": charmander()}, cat)
	assert.Error(t, err)

	_, err = creature.Restore(creature.Snapshot{Species: "Charmander", Level: 1, IVs: creature.IVs{Attack: 16}},
		lookup{"Charmander": charmander()}, cat)
	assert.Error(t, err)
}

func TestNatureFor(t *testing.T) {
	tests := []struct {
		ivs  creature.IVs
		want creature.Nature
	}{
		{creature.IVs{15, 15, 15}, "Mythical"},
		{creature.IVs{15, 15, 12}, "Legendary"},
		{creature.IVs{12, 11, 2}, "Mighty"},
		{creature.IVs{12, 2, 11}, "Fierce"},
		{creature.IVs{2, 12, 11}, "Sturdy"},
		{creature.IVs{12, 2, 2}, "Brave"},
		{creature.IVs{2, 12, 2}, "Timid"},
		{creature.IVs{2, 2, 12}, "Bold"},
		{creature.IVs{2, 2, 2}, "Humble"},
		{creature.IVs{5, 5, 5}, "Steady"},
		{creature.IVs{8, 8, 8}, "Solid"},
		{creature.IVs{11, 11, 11}, "Prime"},
		{creature.IVs{1, 3, 0}, "Mild"},
		{creature.IVs{1, 6, 0}, "Plain"},
		{creature.IVs{1, 9, 0}, "Rookie"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, creature.NatureFor(tc.ivs), "%+v", tc.ivs)
	}
}

func TestAppraise(t *testing.T) {
	assert.Equal(t, "PERFECT", creature.Appraise(creature.IVs{15, 15, 15}).Label)
	assert.Equal(t, "Excellent", creature.Appraise(creature.IVs{15, 15, 7}).Label)
	assert.Equal(t, "Great", creature.Appraise(creature.IVs{10, 10, 10}).Label)
	assert.Equal(t, "Good", creature.Appraise(creature.IVs{8, 8, 7}).Label)
	assert.Equal(t, "OK", creature.Appraise(creature.IVs{1, 0, 0}).Label)
	assert.Equal(t, 0, creature.Appraise(creature.IVs{}).Stars)
}

func TestExpToLevel(t *testing.T) {
	assert.Equal(t, 10, creature.ExpToLevel(1))
	assert.Equal(t, 130, creature.ExpToLevel(5))
	assert.Equal(t, 130, creature.ExpToLevel(5.5))
	assert.Equal(t, 505, creature.ExpToLevel(10))
}

func TestProperty_HPAndEnergyStayInBounds(t *testing.T) {
	cat := talent.DefaultCatalog()
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		c := creature.New(charmander(), rapid.Float64Range(1, 60).Draw(rt, "level"), creature.RollIVs(src))
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 6).Draw(rt, "op") {
			case 0:
				c.Damage(rapid.IntRange(0, 300).Draw(rt, "dmg"))
			case 1:
				c.Heal(rapid.IntRange(0, 300).Draw(rt, "heal"))
			case 2:
				c.SetLevel(rapid.Float64Range(1, 60).Draw(rt, "lvl"))
			case 3:
				c.AssignTalents(cat, src)
			case 4:
				c.GainEnergy(rapid.IntRange(0, 200).Draw(rt, "gain"))
			case 5:
				c.SpendEnergy(rapid.IntRange(0, 200).Draw(rt, "spend"))
			case 6:
				c.LevelUp()
			}
			assert.GreaterOrEqual(rt, c.HP(), 0)
			assert.LessOrEqual(rt, c.HP(), c.MaxHP())
			assert.GreaterOrEqual(rt, c.Energy(), 0)
			assert.LessOrEqual(rt, c.Energy(), c.MaxEnergy)
			assert.Equal(rt, int(c.Totals().Stamina*2), c.MaxHP())
		}
	})
}
