package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/progression"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
	"github.com/cory-johannsen/pocketbattle/internal/testutil/fixture"
)

func TestRewardExp_EvenMatch(t *testing.T) {
	v := progression.Victory{WildLevel: 10, AttackerLevel: 10}
	assert.Equal(t, 100, progression.RewardExp(v))
	assert.Equal(t, 75, progression.PlayerRewardExp(v))
}

func TestRewardExp_Bonuses(t *testing.T) {
	v := progression.Victory{WildLevel: 12, AttackerLevel: 5, Shiny: true, Pinap: true}
	assert.Equal(t, 495, progression.RewardExp(v), "110 * 1.5 * 2 * 1.5 (capped level mod)")
	assert.Equal(t, 371, progression.PlayerRewardExp(v))
}

func TestRewardExp_Underdog(t *testing.T) {
	v := progression.Victory{WildLevel: 5, AttackerLevel: 10}
	assert.Equal(t, 37, progression.RewardExp(v))
	assert.Equal(t, 28, progression.PlayerRewardExp(v))

	far := progression.Victory{WildLevel: 1, AttackerLevel: 50}
	assert.Equal(t, 0, progression.RewardExp(far))
	assert.Equal(t, 0, progression.PlayerRewardExp(far))
}

func TestLevelMod(t *testing.T) {
	assert.Equal(t, 1.0, progression.LevelMod(10, 10))
	assert.Equal(t, 1.5, progression.LevelMod(30, 10))
	assert.Equal(t, 0.5, progression.LevelMod(5, 10))
}

func newMon(t *testing.T, level float64) *creature.Creature {
	sp, ok := fixture.Registry().Species("Charmander")
	require.True(t, ok)
	return creature.New(sp, level, creature.IVs{})
}

func TestGainCreatureExp_SingleLevel(t *testing.T) {
	c := newMon(t, 5)
	c.Exp = 120
	c.ExpToNext = 100
	c.Damage(7)

	reached := progression.GainCreatureExp(c, 0)
	assert.Equal(t, []float64{6}, reached)
	assert.Equal(t, 6.0, c.Level())
	assert.Equal(t, 20, c.Exp)
	assert.Equal(t, creature.ExpToLevel(6), c.ExpToNext)
	assert.Equal(t, c.MaxHP(), c.HP(), "level-up heals fully")
}

func TestGainCreatureExp_MultiLevel(t *testing.T) {
	c := newMon(t, 1)
	require.Equal(t, 10, c.ExpToNext)
	reached := progression.GainCreatureExp(c, 40)
	assert.Equal(t, []float64{2, 3}, reached)
	assert.Equal(t, 5, c.Exp)
	assert.Equal(t, 50, c.ExpToNext)
}

func TestGainCreatureExp_NoLevel(t *testing.T) {
	c := newMon(t, 3)
	c.Damage(5)
	hp := c.HP()
	assert.Empty(t, progression.GainCreatureExp(c, 1))
	assert.Equal(t, 1, c.Exp)
	assert.Equal(t, hp, c.HP())
}

func TestGainPlayerExp(t *testing.T) {
	tr := trainer.New("Ash", 0)
	reached := progression.GainPlayerExp(tr, 36)
	assert.Equal(t, []int{2, 3}, reached)
	assert.Equal(t, 3, tr.Level)
	assert.Equal(t, 1, tr.Exp)
}

func TestCoinReward(t *testing.T) {
	assert.Equal(t, 10, progression.CoinReward(10, dice.NewScript([]float64{0}, nil)))
	assert.Equal(t, 14, progression.CoinReward(10, dice.NewScript([]float64{0.999}, nil)))
	assert.Equal(t, 8, progression.CoinReward(5, dice.NewScript([]float64{0.1}, nil)))
}

func TestProperty_CoinRewardRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 50).Draw(rt, "level")
		coins := progression.CoinReward(float64(level), dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")))
		assert.GreaterOrEqual(rt, coins, 5+level/2)
		assert.Less(rt, float64(coins), 10+float64(level)/2)
	})
}

func TestRollLoot(t *testing.T) {
	inv := trainer.Inventory{trainer.Berries: {trainer.Golden: 0, trainer.Razz: 1}}

	_, ok := progression.RollLoot(inv, progression.DefaultLootChance, dice.NewScript([]float64{0.3}, nil))
	assert.False(t, ok)

	drop, ok := progression.RollLoot(inv, progression.DefaultLootChance, dice.NewScript([]float64{0.1}, []int{0}))
	require.True(t, ok)
	assert.Equal(t, trainer.Golden, drop.Name)
	assert.NotEmpty(t, drop.InstanceID)

	drop, ok = progression.RollLoot(inv, progression.DefaultLootChance, dice.NewScript([]float64{0.1}, []int{5}))
	require.True(t, ok)
	assert.Equal(t, trainer.Razz, drop.Name)
	assert.Equal(t, trainer.Berries, drop.Category)

	assert.Equal(t, 1, inv.Count(trainer.Berries, trainer.Razz), "rolling does not grant the item")

	_, ok = progression.RollLoot(trainer.Inventory{}, 1, dice.NewScript([]float64{0}, nil))
	assert.False(t, ok, "no slots, no pool")
}

func TestLootWeight(t *testing.T) {
	assert.Equal(t, progression.RareWeight, progression.LootWeight("masterball"))
	assert.Equal(t, progression.RareWeight, progression.LootWeight(trainer.Golden))
	assert.Equal(t, progression.CommonWeight, progression.LootWeight("pokeball"))
}

func TestProperty_LootComesFromTheBag(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		inv := trainer.DefaultInventory()
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		drop, ok := progression.RollLoot(inv, 1, src)
		require.True(rt, ok)
		_, known := inv[drop.Category][drop.Name]
		assert.True(rt, known)
	})
}
