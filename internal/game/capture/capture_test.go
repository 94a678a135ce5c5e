package capture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pocketbattle/internal/game/capture"
	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
	"github.com/cory-johannsen/pocketbattle/internal/testutil/fixture"
)

func wild(t *testing.T, name string) *creature.Creature {
	sp, ok := fixture.Registry().Species(name)
	require.True(t, ok)
	c := creature.New(sp, 8, creature.IVs{Attack: 3, Defense: 9, Stamina: 14})
	c.Shiny = true
	c.Exp = 12
	c.GainEnergy(40)
	c.SetRates(creature.Rates{CritRate: 0.5, CritDamage: 3, DodgeRate: 0.5})
	return c
}

func TestProbability(t *testing.T) {
	assert.Equal(t, 0.5, capture.Probability(0.5, capture.Pokeball))
	assert.Equal(t, 0.75, capture.Probability(0.5, capture.Greatball))
	assert.Equal(t, 1.0, capture.Probability(0.5, capture.Ultraball))
	assert.Equal(t, 1.0, capture.Probability(0.7, capture.Ultraball), "clamped")
	assert.Equal(t, 1.0, capture.Probability(0.01, capture.Masterball))
	assert.Equal(t, 0.5, capture.Probability(0, capture.Pokeball), "default catch rate")
	assert.Equal(t, 0.3, capture.Probability(0.3, capture.Ball("net")), "unknown ball counts as a pokeball")
}

func TestProperty_ProbabilityInUnitInterval(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rate := rapid.Float64Range(-1, 2).Draw(rt, "rate")
		ball := rapid.SampledFrom(capture.Balls).Draw(rt, "ball")
		p := capture.Probability(rate, ball)
		assert.GreaterOrEqual(rt, p, 0.0)
		assert.LessOrEqual(rt, p, 1.0)
	})
}

func TestParseBall(t *testing.T) {
	b, err := capture.ParseBall(" UltraBall ")
	require.NoError(t, err)
	assert.Equal(t, capture.Ultraball, b)
	_, err = capture.ParseBall("safari")
	assert.Error(t, err)
}

func TestAttempt_UltraballAlwaysCatchesDefaultRate(t *testing.T) {
	w := wild(t, "Charmander")
	src := dice.NewScript([]float64{0.999, 0.2, 0.9}, []int{0})
	res, err := capture.NewResolver(fixture.Registry(), talent.DefaultCatalog(), src).Attempt(w, capture.Ultraball)
	require.NoError(t, err)
	assert.True(t, res.Caught)
	assert.Equal(t, 1.0, res.Probability)

	c := res.Creature
	require.NotNil(t, c)
	assert.NotEqual(t, w.ID, c.ID)
	assert.Equal(t, w.IVs(), c.IVs())
	assert.Equal(t, w.Nature, c.Nature)
	assert.Equal(t, w.Level(), c.Level())
	assert.True(t, c.Shiny)
	assert.Equal(t, 0, c.Exp)
	assert.Equal(t, 0, c.Energy())
	assert.Equal(t, c.MaxHP(), c.HP())
	assert.Equal(t, creature.DefaultRates(), c.Rates())
	require.Len(t, c.Talents(), 1)
	assert.Equal(t, "Energetic", c.Talents()[0].Name)

	assert.Equal(t, 40, w.Energy(), "the wild record is untouched")
	assert.Equal(t, 12, w.Exp)
}

func TestAttempt_Miss(t *testing.T) {
	w := wild(t, "Charmander")
	src := dice.NewScript([]float64{0.8}, nil)
	res, err := capture.NewResolver(fixture.Registry(), talent.DefaultCatalog(), src).Attempt(w, capture.Greatball)
	require.NoError(t, err)
	assert.False(t, res.Caught)
	assert.Nil(t, res.Creature)
	assert.Equal(t, 0.75, res.Probability)
	assert.Equal(t, 0.8, res.Roll)
}

func TestAttempt_RevealsDisguise(t *testing.T) {
	w := wild(t, "Pidgey")
	w.Disguise = &creature.Disguise{TrueForm: "Ditto"}
	src := dice.NewScript([]float64{0.0, 0.2, 0.9}, nil)
	res, err := capture.NewResolver(fixture.Registry(), talent.DefaultCatalog(), src).Attempt(w, capture.Pokeball)
	require.NoError(t, err)
	require.True(t, res.Caught)
	assert.True(t, res.Revealed)
	assert.Equal(t, "Ditto", res.Creature.DisplayName())
	assert.Nil(t, res.Creature.Disguise)
	assert.Equal(t, res.Creature.MaxHP(), res.Creature.HP())
	assert.Equal(t, "Pidgey", w.DisplayName())
}

func TestAttempt_NoTarget(t *testing.T) {
	r := capture.NewResolver(fixture.Registry(), talent.DefaultCatalog(), dice.NewSeededSource(3))
	_, err := r.Attempt(nil, capture.Pokeball)
	assert.ErrorIs(t, err, capture.ErrNoWildTarget)

	w := wild(t, "Squirtle")
	w.Damage(w.HP())
	_, err = r.Attempt(w, capture.Masterball)
	assert.ErrorIs(t, err, capture.ErrNoWildTarget)
}
