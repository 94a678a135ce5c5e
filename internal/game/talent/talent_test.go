package talent_test

import (
	"testing"

	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRarityFor_CumulativeBands(t *testing.T) {
	tests := []struct {
		roll float64
		want talent.Rarity
	}{
		{0.0, talent.Mythical},
		{0.0099, talent.Mythical},
		{0.01, talent.Legendary},
		{0.049, talent.Legendary},
		{0.05, talent.Epic},
		{0.149, talent.Epic},
		{0.15, talent.Rare},
		{0.349, talent.Rare},
		{0.35, talent.Uncommon},
		{0.649, talent.Uncommon},
		{0.65, talent.Common},
		{0.999, talent.Common},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, talent.RarityFor(tc.roll), "roll=%v", tc.roll)
	}
}

func TestRarity_OrderingAndLabels(t *testing.T) {
	assert.Less(t, int(talent.Common), int(talent.Mythical))
	assert.Equal(t, "red", talent.Mythical.Color())
	assert.Equal(t, "white", talent.Common.Color())
	assert.Equal(t, "Legendary", talent.Legendary.String())

	sum := 0.0
	for _, r := range talent.Rarities {
		sum += r.Chance()
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDefaultCatalog_SixPerTier(t *testing.T) {
	c := talent.DefaultCatalog()
	assert.Equal(t, 36, c.Len())
	for _, r := range talent.Rarities {
		assert.Len(t, c.Pool(r), 6, r.String())
	}
	g, ok := c.Lookup("Godspeed")
	require.True(t, ok)
	assert.Equal(t, talent.Mythical, g.Rarity)
}

func TestNewCatalog_RejectsDuplicateNames(t *testing.T) {
	_, err := talent.NewCatalog([]talent.Talent{{Name: "A"}, {Name: "A", Rarity: talent.Rare}})
	assert.Error(t, err)
}

func TestRoll_SingleSlot(t *testing.T) {
	c := talent.DefaultCatalog()
	// count roll 0.2 -> one slot; rarity roll 0.005 -> Mythical; pick index 2.
	src := dice.NewScript([]float64{0.2, 0.005}, []int{2})
	got := c.Roll(src)
	require.Len(t, got, 1)
	assert.Equal(t, "Solarflare", got[0].Name)
}

func TestRoll_SecondSlotExcludesFirst(t *testing.T) {
	c, err := talent.NewCatalog([]talent.Talent{
		{Name: "Only", Rarity: talent.Common, Attack: 1},
		{Name: "Other", Rarity: talent.Uncommon},
	})
	require.NoError(t, err)
	// two slots, both Common; the single Common talent cannot repeat so the
	// second slot is skipped.
	src := dice.NewScript([]float64{0.7, 0.9, 0.9}, []int{0})
	got := c.Roll(src)
	require.Len(t, got, 1)
	assert.Equal(t, "Only", got[0].Name)
}

func TestRoll_EmptyPoolSkipsSlot(t *testing.T) {
	c, err := talent.NewCatalog([]talent.Talent{{Name: "Only", Rarity: talent.Common}})
	require.NoError(t, err)
	src := dice.NewScript([]float64{0.2, 0.001}, nil)
	assert.Empty(t, c.Roll(src))
}

func TestLoadCatalogFromBytes(t *testing.T) {
	c, err := talent.LoadCatalogFromBytes([]byte(`talents:
  - name: Lucky
    rarity: rare
    crit_rate: 0.1
  - name: Brawny
    rarity: Common
    atk: 4
`))
	require.NoError(t, err)
	l, ok := c.Lookup("Lucky")
	require.True(t, ok)
	assert.Equal(t, talent.Rare, l.Rarity)
	assert.Equal(t, 0.1, l.CritRate)

	_, err = talent.LoadCatalogFromBytes([]byte("talents:\n  - name: X\n    rarity: cosmic\n"))
	assert.Error(t, err)
}

func TestProperty_RollDistinctAndBounded(t *testing.T) {
	c := talent.DefaultCatalog()
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		got := c.Roll(src)
		assert.LessOrEqual(rt, len(got), 2)
		if len(got) == 2 {
			assert.NotEqual(rt, got[0].Name, got[1].Name)
		}
	})
}
