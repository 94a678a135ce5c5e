package content_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pocketbattle/internal/content"
	"github.com/cory-johannsen/pocketbattle/internal/game/encounter"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

func repoContentDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "content")
}

func TestLoad_ShippedContent(t *testing.T) {
	b, err := content.Load(context.Background(), repoContentDir(t))
	require.NoError(t, err)

	for _, name := range encounter.StarterNames {
		_, ok := b.Registry.Species(name)
		assert.True(t, ok, name)
	}
	_, ok := b.Registry.Species("Ditto")
	assert.True(t, ok, "disguise form must ship")

	r, ok := b.Route("route1")
	require.True(t, ok)
	assert.Equal(t, "Route 1", r.Name)
	assert.Equal(t, [2]int{2, 5}, r.LevelRange)
	assert.Contains(t, b.RouteIDs(), "pokemon_tower")
	assert.Equal(t, talent.DefaultCatalog().Len(), b.Catalog.Len())

	for _, name := range b.Registry.Names() {
		sp, _ := b.Registry.Species(name)
		assert.Len(t, b.Registry.MovesOf(sp), len(sp.AllMoves()), "%s has an unknown move", name)
	}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

const minimalSpecies = `species:
  - {id: 1, name: Bulbasaur, types: [grass], base_attack: 118, base_defense: 111, base_stamina: 128, fast_moves: [Tackle]}
`
const minimalMoves = `moves:
  - {name: Tackle, category: fast, type: normal, power: 5, energy_gain: 5}
`

func TestLoad_TalentOverride(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"species/a.yaml": minimalSpecies,
		"moves/a.yaml":   minimalMoves,
		"routes/a.yaml":  "routes:\n  - {id: r, wild: [{name: Bulbasaur, rate: 1}]}\n",
		"talents.yaml":   "talents:\n  - {name: Lucky, rarity: common, crit_rate: 0.1}\n",
	})
	b, err := content.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Catalog.Len())
	_, ok := b.Catalog.Lookup("Lucky")
	assert.True(t, ok)
}

func TestLoad_RouteWithUnknownSpecies(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"species/a.yaml": minimalSpecies,
		"moves/a.yaml":   minimalMoves,
		"routes/a.yaml":  "routes:\n  - {id: r, wild: [{name: Mew, rate: 1}]}\n",
	})
	_, err := content.Load(context.Background(), dir)
	assert.ErrorIs(t, err, encounter.ErrUnknownSpecies)
}

func TestLoad_DuplicateRouteID(t *testing.T) {
	route := "routes:\n  - {id: r, wild: [{name: Bulbasaur, rate: 1}]}\n"
	for name, files := range map[string]map[string]string{
		"same file":    {"routes/a.yaml": route + route[len("routes:\n"):]},
		"across files": {"routes/a.yaml": route, "routes/b.yaml": route},
	} {
		t.Run(name, func(t *testing.T) {
			files["species/a.yaml"] = minimalSpecies
			files["moves/a.yaml"] = minimalMoves
			_, err := content.Load(context.Background(), writeTree(t, files))
			assert.ErrorContains(t, err, `duplicate route "r"`)
		})
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := content.Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
