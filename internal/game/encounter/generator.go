package encounter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

var (
	// ErrNoSpawnTable is returned for a nil route or one without spawns.
	ErrNoSpawnTable = errors.New("no wild creatures on this route")
	// ErrWildActive is returned while a non-fainted wild creature is still out.
	ErrWildActive = errors.New("a wild creature is still active")
	// ErrUnknownSpecies is returned when a spawn names a species not in the registry.
	ErrUnknownSpecies = errors.New("unknown species")
)

// Config tunes the probabilistic parts of wild generation.
type Config struct {
	// ShinyChance is the probability a wild creature is shiny.
	ShinyChance float64
	// DisguiseChance is the probability a wild creature is secretly DisguiseForm.
	DisguiseChance float64
	// DisguiseForm is the species that hides behind other species.
	DisguiseForm string
}

// DefaultConfig returns a 50% shiny chance and a 10% Ditto disguise chance.
func DefaultConfig() Config {
	return Config{ShinyChance: 0.5, DisguiseChance: 0.1, DisguiseForm: "Ditto"}
}

// Generator creates wild creatures. It is safe for concurrent use if src is.
type Generator struct {
	reg *species.Registry
	cat *talent.Catalog
	src dice.Source
	cfg Config
}

// NewGenerator creates a Generator.
//
// Precondition: reg, cat and src must be non-nil.
func NewGenerator(reg *species.Registry, cat *talent.Catalog, src dice.Source, cfg Config) *Generator {
	return &Generator{reg: reg, cat: cat, src: src, cfg: cfg}
}

// Config returns the generator's tuning.
func (g *Generator) Config() Config { return g.cfg }

// Generate builds a wild creature from route. active is the wild creature
// currently out, if any.
//
// Random draws, in order: spawn, level, three IVs, shiny, talents, and the
// disguise roll when the picked species is not itself the disguise form.
//
// Postcondition: on success the creature has full HP, zero energy, 1 to 2
// talents (fewer only on an exhausted pool) and totals computed; on error
// no draws beyond the failing step are made and nil is returned.
func (g *Generator) Generate(route *Route, active *creature.Creature) (*creature.Creature, error) {
	if active != nil && !active.Fainted() {
		return nil, fmt.Errorf("%w: %s", ErrWildActive, active.DisplayName())
	}
	if route == nil || len(route.Spawns) == 0 {
		return nil, ErrNoSpawnTable
	}

	entry, _ := SelectSpawn(route.Spawns, g.src.Float64())
	sp, ok := g.reg.Species(entry.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q on route %q", ErrUnknownSpecies, entry.Name, route.ID)
	}

	level := dice.IntRange(g.src, route.LevelRange[0], route.LevelRange[1])

	wild := creature.New(sp, float64(level), creature.RollIVs(g.src))
	wild.Shiny = dice.Chance(g.src, g.cfg.ShinyChance)
	wild.AssignTalents(g.cat, g.src)

	if g.cfg.DisguiseForm != "" && !sameName(sp.Name, g.cfg.DisguiseForm) {
		if _, known := g.reg.Species(g.cfg.DisguiseForm); known && dice.Chance(g.src, g.cfg.DisguiseChance) {
			wild.Disguise = &creature.Disguise{TrueForm: g.cfg.DisguiseForm}
		}
	}
	return wild, nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// StarterNames are the species a new trainer may receive.
var StarterNames = []string{"Bulbasaur", "Charmander", "Squirtle"}

// Starter picks one of StarterNames uniformly, rolls IVs and talents, and
// returns it at level with full HP and zero energy.
//
// Precondition: level >= 1.
// Postcondition: returns ErrUnknownSpecies if the picked starter is missing from reg.
func Starter(reg *species.Registry, cat *talent.Catalog, src dice.Source, level float64) (*creature.Creature, error) {
	name := StarterNames[src.Intn(len(StarterNames))]
	sp, ok := reg.Species(name)
	if !ok {
		return nil, fmt.Errorf("%w: starter %q", ErrUnknownSpecies, name)
	}
	c := creature.New(sp, level, creature.RollIVs(src))
	c.AssignTalents(cat, src)
	return c, nil
}
