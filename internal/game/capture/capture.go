// Package capture resolves ball throws against wild creatures.
package capture

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/talent"
)

// ErrNoWildTarget is returned when there is no wild creature to throw at.
var ErrNoWildTarget = errors.New("no wild creature to catch")

// DefaultCatchRate applies to wild creatures without a catch rate.
const DefaultCatchRate = 0.5

// Ball identifies a ball item.
type Ball string

const (
	Pokeball   Ball = "pokeball"
	Greatball  Ball = "greatball"
	Ultraball  Ball = "ultraball"
	Masterball Ball = "masterball"
)

// Balls lists every ball in ascending strength.
var Balls = []Ball{Pokeball, Greatball, Ultraball, Masterball}

// ParseBall resolves a ball name case-insensitively.
func ParseBall(s string) (Ball, error) {
	for _, b := range Balls {
		if strings.EqualFold(string(b), strings.TrimSpace(s)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown ball %q", s)
}

// Modifier returns the catch multiplier of b. Unknown balls count as a
// Pokeball; a Masterball saturates any positive catch rate.
func Modifier(b Ball) float64 {
	switch b {
	case Greatball:
		return 1.5
	case Ultraball:
		return 2
	case Masterball:
		return math.Inf(1)
	default:
		return 1
	}
}

// Probability returns catchRate * Modifier(b) clamped to [0, 1]. A
// non-positive catchRate falls back to DefaultCatchRate.
func Probability(catchRate float64, b Ball) float64 {
	if catchRate <= 0 {
		catchRate = DefaultCatchRate
	}
	return math.Max(0, math.Min(1, catchRate*Modifier(b)))
}

// Result is the outcome of one throw.
type Result struct {
	Caught bool
	// Creature is the new party record, nil on a miss.
	Creature    *creature.Creature
	Probability float64
	Roll        float64
	// Revealed is true when the wild creature's disguise dropped on capture.
	Revealed bool
}

// Resolver rolls captures and builds the captured creature record.
type Resolver struct {
	lookup creature.SpeciesLookup
	cat    *talent.Catalog
	src    dice.Source
}

// NewResolver creates a Resolver.
//
// Precondition: lookup, cat and src must be non-nil.
func NewResolver(lookup creature.SpeciesLookup, cat *talent.Catalog, src dice.Source) *Resolver {
	return &Resolver{lookup: lookup, cat: cat, src: src}
}

// Attempt throws ball at wild. One draw decides the catch; on success the
// talents of the new record are rerolled.
//
// The wild creature is never mutated. On success the returned creature is an
// independent record with a new ID, the wild's IVs, nature and level, its
// true form if disguised, default rates, rerolled talents, zero exp and
// energy, and full HP.
//
// Precondition: wild is non-nil and not fainted.
// Postcondition: Caught iff Roll < Probability.
func (r *Resolver) Attempt(wild *creature.Creature, ball Ball) (Result, error) {
	if wild == nil || wild.Fainted() {
		return Result{}, ErrNoWildTarget
	}

	res := Result{Probability: Probability(wild.CatchRate, ball)}
	res.Roll = r.src.Float64()
	res.Caught = res.Roll < res.Probability
	if !res.Caught {
		return res, nil
	}

	caught := wild.Clone()
	caught.ID = uuid.New().String()
	res.Revealed = caught.Reveal(r.lookup)
	caught.Exp = 0
	caught.ExpToNext = creature.ExpToLevel(caught.Level())
	caught.MaxEnergy = creature.DefaultMaxEnergy
	caught.SetRates(creature.DefaultRates())
	caught.AssignTalents(r.cat, r.src)
	caught.FullHeal()
	caught.DrainEnergy()
	res.Creature = caught
	return res, nil
}
