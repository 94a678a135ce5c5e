// Package species holds the read-only species and move databases that the
// battle engine looks creatures and attacks up in.
package species

import (
	"fmt"

	"github.com/cory-johannsen/pocketbattle/internal/game/element"
)

const (
	// DefaultBaseStat replaces a missing base attack, defense or stamina.
	DefaultBaseStat = 10
	// DefaultMaxCP replaces a missing max CP.
	DefaultMaxCP = 100
	// DefaultCatchRate replaces a missing catch rate.
	DefaultCatchRate = 0.5
)

// Species is the immutable template a creature is instantiated from.
type Species struct {
	ID           int            `yaml:"id"`
	Name         string         `yaml:"name"`
	Types        []element.Type `yaml:"types"`
	BaseAttack   int            `yaml:"base_attack"`
	BaseDefense  int            `yaml:"base_defense"`
	BaseStamina  int            `yaml:"base_stamina"`
	MaxCP        int            `yaml:"max_cp"`
	CatchRate    float64        `yaml:"catch_rate"`
	FastMoves    []string       `yaml:"fast_moves"`
	ChargedMoves []string       `yaml:"charged_moves"`
	Sprite       string         `yaml:"sprite"`
}

// Validate checks invariants and fills defaults for omitted numeric fields.
//
// Postcondition: On nil return, base stats and MaxCP are > 0 and CatchRate is in (0, 1].
func (s *Species) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("species %d: name must not be empty", s.ID)
	}
	if len(s.Types) == 0 {
		return fmt.Errorf("species %q: at least one type is required", s.Name)
	}
	if s.BaseAttack < 0 || s.BaseDefense < 0 || s.BaseStamina < 0 {
		return fmt.Errorf("species %q: base stats must be >= 0", s.Name)
	}
	if s.BaseAttack == 0 {
		s.BaseAttack = DefaultBaseStat
	}
	if s.BaseDefense == 0 {
		s.BaseDefense = DefaultBaseStat
	}
	if s.BaseStamina == 0 {
		s.BaseStamina = DefaultBaseStat
	}
	if s.MaxCP < 0 {
		return fmt.Errorf("species %q: max_cp must be >= 0", s.Name)
	}
	if s.MaxCP == 0 {
		s.MaxCP = DefaultMaxCP
	}
	if s.CatchRate < 0 || s.CatchRate > 1 {
		return fmt.Errorf("species %q: catch_rate must be in [0, 1], got %f", s.Name, s.CatchRate)
	}
	if s.CatchRate == 0 {
		s.CatchRate = DefaultCatchRate
	}
	return nil
}

// AllMoves returns fast moves followed by charged moves.
func (s *Species) AllMoves() []string {
	out := make([]string, 0, len(s.FastMoves)+len(s.ChargedMoves))
	out = append(out, s.FastMoves...)
	return append(out, s.ChargedMoves...)
}

// HasType reports whether the species carries t.
func (s *Species) HasType(t element.Type) bool {
	return element.Contains(s.Types, t)
}
