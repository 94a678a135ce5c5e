// Package talent defines rarity-tiered stat modifiers and the weighted roll
// that assigns them to creatures.
package talent

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rarity is a talent tier, ordered Common < Uncommon < Rare < Epic < Legendary < Mythical.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
	Mythical
)

// Rarities lists every tier from most to least rare, the order the roll walks.
var Rarities = []Rarity{Mythical, Legendary, Epic, Rare, Uncommon, Common}

// String returns the tier name.
func (r Rarity) String() string {
	switch r {
	case Common:
		return "Common"
	case Uncommon:
		return "Uncommon"
	case Rare:
		return "Rare"
	case Epic:
		return "Epic"
	case Legendary:
		return "Legendary"
	case Mythical:
		return "Mythical"
	default:
		return "Unknown"
	}
}

// Color returns the presentation color tag for the tier.
func (r Rarity) Color() string {
	switch r {
	case Mythical:
		return "red"
	case Legendary:
		return "yellow"
	case Epic:
		return "purple"
	case Rare:
		return "orange"
	case Uncommon:
		return "green"
	default:
		return "white"
	}
}

// Chance returns the selection probability of the tier.
func (r Rarity) Chance() float64 {
	switch r {
	case Mythical:
		return 0.01
	case Legendary:
		return 0.04
	case Epic:
		return 0.10
	case Rare:
		return 0.20
	case Uncommon:
		return 0.30
	default:
		return 0.35
	}
}

// ParseRarity resolves a tier name case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	for _, r := range Rarities {
		if strings.EqualFold(r.String(), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

// UnmarshalYAML accepts tier names.
func (r *Rarity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseRarity(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RarityFor maps a uniform roll in [0, 1) onto a tier by walking cumulative
// chances from Mythical down; anything left over is Common.
func RarityFor(roll float64) Rarity {
	cum := 0.0
	for _, r := range Rarities {
		cum += r.Chance()
		if roll < cum {
			return r
		}
	}
	return Common
}

// Talent is an immutable modifier template. Flat bonuses add to attack,
// defense and stamina; rate bonuses add to crit rate, crit damage and dodge.
type Talent struct {
	Name       string  `yaml:"name"`
	Rarity     Rarity  `yaml:"rarity"`
	Attack     float64 `yaml:"atk"`
	Defense    float64 `yaml:"def"`
	Stamina    float64 `yaml:"sta"`
	CritRate   float64 `yaml:"crit_rate"`
	CritDamage float64 `yaml:"crit_dmg"`
	DodgeRate  float64 `yaml:"dodge_rate"`
}

// Color returns the presentation color of the talent's tier.
func (t Talent) Color() string { return t.Rarity.Color() }
