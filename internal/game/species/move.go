package species

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pocketbattle/internal/game/element"
)

// Category distinguishes energy-generating Fast moves from energy-spending
// Charge moves.
type Category string

const (
	Fast   Category = "Fast"
	Charge Category = "Charge"
)

// UnmarshalYAML accepts "fast"/"charge" in any case.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fast":
		*c = Fast
	case "charge", "charged":
		*c = Charge
	default:
		return fmt.Errorf("unknown move category %q", raw)
	}
	return nil
}

// DefaultMovePower is used when a move definition omits power.
const DefaultMovePower = 10

// Move is an immutable attack definition.
type Move struct {
	Name     string       `yaml:"name"`
	Category Category     `yaml:"category"`
	Type     element.Type `yaml:"type"`
	Power    int          `yaml:"power"`
	// EnergyGain is the energy a Fast move generates for its user.
	EnergyGain int `yaml:"energy_gain"`
	// Energy is the energy a Charge move costs its user.
	Energy int `yaml:"energy"`
}

// Validate checks the move invariants and fills the default power.
//
// Postcondition: Returns nil iff Name and Type are set, Category is Fast or
// Charge, and energy fields are non-negative.
func (m *Move) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("move: name must not be empty")
	}
	if m.Type == "" {
		return fmt.Errorf("move %q: type must not be empty", m.Name)
	}
	if m.Category != Fast && m.Category != Charge {
		return fmt.Errorf("move %q: category must be Fast or Charge", m.Name)
	}
	if m.Power < 0 {
		return fmt.Errorf("move %q: power must be >= 0", m.Name)
	}
	if m.Power == 0 {
		m.Power = DefaultMovePower
	}
	if m.EnergyGain < 0 || m.Energy < 0 {
		return fmt.Errorf("move %q: energy values must be >= 0", m.Name)
	}
	return nil
}

// IsCharge reports whether the move spends energy.
func (m *Move) IsCharge() bool { return m.Category == Charge }
