// Package element holds the elemental types and the static weakness,
// resistance and immunity chart used by damage resolution.
package element

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type is an elemental type such as Fire or Water.
type Type string

const (
	Normal   Type = "Normal"
	Fire     Type = "Fire"
	Water    Type = "Water"
	Electric Type = "Electric"
	Grass    Type = "Grass"
	Ice      Type = "Ice"
	Fighting Type = "Fighting"
	Poison   Type = "Poison"
	Ground   Type = "Ground"
	Flying   Type = "Flying"
	Psychic  Type = "Psychic"
	Bug      Type = "Bug"
	Rock     Type = "Rock"
	Ghost    Type = "Ghost"
	Dragon   Type = "Dragon"
	Dark     Type = "Dark"
	Steel    Type = "Steel"
	Fairy    Type = "Fairy"
)

// All lists every known type in chart order.
var All = []Type{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

// Parse resolves a type name case-insensitively.
//
// Postcondition: Returns the canonical Type or an error for unknown names.
func Parse(s string) (Type, error) {
	name := strings.TrimSpace(s)
	for _, t := range All {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown element type %q", s)
}

// UnmarshalYAML accepts type names in any case.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Contains reports whether types includes t.
func Contains(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
