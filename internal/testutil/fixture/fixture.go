// Package fixture builds small in-memory species, move and route tables for
// unit tests. It has no container or network dependencies.
package fixture

import (
	"github.com/cory-johannsen/pocketbattle/internal/game/element"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
)

// Moves returns the fixture move table.
func Moves() []*species.Move {
	return []*species.Move{
		{Name: "Tackle", Category: species.Fast, Type: element.Normal, Power: 5, EnergyGain: 5},
		{Name: "Quick Attack", Category: species.Fast, Type: element.Normal, Power: 8, EnergyGain: 10},
		{Name: "Vine Whip", Category: species.Fast, Type: element.Grass, Power: 7, EnergyGain: 6},
		{Name: "Ember", Category: species.Fast, Type: element.Fire, Power: 10, EnergyGain: 10},
		{Name: "Water Gun", Category: species.Fast, Type: element.Water, Power: 5, EnergyGain: 5},
		{Name: "Lick", Category: species.Fast, Type: element.Ghost, Power: 5, EnergyGain: 6},
		{Name: "Transform", Category: species.Fast, Type: element.Normal, Power: 1, EnergyGain: 1},
		{Name: "Sludge Bomb", Category: species.Charge, Type: element.Poison, Power: 80, Energy: 50},
		{Name: "Flamethrower", Category: species.Charge, Type: element.Fire, Power: 70, Energy: 50},
		{Name: "Hydro Pump", Category: species.Charge, Type: element.Water, Power: 130, Energy: 75},
		{Name: "Aerial Ace", Category: species.Charge, Type: element.Flying, Power: 55, Energy: 45},
		{Name: "Shadow Ball", Category: species.Charge, Type: element.Ghost, Power: 100, Energy: 50},
		{Name: "Hidden Power", Category: species.Charge, Type: element.Normal, Power: 15, Energy: 35},
	}
}

// Species returns the fixture species table.
func Species() []*species.Species {
	return []*species.Species{
		{ID: 1, Name: "Bulbasaur", Types: []element.Type{element.Grass, element.Poison},
			BaseAttack: 118, BaseDefense: 111, BaseStamina: 128, MaxCP: 1115, CatchRate: 0.5,
			FastMoves: []string{"Vine Whip", "Tackle"}, ChargedMoves: []string{"Sludge Bomb"}},
		{ID: 4, Name: "Charmander", Types: []element.Type{element.Fire},
			BaseAttack: 116, BaseDefense: 93, BaseStamina: 118, MaxCP: 980, CatchRate: 0.5,
			FastMoves: []string{"Ember"}, ChargedMoves: []string{"Flamethrower"}},
		{ID: 7, Name: "Squirtle", Types: []element.Type{element.Water},
			BaseAttack: 94, BaseDefense: 121, BaseStamina: 127, MaxCP: 946, CatchRate: 0.5,
			FastMoves: []string{"Water Gun", "Tackle"}, ChargedMoves: []string{"Hydro Pump"}},
		{ID: 16, Name: "Pidgey", Types: []element.Type{element.Normal, element.Flying},
			BaseAttack: 85, BaseDefense: 73, BaseStamina: 120, MaxCP: 680, CatchRate: 0.7,
			FastMoves: []string{"Quick Attack", "Tackle"}, ChargedMoves: []string{"Aerial Ace"}},
		{ID: 92, Name: "Gastly", Types: []element.Type{element.Ghost, element.Poison},
			BaseAttack: 186, BaseDefense: 67, BaseStamina: 102, MaxCP: 1002, CatchRate: 0.4,
			FastMoves: []string{"Lick"}, ChargedMoves: []string{"Shadow Ball", "Sludge Bomb"}},
		{ID: 132, Name: "Ditto", Types: []element.Type{element.Normal},
			BaseAttack: 91, BaseDefense: 91, BaseStamina: 134, MaxCP: 919, CatchRate: 0.5,
			FastMoves: []string{"Transform"}},
		{ID: 201, Name: "Unown", Types: []element.Type{element.Psychic},
			BaseAttack: 136, BaseDefense: 91, BaseStamina: 134, MaxCP: 1100, CatchRate: 0.3,
			ChargedMoves: []string{"Hidden Power"}},
	}
}

// Registry returns a registry over Species and Moves. It panics if the
// fixture tables are inconsistent.
func Registry() *species.Registry {
	reg, err := species.NewRegistry(Species(), Moves())
	if err != nil {
		panic("fixture: " + err.Error())
	}
	return reg
}
