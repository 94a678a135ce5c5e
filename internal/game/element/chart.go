package element

// Matchup lists, for one defending type, the attacking types it takes double,
// half and no damage from.
type Matchup struct {
	Weak   []Type
	Resist []Type
	Immune []Type
}

var chart = map[Type]Matchup{
	Normal:   {Weak: []Type{Fighting}, Immune: []Type{Ghost}},
	Fire:     {Weak: []Type{Water, Rock, Ground}, Resist: []Type{Fire, Grass, Ice, Bug, Steel, Fairy}},
	Water:    {Weak: []Type{Electric, Grass}, Resist: []Type{Fire, Water, Ice, Steel}},
	Electric: {Weak: []Type{Ground}, Resist: []Type{Electric, Flying, Steel}},
	Grass:    {Weak: []Type{Fire, Ice, Poison, Flying, Bug}, Resist: []Type{Water, Electric, Grass, Ground}},
	Ice:      {Weak: []Type{Fire, Fighting, Rock, Steel}, Resist: []Type{Ice}},
	Fighting: {Weak: []Type{Flying, Psychic, Fairy}, Resist: []Type{Bug, Rock, Dark}},
	Poison:   {Weak: []Type{Ground, Psychic}, Resist: []Type{Grass, Fighting, Poison, Bug, Fairy}},
	Ground:   {Weak: []Type{Water, Grass, Ice}, Resist: []Type{Poison, Rock}, Immune: []Type{Electric}},
	Flying:   {Weak: []Type{Electric, Ice, Rock}, Resist: []Type{Grass, Fighting, Bug}, Immune: []Type{Ground}},
	Psychic:  {Weak: []Type{Bug, Ghost, Dark}, Resist: []Type{Fighting, Psychic}},
	Bug:      {Weak: []Type{Fire, Flying, Rock}, Resist: []Type{Grass, Fighting, Ground}},
	Rock:     {Weak: []Type{Water, Grass, Fighting, Ground, Steel}, Resist: []Type{Normal, Fire, Poison, Flying}},
	Ghost:    {Weak: []Type{Ghost, Dark}, Resist: []Type{Poison, Bug}, Immune: []Type{Normal, Fighting}},
	Dragon:   {Weak: []Type{Ice, Dragon, Fairy}, Resist: []Type{Fire, Water, Electric, Grass}},
	Dark:     {Weak: []Type{Fighting, Bug, Fairy}, Resist: []Type{Ghost, Dark}, Immune: []Type{Psychic}},
	Steel: {
		Weak:   []Type{Fire, Fighting, Ground},
		Resist: []Type{Normal, Grass, Ice, Flying, Psychic, Bug, Rock, Dragon, Steel, Fairy},
		Immune: []Type{Poison},
	},
	Fairy: {Weak: []Type{Poison, Steel}, Resist: []Type{Fighting, Bug, Dark}, Immune: []Type{Dragon}},
}

// MatchupOf returns the chart row for a defending type.
//
// Postcondition: ok is false for types not in the chart.
func MatchupOf(defender Type) (Matchup, bool) {
	m, ok := chart[defender]
	return m, ok
}

// Multiplier returns the damage multiplier of a move of type move against a
// defender with the given types. Each defending type contributes
// independently: immune gives 0, weak 2, resist 0.5, otherwise 1.
//
// Postcondition: Returns 0 iff some defending type is immune to move;
// otherwise returns 2^w * 0.5^r. An empty defender type list yields 1.
func Multiplier(move Type, defender []Type) float64 {
	mult := 1.0
	for _, d := range defender {
		m, ok := chart[d]
		if !ok {
			continue
		}
		switch {
		case Contains(m.Immune, move):
			mult *= 0
		case Contains(m.Weak, move):
			mult *= 2
		case Contains(m.Resist, move):
			mult *= 0.5
		}
	}
	return mult
}

// Effectiveness buckets a multiplier for battle log messages.
type Effectiveness int

const (
	NoEffect Effectiveness = iota
	NotVeryEffective
	Neutral
	SuperEffective
)

// EffectivenessOf classifies a type multiplier.
func EffectivenessOf(mult float64) Effectiveness {
	switch {
	case mult == 0:
		return NoEffect
	case mult < 1:
		return NotVeryEffective
	case mult > 1:
		return SuperEffective
	default:
		return Neutral
	}
}

// String returns the battle log tag, empty for Neutral.
func (e Effectiveness) String() string {
	switch e {
	case NoEffect:
		return "No Effect!"
	case NotVeryEffective:
		return "Not Very Effective..."
	case SuperEffective:
		return "Super Effective!"
	default:
		return ""
	}
}
