package creature

import "github.com/cory-johannsen/pocketbattle/internal/game/dice"

// MaxIV is the highest individual value per stat.
const MaxIV = 15

// IVs are the per-creature individual values, each in [0, MaxIV].
type IVs struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Stamina int `json:"stamina"`
}

// RollIVs draws each IV independently and uniformly from [0, MaxIV].
func RollIVs(src dice.Source) IVs {
	return IVs{
		Attack:  dice.IntRange(src, 0, MaxIV),
		Defense: dice.IntRange(src, 0, MaxIV),
		Stamina: dice.IntRange(src, 0, MaxIV),
	}
}

// Total returns the sum of the three IVs.
func (v IVs) Total() int { return v.Attack + v.Defense + v.Stamina }

// Valid reports whether every IV is in range.
func (v IVs) Valid() bool {
	in := func(x int) bool { return x >= 0 && x <= MaxIV }
	return in(v.Attack) && in(v.Defense) && in(v.Stamina)
}

// Nature is a flavour label derived once from IVs.
type Nature string

// NatureFor derives the nature from IVs: perfect and near-perfect spreads
// first, then the set of stats at 10 or above, then flat spreads, then the
// highest IV band.
func NatureFor(v IVs) Nature {
	switch total := v.Total(); {
	case total == 3*MaxIV:
		return "Mythical"
	case total >= 42:
		return "Legendary"
	}

	hiAtk, hiDef, hiSta := v.Attack >= 10, v.Defense >= 10, v.Stamina >= 10
	switch {
	case hiAtk && hiDef && !hiSta:
		return "Mighty"
	case hiAtk && hiSta && !hiDef:
		return "Fierce"
	case hiDef && hiSta && !hiAtk:
		return "Sturdy"
	case hiAtk && !hiDef && !hiSta:
		return "Brave"
	case hiDef && !hiAtk && !hiSta:
		return "Timid"
	case hiSta && !hiAtk && !hiDef:
		return "Bold"
	}

	if v.Attack == v.Defense && v.Defense == v.Stamina {
		switch {
		case v.Attack <= 3:
			return "Humble"
		case v.Attack <= 6:
			return "Steady"
		case v.Attack <= 9:
			return "Solid"
		default:
			return "Prime"
		}
	}

	switch top := max(v.Attack, v.Defense, v.Stamina); {
	case top <= 3:
		return "Mild"
	case top <= 6:
		return "Plain"
	case top <= 9:
		return "Rookie"
	}
	return "Neutral"
}

// Appraisal is the star rating shown for an IV spread.
type Appraisal struct {
	Stars int
	Label string
}

// Appraise rates an IV spread.
func Appraise(v IVs) Appraisal {
	total := v.Total()
	switch {
	case v.Attack == MaxIV && v.Defense == MaxIV && v.Stamina == MaxIV:
		return Appraisal{Stars: 4, Label: "PERFECT"}
	case total >= 37:
		return Appraisal{Stars: 3, Label: "Excellent"}
	case total >= 30:
		return Appraisal{Stars: 3, Label: "Great"}
	case total >= 23:
		return Appraisal{Stars: 2, Label: "Good"}
	case total >= 1:
		return Appraisal{Stars: 1, Label: "OK"}
	default:
		return Appraisal{Stars: 0, Label: "Trash"}
	}
}
