package combat

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/element"
	"github.com/cory-johannsen/pocketbattle/internal/game/species"
)

// ErrMoveNotFound is reported on a DamageResult whose move name did not resolve.
var ErrMoveNotFound = errors.New("move not found")

const (
	// STABMultiplier applies when the attacker shares the move's type.
	STABMultiplier = 1.2
	// VarianceFloor and VarianceSpan bound the random damage multiplier to
	// [VarianceFloor, VarianceFloor+VarianceSpan).
	VarianceFloor = 0.85
	VarianceSpan  = 0.15
)

// MoveLookup resolves move definitions by name.
type MoveLookup interface {
	Move(name string) (*species.Move, bool)
}

// DamageResult holds the outcome of a single attack.
type DamageResult struct {
	// Move is the resolved move, nil when Err is ErrMoveNotFound.
	Move *species.Move
	// Damage is the final damage dealt after crit or dodge.
	Damage int
	// PreCrit is the damage before the crit/dodge branch; always >= 1.
	PreCrit        int
	DidCrit        bool
	DidDodge       bool
	DidSTAB        bool
	TypeMultiplier float64
	Variance       float64
	// Log is the human readable summary in fixed tag order.
	Log string
	Err error
}

// Effectiveness classifies TypeMultiplier.
func (r DamageResult) Effectiveness() element.Effectiveness {
	return element.EffectivenessOf(r.TypeMultiplier)
}

// ResolveDamage computes one attack of attacker against defender with the
// named move. It does not mutate either creature.
//
// Random draws, in order: variance, crit, and dodge only when the attack did
// not crit.
//
// Precondition: attacker, defender, moves and src must be non-nil.
// Postcondition: PreCrit >= 1; Damage == 0 iff DidDodge; an unknown move
// yields Damage == 1 with Err == ErrMoveNotFound and consumes no draws.
func ResolveDamage(attacker, defender *creature.Creature, moveName string, moves MoveLookup, src dice.Source) DamageResult {
	move, ok := moves.Move(moveName)
	if !ok {
		return DamageResult{
			Damage:         1,
			PreCrit:        1,
			TypeMultiplier: 1,
			Log:            "Move not found",
			Err:            fmt.Errorf("%w: %q", ErrMoveNotFound, moveName),
		}
	}

	atk := attacker.Totals()
	def := defender.Totals()

	levelMult := 0.5 + attacker.Level()/20
	base := float64(move.Power) * (atk.Attack / def.Defense) * levelMult

	stab := 1.0
	didSTAB := attacker.Species().HasType(move.Type)
	if didSTAB {
		stab = STABMultiplier
	}
	typeMult := element.Multiplier(move.Type, defender.Species().Types)
	variance := dice.Between(src, VarianceFloor, VarianceFloor+VarianceSpan)

	preCrit := max(1, int(math.Floor(base*stab*typeMult*variance)))

	didCrit := dice.Chance(src, atk.CritRate)
	didDodge := !didCrit && dice.Chance(src, def.DodgeRate)

	dmg := preCrit
	switch {
	case didCrit:
		dmg = int(math.Floor(float64(preCrit) * atk.CritDamage))
	case didDodge:
		dmg = 0
	}

	r := DamageResult{
		Move:           move,
		Damage:         dmg,
		PreCrit:        preCrit,
		DidCrit:        didCrit,
		DidDodge:       didDodge,
		DidSTAB:        didSTAB,
		TypeMultiplier: typeMult,
		Variance:       variance,
	}
	r.Log = damageLog(r)
	return r
}

func damageLog(r DamageResult) string {
	var parts []string
	if r.DidCrit {
		parts = append(parts, "Critical Hit!")
	}
	if r.DidDodge {
		parts = append(parts, "Attack Dodged!")
	}
	if r.Damage > 0 {
		parts = append(parts, fmt.Sprintf("%d damage", r.Damage))
	}
	if tag := r.Effectiveness().String(); tag != "" {
		parts = append(parts, tag)
	}
	if r.DidSTAB {
		parts = append(parts, "STAB applied!")
	}
	return strings.Join(parts, " ")
}
