package trainer

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
)

var (
	// ErrNoTarget is returned when an item needs a creature and none is given.
	ErrNoTarget = errors.New("no creature to use the item on")
	// ErrNotUsable is returned for items with no effect in this context.
	ErrNotUsable = errors.New("item cannot be used here")
	// ErrInsufficientStardust is returned by PowerUp when the trainer cannot pay.
	ErrInsufficientStardust = errors.New("not enough stardust")
	// ErrMaxLevel is returned when a creature cannot gain further levels.
	ErrMaxLevel = errors.New("creature is at max level")
)

const (
	// PowerUpCost is the stardust spent per power-up.
	PowerUpCost = 200
	// PowerUpLevels is the level gained per power-up.
	PowerUpLevels = 0.5
)

// UseItem applies a berry or evolve item to target and consumes one unit.
// Special/stardust powers target up and spends stardust instead of a bag
// item. Balls are thrown through a battle session, not here.
//
// Precondition: target is the creature to affect.
// Postcondition: on error neither the bag nor target is changed; the returned
// message describes the effect.
func (t *Trainer) UseItem(cat Category, name string, target *creature.Creature) (string, error) {
	if target == nil {
		return "", ErrNoTarget
	}
	if cat == Special && name == Stardust {
		if err := t.PowerUp(target); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s powered up! (Lv %g)", target.DisplayName(), target.Level()), nil
	}
	if t.Items.Count(cat, name) <= 0 {
		return "", fmt.Errorf("%w: %s/%s", ErrNoItem, cat, name)
	}

	var msg string
	switch cat {
	case Berries:
		m, err := t.feedBerry(name, target)
		if err != nil {
			return "", err
		}
		msg = m
	case EvolveItems:
		if name != RareCandy {
			return "", fmt.Errorf("%w: %s", ErrNotUsable, name)
		}
		if target.Level() >= creature.MaxLevel {
			return "", fmt.Errorf("%w: %s", ErrMaxLevel, target.DisplayName())
		}
		target.SetLevel(target.Level() + 1)
		target.ExpToNext = creature.ExpToLevel(target.Level())
		msg = fmt.Sprintf("%s gained +1 level! (Lv %g)", target.DisplayName(), target.Level())
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrNotUsable, cat, name)
	}

	if err := t.Items.Consume(cat, name); err != nil {
		return "", err
	}
	return msg, nil
}

func (t *Trainer) feedBerry(name string, c *creature.Creature) (string, error) {
	var msg string
	switch name {
	case Razz:
		msg = fmt.Sprintf("%s healed %d HP!", c.DisplayName(), c.Heal(20))
	case Silver:
		msg = fmt.Sprintf("%s healed %d HP!", c.DisplayName(), c.Heal(50))
	case Golden:
		c.FullHeal()
		msg = fmt.Sprintf("%s fully healed!", c.DisplayName())
	case Pinap:
		msg = "Reward exp will double!"
	case Nanab:
		msg = "Wild creature slowed down!"
	default:
		return "", fmt.Errorf("%w: berry %q", ErrUnknownItem, name)
	}
	t.LastUsedBerry = name
	return msg, nil
}

// PowerUp spends PowerUpCost stardust to raise c by PowerUpLevels, keeping
// its HP ratio.
//
// Postcondition: on error stardust and c are unchanged.
func (t *Trainer) PowerUp(c *creature.Creature) error {
	if c == nil {
		return ErrNoTarget
	}
	if c.Level()+PowerUpLevels > creature.MaxLevel {
		return fmt.Errorf("%w: %s", ErrMaxLevel, c.DisplayName())
	}
	if t.Stardust < PowerUpCost {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientStardust, PowerUpCost, t.Stardust)
	}
	t.Stardust -= PowerUpCost
	c.SetLevel(c.Level() + PowerUpLevels)
	c.ExpToNext = creature.ExpToLevel(c.Level())
	return nil
}
