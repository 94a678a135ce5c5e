// Package trainer models the player: party, active creature, currencies and
// the item bag.
package trainer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/pocketbattle/internal/game/creature"
)

var (
	// ErrPartyFull is returned when adding past the party limit.
	ErrPartyFull = errors.New("party is full")
	// ErrInvalidIndex is returned for a party index out of range.
	ErrInvalidIndex = errors.New("no creature at that party slot")
	// ErrFainted is returned when selecting a fainted creature as active.
	ErrFainted = errors.New("creature has fainted")
	// ErrInsufficientCoins is returned by Buy when the trainer cannot pay.
	ErrInsufficientCoins = errors.New("not enough coins")
	// ErrUnknownItem is returned for an item with no shop listing or effect.
	ErrUnknownItem = errors.New("unknown item")
)

const (
	// DefaultPartyLimit bounds the party when no limit is configured.
	DefaultPartyLimit = 30
	// StartingCoins and StartingStardust are a new trainer's currencies.
	StartingCoins    = 50
	StartingStardust = 500
	// NoActive is the active index when no creature is out.
	NoActive = -1
)

// Trainer is the player. A Trainer is not safe for concurrent use; a battle
// session serializes access to it.
type Trainer struct {
	ID       string
	Name     string
	Level    int
	Exp      int
	Coins    int
	Stardust int
	Party    []*creature.Creature
	Items    Inventory
	// LastUsedBerry is the most recent berry fed; a pinap doubles the next reward.
	LastUsedBerry string
	PartyLimit    int

	activeIndex int
}

// New creates a level 1 trainer with starting currencies, the default bag
// and an empty party.
//
// Postcondition: ActiveIndex() == NoActive.
func New(name string, partyLimit int) *Trainer {
	if partyLimit <= 0 {
		partyLimit = DefaultPartyLimit
	}
	return &Trainer{
		ID:          uuid.New().String(),
		Name:        name,
		Level:       1,
		Coins:       StartingCoins,
		Stardust:    StartingStardust,
		Items:       DefaultInventory(),
		PartyLimit:  partyLimit,
		activeIndex: NoActive,
	}
}

// ActiveIndex returns the party index of the active creature or NoActive.
func (t *Trainer) ActiveIndex() int { return t.activeIndex }

// Active returns the active creature, nil when none is out.
func (t *Trainer) Active() *creature.Creature {
	if t.activeIndex < 0 || t.activeIndex >= len(t.Party) {
		return nil
	}
	return t.Party[t.activeIndex]
}

// SetActive makes Party[i] the active creature.
//
// Postcondition: on error the active index is unchanged.
func (t *Trainer) SetActive(i int) error {
	if i < 0 || i >= len(t.Party) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	if t.Party[i].Fainted() {
		return fmt.Errorf("%w: %s", ErrFainted, t.Party[i].DisplayName())
	}
	t.activeIndex = i
	return nil
}

// ClearActive leaves no creature out.
func (t *Trainer) ClearActive() { t.activeIndex = NoActive }

// NextHealthy returns the first party index with HP > 0, or NoActive.
func (t *Trainer) NextHealthy() int {
	for i, c := range t.Party {
		if !c.Fainted() {
			return i
		}
	}
	return NoActive
}

// AddToParty appends c and selects it when no creature is active.
//
// Postcondition: returns ErrPartyFull without change when the party is at its limit.
func (t *Trainer) AddToParty(c *creature.Creature) error {
	if len(t.Party) >= t.PartyLimit {
		return fmt.Errorf("%w (%d)", ErrPartyFull, t.PartyLimit)
	}
	t.Party = append(t.Party, c)
	if t.Active() == nil && !c.Fainted() {
		t.activeIndex = len(t.Party) - 1
	}
	return nil
}

// PartyFull reports whether another creature can be added.
func (t *Trainer) PartyFull() bool { return len(t.Party) >= t.PartyLimit }

// HealAll restores every party member to full HP and full energy and returns
// the party size.
func (t *Trainer) HealAll() int {
	for _, c := range t.Party {
		c.FullHeal()
		c.FillEnergy()
	}
	if t.Active() == nil {
		t.activeIndex = t.NextHealthy()
	}
	return len(t.Party)
}

// Buy purchases one unit of an item from the shop.
//
// Postcondition: on error coins and bag are unchanged.
func (t *Trainer) Buy(cat Category, name string) error {
	price, ok := ShopPrice(cat, name)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownItem, cat, name)
	}
	if t.Coins < price {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientCoins, name, price, t.Coins)
	}
	t.Coins -= price
	return t.Items.Add(cat, name, 1)
}

// Record is the persistent form of a trainer without its party.
type Record struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Level         int       `json:"level"`
	Exp           int       `json:"exp"`
	Coins         int       `json:"coins"`
	Stardust      int       `json:"stardust"`
	ActiveIndex   int       `json:"active_index"`
	Items         Inventory `json:"items"`
	LastUsedBerry string    `json:"last_used_berry"`
}

// Record returns the trainer's persistent fields.
func (t *Trainer) Record() Record {
	return Record{
		ID:            t.ID,
		Name:          t.Name,
		Level:         t.Level,
		Exp:           t.Exp,
		Coins:         t.Coins,
		Stardust:      t.Stardust,
		ActiveIndex:   t.activeIndex,
		Items:         t.Items.Clone(),
		LastUsedBerry: t.LastUsedBerry,
	}
}

// FromRecord rebuilds a trainer from a record and its restored party.
//
// Postcondition: an out-of-range or fainted active index is replaced by NextHealthy().
func FromRecord(r Record, party []*creature.Creature, partyLimit int) *Trainer {
	t := New(r.Name, partyLimit)
	t.ID = r.ID
	t.Level = max(1, r.Level)
	t.Exp = r.Exp
	t.Coins = r.Coins
	t.Stardust = r.Stardust
	t.LastUsedBerry = r.LastUsedBerry
	if r.Items != nil {
		t.Items = r.Items.Clone()
	}
	t.Party = party
	if err := t.SetActive(r.ActiveIndex); err != nil {
		t.activeIndex = t.NextHealthy()
	}
	return t
}
