package progression

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/pocketbattle/internal/game/capture"
	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
	"github.com/cory-johannsen/pocketbattle/internal/game/trainer"
)

const (
	// DefaultLootChance is the probability a victory drops an item.
	DefaultLootChance = 0.25
	// CommonWeight and RareWeight weight the loot pool.
	CommonWeight = 5
	RareWeight   = 1
)

// rareLoot names items that drop at RareWeight.
var rareLoot = map[string]bool{trainer.Golden: true, string(capture.Masterball): true}

// LootWeight returns the pool weight of an item.
func LootWeight(name string) int {
	if rareLoot[name] {
		return RareWeight
	}
	return CommonWeight
}

// LootDrop is a single dropped item.
type LootDrop struct {
	InstanceID string
	Category   trainer.Category
	Name       string
}

// RollLoot rolls a drop against inv. The pool holds every item slot the bag
// knows, held or not, each repeated LootWeight times in Entries order.
//
// Random draws: one chance roll, then one pick when the roll passes and the
// pool is non-empty.
//
// Postcondition: ok is false when the roll fails or inv has no slots; inv is
// not modified.
func RollLoot(inv trainer.Inventory, chance float64, src dice.Source) (LootDrop, bool) {
	if !dice.Chance(src, chance) {
		return LootDrop{}, false
	}
	var pool []trainer.Entry
	for _, e := range inv.Entries() {
		for i := 0; i < LootWeight(e.Name); i++ {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		return LootDrop{}, false
	}
	pick := pool[src.Intn(len(pool))]
	return LootDrop{
		InstanceID: uuid.New().String(),
		Category:   pick.Category,
		Name:       pick.Name,
	}, true
}
