package trainer

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/cory-johannsen/pocketbattle/internal/game/capture"
)

// ErrNoItem is returned when consuming an item the trainer does not hold.
var ErrNoItem = errors.New("item not in inventory")

// Category groups items in the bag.
type Category string

const (
	Berries     Category = "berries"
	Balls       Category = "balls"
	Stones      Category = "stones"
	EvolveItems Category = "evolve_items"
	// Special holds currency-backed actions that never appear in the bag.
	Special Category = "special"
)

// Categories lists bag categories in display order.
var Categories = []Category{Berries, Balls, Stones, EvolveItems}

// Item names with in-battle effects.
const (
	Razz      = "razz"
	Nanab     = "nanab"
	Pinap     = "pinap"
	Silver    = "silver"
	Golden    = "golden"
	RareCandy = "rare_candy"
	Stardust  = "stardust"
)

// Entry is one bag slot. Count may be zero; a known item stays listed after
// its last unit is used.
type Entry struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Count    int      `json:"count"`
}

// Inventory holds item counts by category and name.
type Inventory map[Category]map[string]int

// DefaultInventory returns a new trainer's bag.
func DefaultInventory() Inventory {
	return Inventory{
		Berries: {Razz: 5, Nanab: 3, Pinap: 2, Silver: 1, Golden: 0},
		Balls:   {string(capture.Pokeball): 10, string(capture.Greatball): 5, string(capture.Ultraball): 2, string(capture.Masterball): 0},
		Stones:  {"fire": 1, "water": 0, "leaf": 1, "thunder": 0, "moon": 0, "sun": 0},
		EvolveItems: {
			RareCandy: 3, "kings_rock": 1, "metal_coat": 0, "dragon_scale": 0,
			"upgrade": 0, "sinnoh_stone": 0, "unova_stone": 0,
		},
	}
}

// Add increases the count of an item, creating the slot if needed.
//
// Precondition: n > 0.
func (inv Inventory) Add(cat Category, name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("inventory: quantity must be > 0")
	}
	if inv[cat] == nil {
		inv[cat] = make(map[string]int)
	}
	inv[cat][name] += n
	return nil
}

// Consume removes one unit of an item.
//
// Postcondition: on ErrNoItem the inventory is unchanged.
func (inv Inventory) Consume(cat Category, name string) error {
	if inv.Count(cat, name) <= 0 {
		return fmt.Errorf("%w: %s/%s", ErrNoItem, cat, name)
	}
	inv[cat][name]--
	return nil
}

// Count returns the units held of an item.
func (inv Inventory) Count(cat Category, name string) int {
	return inv[cat][name]
}

// Entries lists every known slot ordered by category display order, then
// unknown categories alphabetically, then item name.
//
// Postcondition: the order depends only on the inventory's keys.
func (inv Inventory) Entries() []Entry {
	cats := make([]Category, 0, len(inv))
	for c := range inv {
		cats = append(cats, c)
	}
	rank := func(c Category) int {
		if i := slices.Index(Categories, c); i >= 0 {
			return i
		}
		return len(Categories)
	}
	sort.Slice(cats, func(i, j int) bool {
		ri, rj := rank(cats[i]), rank(cats[j])
		if ri != rj {
			return ri < rj
		}
		return cats[i] < cats[j]
	})

	var out []Entry
	for _, c := range cats {
		names := make([]string, 0, len(inv[c]))
		for n := range inv[c] {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			out = append(out, Entry{Category: c, Name: n, Count: inv[c][n]})
		}
	}
	return out
}

// Clone returns a deep copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for c, items := range inv {
		out[c] = make(map[string]int, len(items))
		for n, v := range items {
			out[c][n] = v
		}
	}
	return out
}

var shopPrices = map[Category]map[string]int{
	Berries: {Razz: 50, Nanab: 70, Pinap: 100, Silver: 150, Golden: 500},
	Balls:   {string(capture.Pokeball): 100, string(capture.Greatball): 300, string(capture.Ultraball): 500, string(capture.Masterball): 10000},
	Stones:  {"fire": 300, "water": 300, "leaf": 300, "thunder": 300, "moon": 300, "sun": 300},
	EvolveItems: {
		RareCandy: 1000, "kings_rock": 500, "metal_coat": 500, "dragon_scale": 500,
		"upgrade": 500, "sinnoh_stone": 800, "unova_stone": 800,
	},
}

// ShopPrice returns the coin price of an item.
func ShopPrice(cat Category, name string) (int, bool) {
	p, ok := shopPrices[cat][name]
	return p, ok
}
