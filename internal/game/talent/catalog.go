package talent

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pocketbattle/internal/game/dice"
)

// Catalog holds the talent pools by rarity. Names are unique across all pools.
// A Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	pools  map[Rarity][]Talent
	byName map[string]Talent
}

// NewCatalog indexes talents into pools.
//
// Postcondition: Returns an error if a name is empty or repeated.
func NewCatalog(talents []Talent) (*Catalog, error) {
	c := &Catalog{
		pools:  make(map[Rarity][]Talent),
		byName: make(map[string]Talent, len(talents)),
	}
	for _, t := range talents {
		if t.Name == "" {
			return nil, fmt.Errorf("talent: name must not be empty")
		}
		if _, dup := c.byName[t.Name]; dup {
			return nil, fmt.Errorf("talent %q defined more than once", t.Name)
		}
		c.byName[t.Name] = t
		c.pools[t.Rarity] = append(c.pools[t.Rarity], t)
	}
	return c, nil
}

// LoadCatalogFromBytes parses a `talents:` list from YAML.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var f struct {
		Talents []Talent `yaml:"talents"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing talents YAML: %w", err)
	}
	return NewCatalog(f.Talents)
}

// Lookup returns the talent with the given name.
func (c *Catalog) Lookup(name string) (Talent, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Pool returns a copy of the talents of one rarity.
func (c *Catalog) Pool(r Rarity) []Talent {
	return append([]Talent(nil), c.pools[r]...)
}

// Len returns the number of talents in the catalog.
func (c *Catalog) Len() int { return len(c.byName) }

// SingleSlotChance is the probability Roll draws one talent instead of two.
const SingleSlotChance = 0.5

// Roll draws one or two talents with equal probability. Each slot rolls a
// rarity and then picks uniformly among that tier's talents not already
// drawn; a slot whose filtered pool is empty is skipped.
//
// Postcondition: Returns 0 to 2 talents with distinct names.
func (c *Catalog) Roll(src dice.Source) []Talent {
	count := 2
	if dice.Chance(src, SingleSlotChance) {
		count = 1
	}
	out := make([]Talent, 0, count)
	for i := 0; i < count; i++ {
		rarity := RarityFor(src.Float64())
		var available []Talent
		for _, t := range c.pools[rarity] {
			if !hasName(out, t.Name) {
				available = append(available, t)
			}
		}
		if len(available) == 0 {
			continue
		}
		out = append(out, available[src.Intn(len(available))])
	}
	return out
}

func hasName(ts []Talent, name string) bool {
	for _, t := range ts {
		if t.Name == name {
			return true
		}
	}
	return false
}

// DefaultCatalog returns the built-in talent pools.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultTalents)
	if err != nil {
		panic("talent: invalid built-in catalog: " + err.Error())
	}
	return c
}

var defaultTalents = []Talent{
	{Name: "Energetic", Rarity: Common, Attack: 5},
	{Name: "Clumsy", Rarity: Common, Attack: -5, Stamina: 5},
	{Name: "Tough", Rarity: Common, Defense: 5, Stamina: 5},
	{Name: "Agile", Rarity: Common, DodgeRate: 0.02},
	{Name: "Resistant", Rarity: Common, Defense: 3, Stamina: 3},
	{Name: "Sharp", Rarity: Common, Attack: 3},

	{Name: "Focused", Rarity: Uncommon, Attack: 7, CritRate: 0.05},
	{Name: "Resilient", Rarity: Uncommon, Defense: 7, Stamina: 3},
	{Name: "Swift", Rarity: Uncommon, DodgeRate: 0.03},
	{Name: "Balanced", Rarity: Uncommon, Attack: 3, Defense: 3, Stamina: 3},
	{Name: "Nimble", Rarity: Uncommon, DodgeRate: 0.05},
	{Name: "Keen", Rarity: Uncommon, Attack: 4, CritRate: 0.04},

	{Name: "Savage", Rarity: Rare, Attack: 10, Defense: -5},
	{Name: "Fortified", Rarity: Rare, Defense: 10, Stamina: 5},
	{Name: "Precision", Rarity: Rare, CritRate: 0.07, CritDamage: 0.07},
	{Name: "Vigilant", Rarity: Rare, Defense: 5, DodgeRate: 0.05},
	{Name: "Feral", Rarity: Rare, Attack: 8, Stamina: 4},
	{Name: "Sharpshooter", Rarity: Rare, CritRate: 0.08, CritDamage: 0.05},

	{Name: "Berserker", Rarity: Epic, Attack: 15, Defense: -10, CritRate: 0.05},
	{Name: "Guardian", Rarity: Epic, Attack: -5, Defense: 15, Stamina: 10},
	{Name: "Deadeye", Rarity: Epic, CritRate: 0.10, CritDamage: 0.15, DodgeRate: -0.05},
	{Name: "Stormbringer", Rarity: Epic, Attack: 12, CritRate: 0.08},
	{Name: "Ironwall", Rarity: Epic, Defense: 12, Stamina: 8},
	{Name: "Dodgemaster", Rarity: Epic, Attack: 4, DodgeRate: 0.08},

	{Name: "Titan", Rarity: Legendary, Attack: 20, Defense: 10, Stamina: 15},
	{Name: "Phantom", Rarity: Legendary, Defense: -5, CritRate: 0.15, CritDamage: 0.20, DodgeRate: 0.10},
	{Name: "Invoker", Rarity: Legendary, Attack: 15, Stamina: -5, CritDamage: 0.15},
	{Name: "Warbringer", Rarity: Legendary, Attack: 18, Stamina: 10},
	{Name: "Shieldbearer", Rarity: Legendary, Attack: -5, Defense: 18, Stamina: 12},
	{Name: "Trickster", Rarity: Legendary, Defense: -5, CritRate: 0.12, DodgeRate: 0.12},

	{Name: "Godspeed", Rarity: Mythical, Attack: 25, Defense: 25, Stamina: 25, CritRate: 0.15, CritDamage: 0.15},
	{Name: "Eclipse", Rarity: Mythical, Attack: 30, Defense: -10, CritRate: 0.20, DodgeRate: 0.15},
	{Name: "Solarflare", Rarity: Mythical, Attack: 28, Stamina: 15, CritDamage: 0.20},
	{Name: "Aegis", Rarity: Mythical, Attack: -5, Defense: 30, Stamina: 20},
	{Name: "Shadowstep", Rarity: Mythical, Attack: 10, CritRate: 0.15, DodgeRate: 0.20},
	{Name: "Overlord", Rarity: Mythical, Attack: 35, Defense: 10, Stamina: 10, CritDamage: 0.15},
}
