// Package reward generates post-encounter reward packages: a currency drop,
// a set of card options for the player to pick from, and chance-based item
// drops.
package reward

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/deckbound/internal/game/dice"
)

// CardOptionCount is the number of distinct card choices offered after a
// victory, when the pool is large enough to supply them.
const CardOptionCount = 3

// CurrencyDrop defines the range of currency an encounter awards on victory.
type CurrencyDrop struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ItemDrop is a single chance-based item entry in a reward table.
type ItemDrop struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// Table defines the rewards a defeated encounter can yield. CardPool lists
// the card template IDs eligible to appear as pick-one options.
type Table struct {
	Currency *CurrencyDrop `yaml:"currency"`
	CardPool []string      `yaml:"card_pool"`
	Items    []ItemDrop    `yaml:"items"`
}

// Validate checks that the reward table satisfies its invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff all currency, card pool, and item
// constraints hold; an empty table is valid.
func (t *Table) Validate() error {
	if t.Currency != nil {
		if t.Currency.Min < 0 {
			return fmt.Errorf("reward table: currency min must be >= 0, got %d", t.Currency.Min)
		}
		if t.Currency.Min > t.Currency.Max {
			return fmt.Errorf("reward table: currency min (%d) must be <= max (%d)", t.Currency.Min, t.Currency.Max)
		}
	}
	for i, id := range t.CardPool {
		if id == "" {
			return fmt.Errorf("reward table: card_pool[%d] must be a non-empty card id", i)
		}
	}
	for i, item := range t.Items {
		if item.ItemID == "" {
			return fmt.Errorf("reward table: item[%d] must have a non-empty item id", i)
		}
		if item.Chance <= 0 || item.Chance > 1.0 {
			return fmt.Errorf("reward table: item[%d] chance must be in (0, 1.0], got %f", i, item.Chance)
		}
		if item.MinQty < 1 {
			return fmt.Errorf("reward table: item[%d] min_qty must be >= 1, got %d", i, item.MinQty)
		}
		if item.MinQty > item.MaxQty {
			return fmt.Errorf("reward table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, item.MinQty, item.MaxQty)
		}
	}
	return nil
}

// Item is a single item instance in a generated reward package.
type Item struct {
	ItemDefID  string
	InstanceID string
	Quantity   int
}

// Package holds the generated rewards from one won encounter. CardOptions
// are template IDs; the caller presents them and adds the chosen one to the
// player's deck.
type Package struct {
	Currency    int
	CardOptions []string
	Items       []Item
}

// Generate rolls a reward package from the table. Card options are drawn
// without replacement, so the options are distinct whenever the pool allows.
//
// Precondition: table must have passed Validate(); src must not be nil.
// Postcondition: Currency is within the table's range; CardOptions has
// min(CardOptionCount, len(CardPool)) distinct entries; each item's quantity
// is within its configured range.
func Generate(table Table, src dice.Source) Package {
	var pkg Package

	if table.Currency != nil && table.Currency.Max > 0 {
		pkg.Currency = dice.Between(src, table.Currency.Min, table.Currency.Max)
	}

	if len(table.CardPool) > 0 {
		pool := make([]string, len(table.CardPool))
		copy(pool, table.CardPool)
		dice.Shuffle(src, len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		n := CardOptionCount
		if n > len(pool) {
			n = len(pool)
		}
		pkg.CardOptions = pool[:n]
	}

	for _, item := range table.Items {
		// Chance rolls use a granularity of 1/1000 so tables can express
		// sub-percent drop rates.
		if float64(src.Intn(1000)) >= item.Chance*1000 {
			continue
		}
		pkg.Items = append(pkg.Items, Item{
			ItemDefID:  item.ItemID,
			InstanceID: uuid.New().String(),
			Quantity:   dice.Between(src, item.MinQty, item.MaxQty),
		})
	}

	return pkg
}
