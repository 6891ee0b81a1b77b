package menu

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item represents a sellable entry of the menu. Items are immutable once added.
type Item struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (i Item) String() string {
	return fmt.Sprintf("ID %d: %s - %s", i.ID, i.Name, i.Price.StringFixed(2))
}

// PriceLookup resolves the current unit price of a menu item.
type PriceLookup interface {
	Price(id int) (decimal.Decimal, bool)
}

// Catalog defines behavior for storing menu items.
type Catalog interface {
	PriceLookup
	Add(name string, price decimal.Decimal) (Item, error)
	Get(id int) (Item, bool)
	List() []Item
	Len() int
}
