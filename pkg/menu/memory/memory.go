// Package memory implements an in-memory menu catalog.
package memory

import (
	"strings"

	"github.com/shopspring/decimal"

	"restaurant/pkg/menu"
	"restaurant/pkg/validation"
)

// Catalog provides an in-memory implementation of menu.Catalog.
// It is not safe for concurrent use.
type Catalog struct {
	items  map[int]menu.Item
	order  []int
	nextID int
}

// New creates an empty catalog whose first item gets id 1.
func New() *Catalog {
	return &Catalog{items: make(map[int]menu.Item), nextID: 1}
}

// Add validates and stores a new item under the next id.
func (c *Catalog) Add(name string, price decimal.Decimal) (menu.Item, error) {
	name = strings.TrimSpace(name)
	if err := validation.MenuItem(name, price); err != nil {
		return menu.Item{}, err
	}
	item := menu.Item{ID: c.nextID, Name: name, Price: price}
	c.items[item.ID] = item
	c.order = append(c.order, item.ID)
	c.nextID++
	return item, nil
}

// Get retrieves an item by ID.
func (c *Catalog) Get(id int) (menu.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Price returns the unit price of the item with the given ID.
func (c *Catalog) Price(id int) (decimal.Decimal, bool) {
	item, ok := c.items[id]
	if !ok {
		return decimal.Zero, false
	}
	return item.Price, true
}

// List returns all items in insertion order.
func (c *Catalog) List() []menu.Item {
	out := make([]menu.Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len returns the number of stored items.
func (c *Catalog) Len() int {
	return len(c.items)
}
