// Package memory implements an in-memory order book.
package memory

import (
	"restaurant/pkg/order"
)

// Book provides an in-memory implementation of order.Book.
// It is not safe for concurrent use.
type Book struct {
	orders map[int]*order.Order
	ids    []int
	nextID int
}

// New creates an empty book whose first order gets id 1.
func New() *Book {
	return &Book{orders: make(map[int]*order.Order), nextID: 1}
}

// Create stores a new empty order under the next id.
func (b *Book) Create() *order.Order {
	o := order.New(b.nextID)
	b.orders[o.ID] = o
	b.ids = append(b.ids, o.ID)
	b.nextID++
	return o
}

// Get retrieves an order by ID.
func (b *Book) Get(id int) (*order.Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// List returns all orders in creation order.
func (b *Book) List() []*order.Order {
	out := make([]*order.Order, 0, len(b.ids))
	for _, id := range b.ids {
		out = append(out, b.orders[id])
	}
	return out
}

// Len returns the number of stored orders.
func (b *Book) Len() int {
	return len(b.orders)
}
