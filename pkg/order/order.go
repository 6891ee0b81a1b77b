package order

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"restaurant/pkg/menu"
	"restaurant/pkg/validation"
)

// Status is the completion state of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Order represents a customer transaction built from menu items.
type Order struct {
	ID        int             `json:"id"`
	Items     map[int]int     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Completed bool            `json:"completed"`
}

// Line is one menu item and its quantity inside an order.
type Line struct {
	ItemID   int `json:"menu_item_id"`
	Quantity int `json:"quantity"`
}

// New returns an empty pending order.
func New(id int) *Order {
	return &Order{ID: id, Items: make(map[int]int), Total: decimal.Zero}
}

// AddLine adds qty units of item, summing with an existing line for the same
// item, and recomputes the total against prices. The order is unchanged when
// qty is invalid.
func (o *Order) AddLine(item menu.Item, qty int, prices menu.PriceLookup) error {
	if err := validation.Quantity(qty); err != nil {
		return err
	}
	if o.Items[item.ID] > math.MaxInt-qty {
		return validation.ValidationError{
			Field:   "quantity",
			Message: "quantity is too large",
		}
	}
	if o.Items == nil {
		o.Items = make(map[int]int)
	}
	o.Items[item.ID] += qty
	o.Recalculate(prices)
	return nil
}

// Recalculate sets Total to the sum of quantity times the current price of
// every line. Lines whose item no longer resolves contribute nothing.
func (o *Order) Recalculate(prices menu.PriceLookup) {
	total := decimal.Zero
	for id, qty := range o.Items {
		price, ok := prices.Price(id)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	o.Total = total
}

// Complete marks the order as completed. Completing twice is a no-op.
func (o *Order) Complete() {
	o.Completed = true
}

// Status reports whether the order is pending or completed.
func (o *Order) Status() Status {
	if o.Completed {
		return StatusCompleted
	}
	return StatusPending
}

// Describe returns a one-line summary for display.
func (o *Order) Describe() string {
	return fmt.Sprintf("Order %d - %s - %s", o.ID, o.Status(), o.Total.StringFixed(2))
}

// Lines returns the line items ordered by menu item id.
func (o *Order) Lines() []Line {
	lines := make([]Line, 0, len(o.Items))
	for id, qty := range o.Items {
		lines = append(lines, Line{ItemID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines
}

// Clone returns a deep copy that shares no state with o.
func (o *Order) Clone() Order {
	c := *o
	c.Items = make(map[int]int, len(o.Items))
	for id, qty := range o.Items {
		c.Items[id] = qty
	}
	return c
}

// Book defines behavior for storing orders.
type Book interface {
	Create() *Order
	Get(id int) (*Order, bool)
	List() []*Order
	Len() int
}
