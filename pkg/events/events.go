// Package events describes the notifications emitted after catalog and order changes.
package events

import (
	"context"
	"time"

	"restaurant/pkg/menu"
	"restaurant/pkg/order"
)

// Type names a domain event.
type Type string

const (
	MenuItemAdded  Type = "menu.item_added"
	OrderCreated   Type = "order.created"
	OrderLineAdded Type = "order.line_added"
	OrderCompleted Type = "order.completed"
)

// Event is a single change notification. Exactly one of Item and Order is set.
type Event struct {
	Type  Type         `json:"type"`
	Item  *menu.Item   `json:"item,omitempty"`
	Order *order.Order `json:"order,omitempty"`
	At    time.Time    `json:"at"`
}

// Publisher delivers events to interested displays.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, Event) error { return nil }
