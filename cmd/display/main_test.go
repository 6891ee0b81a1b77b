package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"restaurant/pkg/events"
	"restaurant/pkg/menu"
	"restaurant/pkg/order"
)

func TestRender(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)

	var buf bytes.Buffer
	render(&buf, events.Event{
		Type: events.MenuItemAdded,
		Item: &menu.Item{ID: 1, Name: "Tea", Price: decimal.NewFromInt(20)},
		At:   at,
	})
	assert.Equal(t, "12:30:00 menu.item_added  ID 1: Tea - 20.00\n", buf.String())

	buf.Reset()
	o := order.New(2)
	o.Complete()
	render(&buf, events.Event{Type: events.OrderCompleted, Order: o, At: at})
	assert.Equal(t, "12:30:00 order.completed  Order 2 - Completed - 0.00\n", buf.String())
}
