// Package restaurant composes the menu catalog and the order book behind the
// single entry point used by front ends.
package restaurant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"restaurant/pkg/events"
	"restaurant/pkg/logger"
	"restaurant/pkg/menu"
	"restaurant/pkg/order"
	"restaurant/pkg/otel"
)

// Selection kinds reported by SelectionError.
const (
	KindOrder    = "order"
	KindMenuItem = "menu item"
)

// SelectionError reports an operation against an order or menu item that
// does not exist.
type SelectionError struct {
	Kind string
	ID   int
}

func (e SelectionError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ErrOrderCompleted is returned when Policy.LockCompleted is set and a line is
// added to a completed order.
var ErrOrderCompleted = errors.New("order already completed")

// Policy controls how completed orders are treated.
type Policy struct {
	// LockCompleted rejects new lines on completed orders. When false,
	// completed orders accept lines like pending ones.
	LockCompleted bool
}

// Service is the composition root of the domain model. All methods are safe
// for concurrent use; returned values are snapshots.
type Service struct {
	mu     sync.Mutex
	menu   menu.Catalog
	orders order.Book
	pub    events.Publisher
	log    *logger.Logger
	policy Policy
	now    func() time.Time
}

// New creates a Service over the given catalog and book. A nil publisher
// disables events.
func New(catalog menu.Catalog, book order.Book, pub events.Publisher, log *logger.Logger, policy Policy) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		menu:   catalog,
		orders: book,
		pub:    pub,
		log:    log,
		policy: policy,
		now:    time.Now,
	}
}

// AddMenuItem adds a new item to the menu.
func (s *Service) AddMenuItem(ctx context.Context, name string, price decimal.Decimal) (menu.Item, error) {
	ctx, span := otel.AddSpan(ctx, "restaurant.AddMenuItem")
	defer span.End()

	s.mu.Lock()
	item, err := s.menu.Add(name, price)
	s.mu.Unlock()
	if err != nil {
		s.log.Warn(ctx, "add menu item rejected", "name", name, "price", price.String(), "error", err)
		return menu.Item{}, fmt.Errorf("add menu item: %w", err)
	}

	span.SetAttributes(attribute.Int("menu_item_id", item.ID))
	s.log.Info(ctx, "menu item added", "menu_item_id", item.ID, "name", item.Name, "price", item.Price.String())
	s.publish(ctx, events.Event{Type: events.MenuItemAdded, Item: &item})
	return item, nil
}

// Menu returns all menu items in insertion order.
func (s *Service) Menu(ctx context.Context) []menu.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu.List()
}

// MenuItem looks up a menu item by id.
func (s *Service) MenuItem(ctx context.Context, id int) (menu.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu.Get(id)
}

// CreateOrder opens a new empty order.
func (s *Service) CreateOrder(ctx context.Context) order.Order {
	ctx, span := otel.AddSpan(ctx, "restaurant.CreateOrder")
	defer span.End()

	s.mu.Lock()
	o := s.orders.Create().Clone()
	s.mu.Unlock()

	span.SetAttributes(attribute.Int("order_id", o.ID))
	s.log.Info(ctx, "order created", "order_id", o.ID)
	s.publish(ctx, events.Event{Type: events.OrderCreated, Order: &o})
	return o
}

// Orders returns all orders in creation order.
func (s *Service) Orders(ctx context.Context) []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.orders.List()
	out := make([]order.Order, 0, len(list))
	for _, o := range list {
		out = append(out, o.Clone())
	}
	return out
}

// Order looks up an order by id.
func (s *Service) Order(ctx context.Context, id int) (order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders.Get(id)
	if !ok {
		return order.Order{}, false
	}
	return o.Clone(), true
}

// AddItemToOrder adds qty units of a menu item to an order and returns the
// updated order. Unknown ids are reported as SelectionError.
func (s *Service) AddItemToOrder(ctx context.Context, orderID, itemID, qty int) (order.Order, error) {
	ctx, span := otel.AddSpan(ctx, "restaurant.AddItemToOrder",
		attribute.Int("order_id", orderID),
		attribute.Int("menu_item_id", itemID),
		attribute.Int("quantity", qty),
	)
	defer span.End()

	updated, err := s.addItemToOrder(orderID, itemID, qty)
	if err != nil {
		s.log.Warn(ctx, "add item to order rejected", "order_id", orderID, "menu_item_id", itemID, "quantity", qty, "error", err)
		return order.Order{}, fmt.Errorf("add item to order: %w", err)
	}

	s.log.Info(ctx, "order line added", "order_id", orderID, "menu_item_id", itemID, "quantity", qty, "total", updated.Total.String())
	s.publish(ctx, events.Event{Type: events.OrderLineAdded, Order: &updated})
	return updated, nil
}

func (s *Service) addItemToOrder(orderID, itemID, qty int) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders.Get(orderID)
	if !ok {
		return order.Order{}, SelectionError{Kind: KindOrder, ID: orderID}
	}
	item, ok := s.menu.Get(itemID)
	if !ok {
		return order.Order{}, SelectionError{Kind: KindMenuItem, ID: itemID}
	}
	if s.policy.LockCompleted && o.Completed {
		return order.Order{}, ErrOrderCompleted
	}
	if err := o.AddLine(item, qty, s.menu); err != nil {
		return order.Order{}, err
	}
	return o.Clone(), nil
}

// CompleteOrder marks an order as completed. Completing an already completed
// order succeeds and changes nothing.
func (s *Service) CompleteOrder(ctx context.Context, orderID int) (order.Order, error) {
	ctx, span := otel.AddSpan(ctx, "restaurant.CompleteOrder", attribute.Int("order_id", orderID))
	defer span.End()

	s.mu.Lock()
	o, ok := s.orders.Get(orderID)
	var done order.Order
	if ok {
		o.Complete()
		done = o.Clone()
	}
	s.mu.Unlock()

	if !ok {
		err := SelectionError{Kind: KindOrder, ID: orderID}
		s.log.Warn(ctx, "complete order rejected", "order_id", orderID, "error", err)
		return order.Order{}, fmt.Errorf("complete order: %w", err)
	}

	s.log.Info(ctx, "order completed", "order_id", orderID, "total", done.Total.String())
	s.publish(ctx, events.Event{Type: events.OrderCompleted, Order: &done})
	return done, nil
}

// publish runs outside the lock. The mutation has already happened, so a
// delivery failure is logged and not returned.
func (s *Service) publish(ctx context.Context, e events.Event) {
	e.At = s.now().UTC()
	if err := s.pub.Publish(ctx, e); err != nil {
		s.log.Error(ctx, "publish event", "type", string(e.Type), "error", err)
	}
}
