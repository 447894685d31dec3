package order

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/ec-storefront/internal/domain/cart"
	"github.com/example/ec-storefront/internal/event"
	"github.com/example/ec-storefront/internal/infrastructure/store"
	"github.com/shopspring/decimal"
)

// DefaultKey is the durable slot holding every order as one JSON array
const DefaultKey = "online-shop-orders"

// Ledger appends orders to a single slot and reads them back by scanning it.
// Concurrent writers on other processes sharing the slot are last-write-wins.
type Ledger struct {
	mu        sync.Mutex
	kv        store.KeyValueStore
	key       string
	publisher event.Publisher
	now       func() time.Time
}

// NewLedger creates a ledger on DefaultKey. publisher may be nil.
func NewLedger(kv store.KeyValueStore, publisher event.Publisher) *Ledger {
	return &Ledger{
		kv:        kv,
		key:       DefaultKey,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateOrder records a pending order for a copy of items. A failed write is
// logged and the order is still returned.
func (l *Ledger) CreateOrder(ctx context.Context, customer Customer, items []cart.Entry, total decimal.Decimal) (*Order, error) {
	order, err := l.newOrder(customer, items, total)
	if err != nil {
		return nil, err
	}

	if err := l.save(ctx, order); err != nil {
		log.Printf("[Order] Failed to save order %s: %v", order.ID, err)
	}

	l.publish(ctx, order.ID, EventOrderPlaced, OrderPlaced{Order: *order})
	return order.clone(), nil
}

// RecordOrder is CreateOrder for callers that must not lose the order: a
// failed write returns ErrOrderNotSaved and nothing is published.
func (l *Ledger) RecordOrder(ctx context.Context, customer Customer, items []cart.Entry, total decimal.Decimal) (*Order, error) {
	order, err := l.newOrder(customer, items, total)
	if err != nil {
		return nil, err
	}

	if err := l.save(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOrderNotSaved, order.ID, err)
	}

	l.publish(ctx, order.ID, EventOrderPlaced, OrderPlaced{Order: *order})
	return order.clone(), nil
}

func (l *Ledger) newOrder(customer Customer, items []cart.Entry, total decimal.Decimal) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := l.now()
	return &Order{
		ID:        newID("ORD", 5, now),
		Customer:  customer,
		Items:     cart.CloneEntries(items),
		Total:     total,
		OrderDate: now,
		Status:    StatusPending,
	}, nil
}

func (l *Ledger) save(ctx context.Context, order *Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.append(ctx, order)
}

func (l *Ledger) append(ctx context.Context, order *Order) error {
	orders, err := store.LoadSlot[Order](ctx, l.kv, l.key)
	if err != nil {
		return err
	}
	return store.SaveSlot(ctx, l.kv, l.key, append(orders, *order))
}

// GetByID scans the persisted list. Read failures are logged and reported as not found.
func (l *Ledger) GetByID(ctx context.Context, id string) (*Order, bool) {
	for _, o := range l.load(ctx) {
		if o.ID == id {
			return o.clone(), true
		}
	}
	return nil, false
}

// GetByCustomerEmail returns orders whose customer email matches exactly, oldest first
func (l *Ledger) GetByCustomerEmail(ctx context.Context, email string) []*Order {
	result := make([]*Order, 0)
	for _, o := range l.load(ctx) {
		if o.Customer.Email == email {
			result = append(result, o.clone())
		}
	}
	return result
}

func (l *Ledger) load(ctx context.Context) []Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := store.LoadSlot[Order](ctx, l.kv, l.key)
	if err != nil {
		log.Printf("[Order] Failed to load orders: %v", err)
		return nil
	}
	return orders
}

// UpdateStatus overwrites the status of an existing order without checking
// lifecycle order. It reports false for an unknown id or status, or when the
// updated list could not be written.
func (l *Ledger) UpdateStatus(ctx context.Context, id string, status Status) bool {
	if !status.Valid() {
		return false
	}
	from, err := l.setStatus(ctx, id, func(*Order) error { return nil }, status)
	if err != nil {
		log.Printf("[Order] Failed to update order %s to %s: %v", id, status, err)
		return false
	}
	l.publishStatusChange(ctx, from, status)
	return true
}

// Transition moves an order one step forward in its lifecycle
func (l *Ledger) Transition(ctx context.Context, id string, target Status) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, target)
	}
	from, err := l.setStatus(ctx, id, func(o *Order) error {
		if !o.CanTransitionTo(target) {
			return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, o.Status, target)
		}
		return nil
	}, target)
	if err != nil {
		return err
	}
	l.publishStatusChange(ctx, from, target)
	return nil
}

// setStatus returns the order as it was before the change
func (l *Ledger) setStatus(ctx context.Context, id string, check func(*Order) error, status Status) (Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := store.LoadSlot[Order](ctx, l.kv, l.key)
	if err != nil {
		return Order{}, err
	}
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if err := check(&orders[i]); err != nil {
			return Order{}, err
		}
		before := orders[i]
		orders[i].Status = status
		if err := store.SaveSlot(ctx, l.kv, l.key, orders); err != nil {
			return Order{}, err
		}
		return before, nil
	}
	return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
}

func (l *Ledger) publishStatusChange(ctx context.Context, before Order, to Status) {
	l.publish(ctx, before.ID, EventOrderStatusChanged, OrderStatusChanged{
		OrderID:   before.ID,
		Email:     before.Customer.Email,
		From:      before.Status,
		To:        to,
		ChangedAt: l.now(),
	})
}

// publish logs failures and never fails the caller
func (l *Ledger) publish(ctx context.Context, orderID, eventType string, data any) {
	if l.publisher == nil {
		return
	}
	e, err := event.New(orderID, AggregateType, eventType, data)
	if err != nil {
		log.Printf("[Order] Failed to build %s event for %s: %v", eventType, orderID, err)
		return
	}
	if err := l.publisher.PublishEvent(ctx, e); err != nil {
		log.Printf("[Order] Failed to publish %s for %s: %v", eventType, orderID, err)
	}
}
