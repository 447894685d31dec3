package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/example/ec-storefront/internal/domain/product"
	"github.com/example/ec-storefront/internal/infrastructure/store"
	"github.com/shopspring/decimal"
)

// DefaultKey is the durable slot holding a single-session cart
const DefaultKey = "online-shop-cart"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrLimitExceeded   = errors.New("quantity exceeds limit")
)

// Listener receives a snapshot of the cart. It runs with the store locked
// and must not call back into the Store.
type Listener func(Cart)

type subscription struct {
	id int
	fn Listener
}

// Store holds one shopper's cart. Every mutation recomputes the derived
// metrics, writes the whole entry list to its slot and then notifies
// listeners in registration order. Stock ceilings are not enforced here.
type Store struct {
	mu  sync.Mutex
	kv  store.KeyValueStore
	key string

	entries  []Entry
	count    int
	subtotal decimal.Decimal

	listeners []subscription
	nextSubID int
}

// NewStore rehydrates the cart from key once. A missing, unreadable or
// corrupt slot yields an empty cart.
func NewStore(ctx context.Context, kv store.KeyValueStore, key string) *Store {
	s := &Store{
		kv:       kv,
		key:      key,
		subtotal: decimal.Zero,
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	entries, err := store.LoadSlot[Entry](ctx, s.kv, s.key)
	if err != nil {
		log.Printf("[Cart] Failed to load cart %s, starting empty: %v", s.key, err)
		entries = nil
	}
	s.entries = sanitize(entries)
	s.count, s.subtotal = summarize(s.entries)
}

// sanitize drops non-positive quantities and merges duplicate products,
// keeping the first snapshot and its position
func sanitize(entries []Entry) []Entry {
	clean := make([]Entry, 0, len(entries))
	index := make(map[int]int)
	for _, e := range entries {
		if e.Quantity <= 0 {
			log.Printf("[Cart] Dropping stored entry for product %d with quantity %d", e.Product.ID, e.Quantity)
			continue
		}
		if i, ok := index[e.Product.ID]; ok {
			clean[i].Quantity += e.Quantity
			continue
		}
		index[e.Product.ID] = len(clean)
		clean = append(clean, e)
	}
	return clean
}

// AddItem adds quantity of p, merging with an existing entry for p.ID.
// The product is copied, so later catalog changes do not reach the cart.
func (s *Store) AddItem(ctx context.Context, p product.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(p, quantity)
	s.commit(ctx)
	return nil
}

// AddItemUpTo is AddItem that refuses to take the entry for p above limit.
// The check and the update happen under one lock.
func (s *Store) AddItemUpTo(ctx context.Context, p product.Product, quantity, limit int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := 0
	if i := s.indexOf(p.ID); i >= 0 {
		current = s.entries[i].Quantity
	}
	if current+quantity > limit {
		return fmt.Errorf("%w: %d of product %d requested, limit %d", ErrLimitExceeded, current+quantity, p.ID, limit)
	}

	s.addLocked(p, quantity)
	s.commit(ctx)
	return nil
}

func (s *Store) addLocked(p product.Product, quantity int) {
	if i := s.indexOf(p.ID); i >= 0 {
		s.entries[i].Quantity += quantity
		return
	}
	s.entries = append(s.entries, Entry{Product: p.Clone(), Quantity: quantity})
}

// RemoveItem deletes the entry for productID. Removing an absent id is a no-op
// apart from the usual write and notification.
func (s *Store) RemoveItem(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	s.commit(ctx)
}

// SetQuantity overwrites the quantity of an existing entry.
// quantity <= 0 removes it; an absent id changes nothing.
func (s *Store) SetQuantity(ctx context.Context, productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		s.commit(ctx)
		return
	}

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.entries[i].Quantity = quantity
	s.commit(ctx)
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.commit(ctx)
}

// Checkout hands fn a snapshot and empties the cart if fn succeeds. The store
// stays locked throughout, so no mutation can land between the snapshot and
// the clear. fn must not call back into the Store.
func (s *Store) Checkout(ctx context.Context, fn func(Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.snapshotLocked()); err != nil {
		return err
	}
	s.entries = nil
	s.commit(ctx)
	return nil
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// QuantityOf returns 0 for products not in the cart
func (s *Store) QuantityOf(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		return s.entries[i].Quantity
	}
	return 0
}

func (s *Store) Contains(productID int) bool {
	return s.QuantityOf(productID) > 0
}

// Subscribe registers fn and immediately delivers the current snapshot.
// The returned func unregisters it; it must not be called from inside a Listener.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	fn(s.snapshotLocked())

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

func (s *Store) indexOf(productID int) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.Product.ID == productID
	})
}

func (s *Store) removeLocked(productID int) {
	s.entries = slices.DeleteFunc(s.entries, func(e Entry) bool {
		return e.Product.ID == productID
	})
}

// commit recomputes, persists and notifies. A failed write is logged and
// does not stop listeners from seeing the new in-memory state.
func (s *Store) commit(ctx context.Context) {
	s.count, s.subtotal = summarize(s.entries)

	if err := store.SaveSlot(ctx, s.kv, s.key, s.entries); err != nil {
		log.Printf("[Cart] Failed to save cart %s: %v", s.key, err)
	}

	snap := s.snapshotLocked()
	for _, sub := range s.listeners {
		sub.fn(snap)
	}
}

func (s *Store) snapshotLocked() Cart {
	return Cart{
		Entries:  CloneEntries(s.entries),
		Count:    s.count,
		Subtotal: s.subtotal,
	}
}
