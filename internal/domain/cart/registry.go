package cart

import (
	"context"
	"sync"

	"github.com/example/ec-storefront/internal/infrastructure/store"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSessionCapacity is used when NewRegistry is given a non-positive capacity
const DefaultSessionCapacity = 10000

// Registry hands out one Store per shopper session, all backed by the same kv.
// At most capacity stores stay resident; the least recently used one is
// dropped and rehydrates from its slot on the next request for that session.
// Listeners subscribed to a dropped store stop receiving updates.
type Registry struct {
	mu     sync.Mutex
	kv     store.KeyValueStore
	stores *lru.Cache[string, *Store]
}

func NewRegistry(kv store.KeyValueStore, capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	// lru.New only fails for a non-positive size
	stores, _ := lru.New[string, *Store](capacity)
	return &Registry{
		kv:     kv,
		stores: stores,
	}
}

// SessionKey returns the slot used for sessionID. The empty session maps to DefaultKey.
func SessionKey(sessionID string) string {
	if sessionID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + sessionID
}

// Session returns the store for sessionID, rehydrating it on first use or
// after it was evicted
func (r *Registry) Session(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores.Get(sessionID); ok {
		return s
	}
	s := NewStore(ctx, r.kv, SessionKey(sessionID))
	r.stores.Add(sessionID, s)
	return s
}

// Len reports how many session stores are resident
func (r *Registry) Len() int {
	return r.stores.Len()
}
