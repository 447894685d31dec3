package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadSlot reads the JSON array stored under key.
// A slot that was never written yields (nil, nil).
func LoadSlot[T any](ctx context.Context, kv KeyValueStore, key string) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot %s: %w", key, err)
	}
	return items, nil
}

// SaveSlot writes items as a JSON array under key, replacing the previous value
func SaveSlot[T any](ctx context.Context, kv KeyValueStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal slot %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
