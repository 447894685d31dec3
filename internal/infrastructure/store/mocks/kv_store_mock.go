package mocks

import (
	"context"
	"sync"
)

// MockKVStore is a mock implementation of store.KeyValueStore for testing
type MockKVStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// For tracking calls in tests
	GetCalls []string
	SetCalls []SetCall
	GetErr   error
	SetErr   error
}

// SetCall records parameters passed to Set
type SetCall struct {
	Key   string
	Value []byte
}

// NewMockKVStore creates a new MockKVStore
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{
		data:     make(map[string][]byte),
		GetCalls: make([]string, 0),
		SetCalls: make([]SetCall, 0),
	}
}

// Get returns the stored value, or GetErr if set
func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}

	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set records the call and stores the value unless SetErr is set
func (m *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, SetCall{
		Key:   key,
		Value: append([]byte(nil), value...),
	})
	if m.SetErr != nil {
		return m.SetErr
	}

	m.data[key] = append([]byte(nil), value...)
	return nil
}

// SetData seeds a raw value directly for testing
func (m *MockKVStore) SetData(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// Data returns the raw value currently stored under key
func (m *MockKVStore) Data(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok
}

// Reset clears all data and recorded calls
func (m *MockKVStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	m.GetCalls = make([]string, 0)
	m.SetCalls = make([]SetCall, 0)
	m.GetErr = nil
	m.SetErr = nil
}
