package mocks

import (
	"context"
	"sync"

	"github.com/example/ec-storefront/internal/event"
)

// MockPublisher records published events for testing
type MockPublisher struct {
	mu     sync.Mutex
	Events []event.Event
	Err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]event.Event, 0)}
}

// PublishEvent records the event and returns Err
func (m *MockPublisher) PublishEvent(ctx context.Context, e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, e)
	return m.Err
}

// EventTypes returns the recorded event types in publish order
func (m *MockPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.EventType
	}
	return types
}
