package events

import (
	"context"
	"sync"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

// Recorder keeps published events in memory for tests.
type Recorder struct {
	mu     sync.Mutex
	events []domain.OrderCreatedEvent
	Err    error
}

func (r *Recorder) PublishOrderCreated(_ context.Context, event domain.OrderCreatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	return r.Err
}

func (r *Recorder) OrderCreated() []domain.OrderCreatedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]domain.OrderCreatedEvent, len(r.events))
	copy(events, r.events)
	return events
}
