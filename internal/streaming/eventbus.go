package streaming

import (
	"context"
	"strconv"
	"sync"

	"scamshield/pkg/logger"
)

// Publisher sends events to an external broker
type Publisher interface {
	Publish(ctx context.Context, event *ScamEvent) error
	IsConnected() bool
}

// EventBus distributes scam events to the broker and local subscribers
type EventBus struct {
	broker Publisher
	logger *logger.Logger

	mu          sync.RWMutex
	subscribers map[string]chan *ScamEvent
	nextID      int
}

// NewEventBus creates a new event bus. broker may be nil.
func NewEventBus(broker Publisher, log *logger.Logger) *EventBus {
	return &EventBus{
		broker:      broker,
		logger:      log.WithComponent("event-bus"),
		subscribers: make(map[string]chan *ScamEvent),
	}
}

// Publish publishes an event to the broker and all local subscribers.
// Broker failures are logged; local delivery never blocks.
func (eb *EventBus) Publish(ctx context.Context, event *ScamEvent) error {
	if eb.broker != nil && eb.broker.IsConnected() {
		if err := eb.broker.Publish(ctx, event); err != nil {
			eb.logger.Warn().Err(err).Msg("failed to publish to broker, using local broadcast only")
		}
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for id, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			eb.logger.Debug().Str("subscriber", id).Msg("subscriber channel full, dropping event")
		}
	}

	return nil
}

// Subscribe creates a new local subscription and returns a channel for events
func (eb *EventBus) Subscribe() (<-chan *ScamEvent, func()) {
	eb.mu.Lock()
	eb.nextID++
	id := strconv.Itoa(eb.nextID)
	ch := make(chan *ScamEvent, 100)
	eb.subscribers[id] = ch
	eb.mu.Unlock()

	eb.logger.Debug().Str("subscriber_id", id).Msg("new subscriber")

	// Return unsubscribe function
	unsubscribe := func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		if _, ok := eb.subscribers[id]; ok {
			close(ch)
			delete(eb.subscribers, id)
			eb.logger.Debug().Str("subscriber_id", id).Msg("subscriber removed")
		}
	}

	return ch, unsubscribe
}

// SubscriberCount returns the number of active subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// Close closes every local subscription
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for id, ch := range eb.subscribers {
		close(ch)
		delete(eb.subscribers, id)
	}
}
