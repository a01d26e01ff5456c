package socket

import (
	"context"

	"go.uber.org/zap"
)

// Broadcaster queues events and writes them to the hub from one goroutine,
// so clients receive them in the order they were published.
type Broadcaster struct {
	hub    *Hub
	events chan Event
	logger *zap.Logger
}

func NewBroadcaster(hub *Hub, buffer int, logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{hub: hub, events: make(chan Event, buffer), logger: logger}
}

// Publish enqueues event without blocking. It reports false and drops the
// event when the queue is full.
func (b *Broadcaster) Publish(event Event) bool {
	select {
	case b.events <- event:
		return true
	default:
		b.logger.Warn("Broadcast queue full, event dropped", zap.String("event", event.Event))
		return false
	}
}

// Run delivers queued events until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-b.events:
			if _, err := b.hub.Broadcast(event); err != nil {
				b.logger.Warn("Failed to broadcast event", zap.String("event", event.Event), zap.Error(err))
			}
		}
	}
}
