// Package bus fans events out to subscribers.
package bus

import (
	"context"
	"log/slog"
	"sync"
)

const subscriberBuffer = 128

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		mu:   sync.Mutex{},
		subs: make(map[*chan T]struct{}),
	}
}

type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
}

// Broadcast never blocks on a slow subscriber. A subscriber whose buffer is full
// is removed and its channel closed, so it never sees a stream with a gap in it
// and has to subscribe again.
func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case *sub <- event:
		default:
			slog.Warn("Evicted slow subscriber", "package", "bus", "buffer", subscriberBuffer)
			delete(h.subs, sub)
			close(*sub)
		}
	}

	return nil
}

// Subscribe returns a channel of events and a function that stops delivery.
// The subscription also ends when ctx is done. The channel is closed if the
// subscriber falls too far behind.
func (h *Hub[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T, subscriberBuffer)

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	stopC := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(stopC)
			h.mu.Lock()
			delete(h.subs, key)
			h.mu.Unlock()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-stopC:
		}
	}()

	return c, unsubscribe
}

func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}
