package feed

import (
	"sync"
	"time"

	"github.com/NandakishoreN09/Grabit/internal/order"
)

// Event is one order change pushed to live views.
type Event struct {
	OrderID    string       `json:"orderId"`
	UserID     string       `json:"userId"`
	Status     order.Status `json:"status"`
	OccurredAt time.Time    `json:"occurredAt"`
}

type subscriber struct {
	ch chan Event
}

// Hub fans order events out to active subscriptions. Slow subscribers
// lose events rather than block the broadcaster; live views re-sync with
// FetchOnce anyway.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a listener and returns its channel plus a release
// function. Every Subscribe must be paired with a call to release.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	sub := &subscriber{ch: make(chan Event, buffer)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	release := func() {
		h.mu.Lock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.ch)
		}
		h.mu.Unlock()
	}
	return sub.ch, release
}

// Broadcast delivers the event to every subscription without blocking.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Len reports the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
