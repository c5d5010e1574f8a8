package events

import (
	"sync"

	"foodorder/internal/domain/model"
)

type Type string

const (
	OrderCreated Type = "order.created"
	OrderUpdated Type = "order.updated"
)

type OrderEvent struct {
	Type  Type        `json:"type"`
	Order model.Order `json:"order"`
}

// subscriberBuffer bounds each subscriber channel; delivery is best-effort
// at-most-once, a full buffer drops the event.
const subscriberBuffer = 16

type subscriber struct {
	restaurantID int64
	ch           chan OrderEvent
}

// Bus fans order events out to per-restaurant subscribers. It is constructed
// once in main and passed by reference; there is no package-level instance.
type Bus struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]*subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int64]*subscriber)}
}

// Subscribe registers a listener for orders containing items of the given
// restaurant. The returned func must be called when the connection closes.
func (b *Bus) Subscribe(restaurantID int64) (<-chan OrderEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	sub := &subscriber{
		restaurantID: restaurantID,
		ch:           make(chan OrderEvent, subscriberBuffer),
	}
	b.subs[id] = sub

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, unsubscribe
}

// Publish delivers the event to every subscriber whose restaurant appears in
// the order's line items. If nobody listens the event is lost; the REST
// endpoints remain the source of truth.
func (b *Bus) Publish(t Type, order model.Order) {
	ev := OrderEvent{Type: t, Order: order}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if !order.ContainsRestaurant(sub.restaurantID) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// slow consumer, drop
		}
	}
}

// SubscriberCount is used by tests and the health endpoint.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
