package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodorder/internal/domain/model"
)

func orderFor(restaurantID int64) model.Order {
	return model.Order{
		ID:    1,
		Items: []model.OrderItem{{RestaurantID: restaurantID, ProductID: 100, Quantity: 1}},
	}
}

func TestBus_DeliversOnlyToMatchingRestaurant(t *testing.T) {
	bus := NewBus()

	chA, unsubA := bus.Subscribe(1)
	chB, unsubB := bus.Subscribe(2)
	defer unsubA()
	defer unsubB()

	bus.Publish(OrderCreated, orderFor(1))

	ev := <-chA
	assert.Equal(t, OrderCreated, ev.Type)
	assert.Equal(t, int64(1), ev.Order.ID)

	select {
	case ev := <-chB:
		t.Fatalf("unexpected delivery to restaurant 2: %+v", ev)
	default:
	}
}

func TestBus_MultiRestaurantOrderReachesAll(t *testing.T) {
	bus := NewBus()

	chA, unsubA := bus.Subscribe(1)
	chB, unsubB := bus.Subscribe(2)
	defer unsubA()
	defer unsubB()

	order := model.Order{
		ID: 7,
		Items: []model.OrderItem{
			{RestaurantID: 1, ProductID: 100, Quantity: 1},
			{RestaurantID: 2, ProductID: 200, Quantity: 1},
		},
	}
	bus.Publish(OrderUpdated, order)

	assert.Equal(t, int64(7), (<-chA).Order.ID)
	assert.Equal(t, int64(7), (<-chB).Order.ID)
}

func TestBus_UnsubscribeClosesChannelAndStopsDelivery(t *testing.T) {
	bus := NewBus()

	ch, unsub := bus.Subscribe(1)
	assert.Equal(t, 1, bus.SubscriberCount())

	unsub()
	assert.Equal(t, 0, bus.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	bus.Publish(OrderCreated, orderFor(1))

	// double unsubscribe is a no-op
	unsub()
}

func TestBus_SlowConsumerDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus()

	ch, unsub := bus.Subscribe(1)
	defer unsub()

	// fill the buffer and then some; Publish must never block
	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(OrderCreated, orderFor(1))
	}

	assert.Equal(t, subscriberBuffer, len(ch))
}
