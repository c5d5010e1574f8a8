package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"foodorder/internal/domain/model"
	"foodorder/internal/events"
	repo "foodorder/internal/repository"
)

// Merchant status vocabulary: "accepted" is a UI alias for preparing; the
// stored vocabulary is the canonical one everywhere.
const merchantStatusAccepted = "accepted"

type MerchantOrderUsecase struct {
	orders      repo.OrderRepository
	restaurants repo.RestaurantRepository
	audit       repo.AuditLogRepository
	bus         *events.Bus
}

func NewMerchantOrderUsecase(orders repo.OrderRepository, restaurants repo.RestaurantRepository, audit repo.AuditLogRepository, bus *events.Bus) *MerchantOrderUsecase {
	return &MerchantOrderUsecase{orders: orders, restaurants: restaurants, audit: audit, bus: bus}
}

// requireRestaurant resolves the caller's restaurant; merchants without one
// cannot use any order endpoint.
func (u *MerchantOrderUsecase) requireRestaurant(ctx context.Context, ownerID int64) (model.Restaurant, error) {
	rest, err := u.restaurants.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "no restaurant registered for this account")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rest, nil
}

// List returns orders containing at least one item from the merchant's
// restaurant, optionally filtered by status.
func (u *MerchantOrderUsecase) List(ctx context.Context, ownerID int64, status string) ([]model.Order, error) {
	if status != "" && status != merchantStatusAccepted && !model.ValidOrderStatus(model.OrderStatus(status)) {
		return nil, NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	if status == merchantStatusAccepted {
		status = string(model.OrderStatusPreparing)
	}

	rest, err := u.requireRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	list, err := u.orders.ListByRestaurantID(ctx, rest.ID, status)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

// UpdateStatus lets the merchant advance an order they fulfill. The order must
// contain items from their restaurant; anything else answers 404.
func (u *MerchantOrderUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, status string) (model.Order, error) {
	if status == merchantStatusAccepted {
		status = string(model.OrderStatusPreparing)
	}
	next := model.OrderStatus(status)
	if !model.ValidOrderStatus(next) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	if next == model.OrderStatusCancelled {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "merchants cannot cancel orders")
	}

	rest, err := u.requireRestaurant(ctx, actor.UserID)
	if err != nil {
		return model.Order{}, err
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !order.ContainsRestaurant(rest.ID) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if order.Status == model.OrderStatusCancelled {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cancelled orders cannot change status")
	}

	prev := order.Status
	order.Status = next
	if err := u.orders.UpdateChecked(ctx, order); err != nil {
		if errors.Is(err, repo.ErrVersionConflict) {
			return model.Order{}, NewHTTPError(http.StatusConflict, "order was modified concurrently, retry")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	order.Version++

	_ = u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   order.ID,
		Detail:       fmt.Sprintf("%s -> %s", prev, next),
		CreatedAt:    time.Now(),
	})
	u.bus.Publish(events.OrderUpdated, order)
	return order, nil
}

// Stream subscribes the merchant's restaurant to the order event feed. The
// handler owns the channel lifecycle and must call unsubscribe on disconnect.
func (u *MerchantOrderUsecase) Stream(ctx context.Context, ownerID int64) (<-chan events.OrderEvent, func(), error) {
	rest, err := u.requireRestaurant(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	ch, unsubscribe := u.bus.Subscribe(rest.ID)
	return ch, unsubscribe, nil
}
