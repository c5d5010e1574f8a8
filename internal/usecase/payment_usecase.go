package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodorder/internal/config"
	"foodorder/internal/domain/model"
	"foodorder/internal/events"
	"foodorder/internal/payment"
	repo "foodorder/internal/repository"
)

type PaymentUsecase struct {
	cfg     *config.Config
	orders  repo.OrderRepository
	bus     *events.Bus
	gateway payment.Gateway // nil when the processor is not configured
}

func NewPaymentUsecase(cfg *config.Config, orders repo.OrderRepository, bus *events.Bus, gateway payment.Gateway) *PaymentUsecase {
	return &PaymentUsecase{cfg: cfg, orders: orders, bus: bus, gateway: gateway}
}

// toMinorUnits converts a stored decimal amount into the processor's integer
// minor currency unit, rounding to the nearest unit. 25.00 → 2500.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// CreateIntent registers the order total with the processor and returns the
// client-side confirmation handle. The integer minor-unit amount exists only
// for the duration of this call.
func (u *PaymentUsecase) CreateIntent(ctx context.Context, actor Actor, orderID int64) (payment.Intent, error) {
	if u.gateway == nil {
		return payment.Intent{}, NewHTTPError(http.StatusServiceUnavailable, "payment processor is not configured")
	}

	order, err := u.findVisible(ctx, actor, orderID)
	if err != nil {
		return payment.Intent{}, err
	}
	if order.Payment.Status == model.PaymentStatusPaid {
		return payment.Intent{}, NewHTTPError(http.StatusBadRequest, "order is already paid")
	}
	if order.Status == model.OrderStatusCancelled {
		return payment.Intent{}, NewHTTPError(http.StatusBadRequest, "order is cancelled")
	}

	intent, err := u.gateway.CreateIntent(ctx, toMinorUnits(order.TotalAmount), u.cfg.Currency, map[string]string{
		"order_id": strconv.FormatInt(order.ID, 10),
		"user_id":  strconv.FormatInt(order.UserID, 10),
	})
	if err != nil {
		return payment.Intent{}, NewHTTPError(http.StatusBadGateway, "payment processor error")
	}
	return intent, nil
}

// HandleWebhook verifies and applies a processor callback. Verification
// failure is a 400 with no side effects. A succeeded intent marks the order
// paid and records the intent id; a replay for an already-paid order is a
// silent success and never overwrites the stored transaction id.
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, body []byte, sigHeader string) error {
	if u.gateway == nil {
		return NewHTTPError(http.StatusServiceUnavailable, "payment processor is not configured")
	}

	ev, err := u.gateway.VerifyWebhook(body, sigHeader)
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, "webhook verification failed")
	}
	if ev.Type != payment.EventPaymentSucceeded {
		return nil
	}

	orderID, err := strconv.ParseInt(ev.Metadata["order_id"], 10, 64)
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, "missing order_id metadata")
	}

	// One retry on a concurrent write; a replayed webhook losing the race is
	// most likely racing its own duplicate.
	for attempt := 0; attempt < 2; attempt++ {
		order, err := u.orders.FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.Payment.Status == model.PaymentStatusPaid {
			return nil
		}

		updated, err := u.applyPaid(ctx, order, ev.IntentID)
		if errors.Is(err, repo.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		u.bus.Publish(events.OrderUpdated, updated)
		return nil
	}
	return NewHTTPError(http.StatusConflict, "order was modified concurrently, retry")
}

// MarkPaid is the out-of-band fallback used when no processor is wired up
// (local development, demos). It is disabled in live configurations.
func (u *PaymentUsecase) MarkPaid(ctx context.Context, actor Actor, orderID int64, transactionID string) (model.Order, error) {
	if !u.cfg.PaymentTestMode {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "manual payment confirmation is disabled")
	}

	order, err := u.findVisible(ctx, actor, orderID)
	if err != nil {
		return model.Order{}, err
	}
	if order.Payment.Status == model.PaymentStatusPaid {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "order is already paid")
	}
	if order.Status == model.OrderStatusCancelled {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "order is cancelled")
	}

	if transactionID == "" {
		transactionID = "SIM-" + uuid.NewString()
	}

	updated, err := u.applyPaid(ctx, order, transactionID)
	if errors.Is(err, repo.ErrVersionConflict) {
		return model.Order{}, NewHTTPError(http.StatusConflict, "order was modified concurrently, retry")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.bus.Publish(events.OrderUpdated, updated)
	return updated, nil
}

// applyPaid is the single place payment confirmation touches order status: a
// pending order moves to preparing, any later status is left alone.
func (u *PaymentUsecase) applyPaid(ctx context.Context, order model.Order, transactionID string) (model.Order, error) {
	order.Payment.Status = model.PaymentStatusPaid
	order.Payment.TransactionID = transactionID
	if order.Status == model.OrderStatusPending {
		order.Status = model.OrderStatusPreparing
	}
	if err := u.orders.UpdateChecked(ctx, order); err != nil {
		return model.Order{}, err
	}
	order.Version++
	return order, nil
}

func (u *PaymentUsecase) findVisible(ctx context.Context, actor Actor, orderID int64) (model.Order, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !actor.IsAdmin() && order.UserID != actor.UserID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	return order, nil
}
