package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/domain/model"
	"foodorder/internal/events"
	"foodorder/internal/payment"
	repo "foodorder/internal/repository"
)

type OrderUsecase struct {
	orders  repo.OrderRepository
	audit   repo.AuditLogRepository
	tx      repo.TransactionManager
	bus     *events.Bus
	gateway payment.Gateway // nil when the processor is not configured
}

func NewOrderUsecase(orders repo.OrderRepository, audit repo.AuditLogRepository, tx repo.TransactionManager, bus *events.Bus, gateway payment.Gateway) *OrderUsecase {
	return &OrderUsecase{orders: orders, audit: audit, tx: tx, bus: bus, gateway: gateway}
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress json.RawMessage  `json:"shipping_address"`
}

// Create builds the order from current product state: every referenced product
// must exist and be available, and name/price/restaurant are snapshotted onto
// the line items so later catalog edits cannot change a placed order.
// Repeated product ids are merged by summing their quantities.
func (u *OrderUsecase) Create(ctx context.Context, actor Actor, in CreateOrderInput) (model.Order, error) {
	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "items must not be empty")
	}

	qtyByProduct := make(map[int64]int64, len(in.Items))
	ids := make([]int64, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity < 1 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "each item needs a product_id and quantity >= 1")
		}
		if _, seen := qtyByProduct[it.ProductID]; !seen {
			ids = append(ids, it.ProductID)
		}
		qtyByProduct[it.ProductID] += it.Quantity
	}

	order := model.Order{
		UserID: actor.UserID,
		Status: model.OrderStatusPending,
		Payment: model.Payment{
			Provider: model.PaymentProviderStripe,
			Status:   model.PaymentStatusPending,
		},
		ShippingAddress: []byte(in.ShippingAddress),
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().FindAvailableByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(ids))
		for _, id := range ids {
			p, ok := byID[id]
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("product %d not found or unavailable", id))
			}
			qty := qtyByProduct[id]
			items = append(items, model.OrderItem{
				ProductID:         p.ID,
				RestaurantID:      p.RestaurantID,
				NameSnapshot:      p.Name,
				UnitPriceSnapshot: p.Price,
				Quantity:          qty,
			})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(qty)))
		}

		order.Items = items
		order.TotalAmount = total
		return r.Orders().Create(ctx, &order)
	})
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return model.Order{}, err
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "could not create order")
	}

	u.bus.Publish(events.OrderCreated, order)
	return order, nil
}

func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]model.Order, error) {
	list, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

type AdminOrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *OrderUsecase) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Status != "" && !model.ValidOrderStatus(model.OrderStatus(f.Status)) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	items, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return AdminOrderListOutput{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// Get loads one order. Customers only see their own; someone else's order id
// answers 404 rather than 403 so order ids cannot be probed for existence.
func (u *OrderUsecase) Get(ctx context.Context, actor Actor, orderID int64) (model.Order, error) {
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

// Cancel moves a non-terminal order to cancelled. A paid order is refunded
// through the processor first, using the stored transaction id; if the refund
// fails the order is left untouched. Cancelled and delivered orders are both
// terminal and reject a cancel.
func (u *OrderUsecase) Cancel(ctx context.Context, actor Actor, orderID int64) (model.Order, error) {
	order, err := u.Get(ctx, actor, orderID)
	if err != nil {
		return model.Order{}, err
	}

	if order.Status == model.OrderStatusCancelled {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "order is already cancelled")
	}
	if order.Status == model.OrderStatusDelivered {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "delivered orders cannot be cancelled")
	}

	switch order.Payment.Status {
	case model.PaymentStatusPaid:
		if order.Payment.TransactionID == "" || u.gateway == nil {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "no refundable payment on this order")
		}
		if err := u.gateway.Refund(ctx, order.Payment.TransactionID); err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "refund failed")
		}
		order.Payment.Status = model.PaymentStatusRefunded
	case model.PaymentStatusPending, model.PaymentStatusFailed:
		order.Payment.Status = model.PaymentStatusCancelled
	}

	now := time.Now()
	order.Status = model.OrderStatusCancelled
	order.CancelledAt = &now

	if err := u.orders.UpdateChecked(ctx, order); err != nil {
		if errors.Is(err, repo.ErrVersionConflict) {
			return model.Order{}, NewHTTPError(http.StatusConflict, "order was modified concurrently, retry")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	order.Version++

	u.writeOrderAudit(ctx, actor, order.ID, model.AuditActionCancelOrder,
		fmt.Sprintf("payment_status=%s", order.Payment.Status))
	u.bus.Publish(events.OrderUpdated, order)
	return order, nil
}

// UpdateStatus is the admin transition. Cancelled is terminal here: refunds
// may already have been issued, so a cancelled order never comes back.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, status model.OrderStatus) (model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	if status == model.OrderStatusCancelled {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "use the cancel endpoint to cancel an order")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.Status == model.OrderStatusCancelled {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cancelled orders cannot change status")
	}

	prev := order.Status
	order.Status = status
	if err := u.orders.UpdateChecked(ctx, order); err != nil {
		if errors.Is(err, repo.ErrVersionConflict) {
			return model.Order{}, NewHTTPError(http.StatusConflict, "order was modified concurrently, retry")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	order.Version++

	u.writeOrderAudit(ctx, actor, order.ID, model.AuditActionUpdateOrderStatus,
		fmt.Sprintf("%s -> %s", prev, status))
	u.bus.Publish(events.OrderUpdated, order)
	return order, nil
}

func (u *OrderUsecase) writeOrderAudit(ctx context.Context, actor Actor, orderID int64, action model.AuditAction, detail string) {
	_ = u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		Detail:       detail,
		CreatedAt:    time.Now(),
	})
}
