package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"
	"foodorder/internal/usecase"
)

type OrderHandler struct {
	orders   *usecase.OrderUsecase
	payments *usecase.PaymentUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, payments *usecase.PaymentUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	order, uerr := h.orders.Create(c.Request().Context(), actor, req)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusCreated, order)
}

// List returns the caller's own orders; admins get the full, filterable view.
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	if actor.IsAdmin() {
		f := repo.AdminOrderListFilter{Status: c.QueryParam("status")}
		if raw := c.QueryParam("page"); raw != "" {
			f.Page, _ = strconv.Atoi(raw)
		}
		if raw := c.QueryParam("limit"); raw != "" {
			f.Limit, _ = strconv.Atoi(raw)
		}
		if raw := c.QueryParam("userId"); raw != "" {
			id, perr := strconv.ParseInt(raw, 10, 64)
			if perr != nil {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid userId"})
			}
			f.UserID = &id
		}
		out, uerr := h.orders.ListAdmin(c.Request().Context(), f)
		if uerr != nil {
			return respondError(c, uerr)
		}
		return c.JSON(http.StatusOK, out)
	}

	list, uerr := h.orders.ListMine(c.Request().Context(), actor.UserID)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	order, uerr := h.orders.Get(c.Request().Context(), actor, id)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	order, uerr := h.orders.Cancel(c.Request().Context(), actor, id)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, order)
}

// Pay is the out-of-band fallback confirmation, available in test mode only.
func (h *OrderHandler) Pay(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		TransactionID string `json:"transaction_id"`
	}
	_ = c.Bind(&req) // body is optional

	order, uerr := h.payments.MarkPaid(c.Request().Context(), actor, id, req.TransactionID)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "status is required"})
	}

	order, uerr := h.orders.UpdateStatus(c.Request().Context(), actor, id, model.OrderStatus(req.Status))
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, order)
}
