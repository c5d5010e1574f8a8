package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/usecase"
)

type PaymentHandler struct {
	payments *usecase.PaymentUsecase
}

func NewPaymentHandler(payments *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		OrderID int64 `json:"order_id"`
	}
	if err := c.Bind(&req); err != nil || req.OrderID <= 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "order_id is required"})
	}

	intent, uerr := h.payments.CreateIntent(c.Request().Context(), actor, req.OrderID)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, intent)
}

// Webhook receives processor callbacks. The signature covers the exact bytes
// on the wire, so the body is read raw and never bound.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "could not read body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")
	if uerr := h.payments.HandleWebhook(c.Request().Context(), body, sig); uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
