package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"foodorder/internal/config"
	"foodorder/internal/domain/model"
	"foodorder/internal/middleware"
	"foodorder/internal/usecase"
)

// ssePingInterval is how often the stream emits a keep-alive so proxies do not
// reap idle connections.
const ssePingInterval = 15 * time.Second

type MerchantHandler struct {
	cfg    config.Config
	orders *usecase.MerchantOrderUsecase
}

func NewMerchantHandler(cfg config.Config, orders *usecase.MerchantOrderUsecase) *MerchantHandler {
	return &MerchantHandler{cfg: cfg, orders: orders}
}

func (h *MerchantHandler) ListOrders(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	list, uerr := h.orders.List(c.Request().Context(), actor.UserID, c.QueryParam("status"))
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MerchantHandler) UpdateStatus(c echo.Context) error {
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

	order, uerr := h.orders.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, order)
}

// Stream is the merchant's live order feed over server-sent events.
// EventSource cannot set headers, so the token rides in a query parameter.
func (h *MerchantHandler) Stream(c echo.Context) error {
	raw := c.QueryParam("token")
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}
	id, err := middleware.ParseToken(raw, h.cfg.JWTSecret)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}
	if id.Role != model.RoleMerchant {
		return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	}

	ctx := c.Request().Context()
	ch, unsubscribe, uerr := h.orders.Stream(ctx, id.UserID)
	if uerr != nil {
		return respondError(c, uerr)
	}
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ping := time.NewTicker(ssePingInterval)
	defer ping.Stop()

	if err := writeSSE(res, "ping", []byte(`{}`)); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ping.C:
			if err := writeSSE(res, "ping", []byte(`{}`)); err != nil {
				return nil
			}
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			payload, merr := json.Marshal(ev)
			if merr != nil {
				continue
			}
			if err := writeSSE(res, "order", payload); err != nil {
				return nil
			}
		}
	}
}

func writeSSE(res *echo.Response, event string, data []byte) error {
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
