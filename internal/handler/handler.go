package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodorder/internal/domain/model"
	"foodorder/internal/middleware"
	"foodorder/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps usecase errors onto JSON responses; anything that is not
// an HTTPError is treated as internal.
func respondError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, errorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// actorFrom reads the identity placed in context by the auth middleware.
func actorFrom(c echo.Context) (usecase.Actor, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := c.Get(middleware.CtxUserRoleKey).(model.Role)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: id, Role: role}, true
}

func mustActor(c echo.Context) (usecase.Actor, error) {
	actor, ok := actorFrom(c)
	if !ok {
		return usecase.Actor{}, usecase.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return actor, nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
