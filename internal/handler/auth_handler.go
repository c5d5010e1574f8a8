package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"foodorder/internal/middleware"
	"foodorder/internal/usecase"
)

type AuthHandler struct {
	auth *usecase.AuthUsecase
}

func NewAuthHandler(auth *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	out, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	h.setTokenCookie(c, out.Token)
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	out, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	h.setTokenCookie(c, out.Token)
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	user, uerr := h.auth.Me(c.Request().Context(), actor.UserID)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, user)
}

// setTokenCookie mirrors the bearer token into a same-site cookie so browser
// clients survive page reloads without storing the JWT themselves.
func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.auth.TokenTTL()),
	})
}
