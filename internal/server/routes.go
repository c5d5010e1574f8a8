package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/config"
	"foodorder/internal/domain/model"
	"foodorder/internal/events"
	"foodorder/internal/handler"
	"foodorder/internal/middleware"
)

// Handlers is the full set wired up in main.
type Handlers struct {
	Auth        *handler.AuthHandler
	Restaurants *handler.RestaurantHandler
	Products    *handler.ProductHandler
	Orders      *handler.OrderHandler
	Merchant    *handler.MerchantHandler
	Payments    *handler.PaymentHandler
}

func registerRoutes(e *echo.Echo, cfg config.Config, bus *events.Bus, h Handlers) {
	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":             "ok",
			"stream_subscribers": bus.SubscriberCount(),
		})
	})

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", h.Auth.Me, middleware.AuthJWT(cfg))

	// Admin restaurant management plus merchant self-service.
	rest := api.Group("/restaurants")
	rest.POST("", h.Restaurants.AdminCreate, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleAdmin))
	rest.GET("", h.Restaurants.AdminList, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleAdmin))
	rest.PATCH("/:id/approve", h.Restaurants.AdminApprove, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleAdmin))
	rest.GET("/me", h.Restaurants.Mine, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant))
	rest.POST("/me", h.Restaurants.CreateMine, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant))
	rest.PUT("/me", h.Restaurants.UpdateMine, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant))

	api.GET("/public/restaurants", h.Restaurants.PublicList)

	products := api.Group("/products")
	products.GET("", h.Products.List, middleware.AuthOptional(cfg))
	products.GET("/meta", h.Products.Meta)
	products.GET("/:id", h.Products.Get)
	products.POST("", h.Products.Create, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant, model.RoleAdmin))
	products.PUT("/:id", h.Products.Update, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant, model.RoleAdmin))
	products.DELETE("/:id", h.Products.Delete, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant, model.RoleAdmin))

	orders := api.Group("/orders", middleware.AuthJWT(cfg))
	orders.POST("", h.Orders.Create, middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	orders.GET("", h.Orders.List)
	orders.GET("/:id", h.Orders.Get)
	orders.POST("/:id/cancel", h.Orders.Cancel)
	orders.POST("/:id/pay", h.Orders.Pay)
	orders.PATCH("/:id/status", h.Orders.UpdateStatus, middleware.RequireRole(model.RoleAdmin))

	merchant := api.Group("/merchant")
	merchant.GET("/orders", h.Merchant.ListOrders, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant))
	merchant.POST("/orders/:id/status", h.Merchant.UpdateStatus, middleware.AuthJWT(cfg), middleware.RequireRole(model.RoleMerchant))
	// Authenticated inside the handler: EventSource cannot send headers.
	merchant.GET("/orders/stream", h.Merchant.Stream)

	payments := api.Group("/payments")
	payments.POST("/create-intent", h.Payments.CreateIntent, middleware.AuthJWT(cfg))
	payments.POST("/webhook", h.Payments.Webhook)
}
