package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"foodorder/internal/config"
	"foodorder/internal/domain/model"
	"foodorder/internal/events"
	"foodorder/internal/handler"
	"foodorder/internal/infra/db"
	infrarepo "foodorder/internal/infra/repository"
	"foodorder/internal/payment"
	"foodorder/internal/server"
	"foodorder/internal/usecase"
	"foodorder/internal/validator"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	users := infrarepo.NewUserGormRepository(gormDB)
	restaurants := infrarepo.NewRestaurantGormRepository(gormDB)
	products := infrarepo.NewProductGormRepository(gormDB)
	orders := infrarepo.NewOrderGormRepository(gormDB)
	auditLogs := infrarepo.NewAuditLogGormRepository(gormDB)
	txManager := infrarepo.NewTxManagerGorm(gormDB)

	bus := events.NewBus()

	var gateway payment.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	}
	if cfg.PaymentTestMode {
		log.Println("payment test mode enabled: POST /api/orders/:id/pay is active")
	}

	authUC := usecase.NewAuthUsecase(cfg, users, validator.NewAuthValidator())
	restaurantUC := usecase.NewRestaurantUsecase(restaurants, users, auditLogs)
	productUC := usecase.NewProductUsecase(products, restaurants)
	orderUC := usecase.NewOrderUsecase(orders, auditLogs, txManager, bus, gateway)
	merchantUC := usecase.NewMerchantOrderUsecase(orders, restaurants, auditLogs, bus)
	paymentUC := usecase.NewPaymentUsecase(&cfg, orders, bus, gateway)

	srv := server.New(cfg, bus, server.Handlers{
		Auth:        handler.NewAuthHandler(authUC),
		Restaurants: handler.NewRestaurantHandler(restaurantUC),
		Products:    handler.NewProductHandler(productUC),
		Orders:      handler.NewOrderHandler(orderUC, paymentUC),
		Merchant:    handler.NewMerchantHandler(cfg, merchantUC),
		Payments:    handler.NewPaymentHandler(paymentUC),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
