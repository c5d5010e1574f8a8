package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	JWTSecret  string
	JWTExpires time.Duration // access token TTL, default 7 days

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string // ISO code for payment intents, default "usd"

	// PaymentTestMode gates the fallback mark-paid endpoint. It defaults to
	// true when no Stripe key is configured.
	PaymentTestMode bool

	GoEnv string
	FEURL string // frontend origin for CORS
}

func Load() (Config, error) {
	cfg := Config{
		Port:                getenv("PORT", "8080"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            getenv("CURRENCY", "usd"),
		GoEnv:               getenv("GO_ENV", "dev"),
		FEURL:               getenv("FE_URL", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.JWTExpires = 7 * 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRES"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("JWT_EXPIRES must be a duration: %w", err)
		}
		cfg.JWTExpires = d
	}

	cfg.PaymentTestMode = cfg.StripeSecretKey == ""
	if v := os.Getenv("PAYMENT_TEST_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("PAYMENT_TEST_MODE must be a bool: %w", err)
		}
		cfg.PaymentTestMode = b
	}

	if cfg.StripeSecretKey != "" && cfg.StripeWebhookSecret == "" {
		return Config{}, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required when STRIPE_SECRET_KEY is set")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
