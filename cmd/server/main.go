package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/http2"

	"github.com/mmynk/powerbill/internal/auth"
	"github.com/mmynk/powerbill/internal/config"
	"github.com/mmynk/powerbill/internal/handler"
	"github.com/mmynk/powerbill/internal/metrics"
	"github.com/mmynk/powerbill/internal/middleware"
	"github.com/mmynk/powerbill/internal/router"
	"github.com/mmynk/powerbill/internal/service"
	"github.com/mmynk/powerbill/internal/storage"
	"github.com/mmynk/powerbill/internal/storage/memory"
	"github.com/mmynk/powerbill/internal/storage/redis"
	"github.com/mmynk/powerbill/internal/storage/sqlite"
	"github.com/mmynk/powerbill/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.Storage, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Storage)

	authSvc := service.NewAuthService(store, service.WithDelay(cfg.LoginDelay))
	billSvc := service.NewBillService(store, service.WithDelay(cfg.PaymentDelay))
	paySvc := service.NewPaymentService(store)
	registry := service.NewServiceRegistry(store, paySvc)

	if err := authSvc.Rehydrate(context.Background()); err != nil {
		slog.Error("Failed to rehydrate session", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	e := echo.New()
	e.HideBanner = true
	// The logger commits handler errors, so metrics wraps it to observe the
	// final response status.
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger())

	router.Register(e,
		handler.NewAuthHandler(authSvc, jwtManager),
		handler.NewBillHandler(billSvc),
		handler.NewServiceHandler(registry),
		handler.NewPaymentHandler(paySvc),
		jwtManager,
	)

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr, "env", cfg.Env)
	// h2c serves HTTP/2 without TLS for local clients that ask for it.
	if err := e.StartH2CServer(addr, &http2.Server{}); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// newStore picks the key-value backend from config: sqlite (default),
// redis, or memory (state lost on restart).
func newStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case "memory":
		return memory.New(), nil
	case "redis":
		return redis.NewFromEnv()
	default:
		return sqlite.New(cfg.DBPath)
	}
}
