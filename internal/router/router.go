// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mmynk/powerbill/internal/auth"
	"github.com/mmynk/powerbill/internal/handler"
	"github.com/mmynk/powerbill/internal/metrics"
	"github.com/mmynk/powerbill/internal/middleware"
)

// Register mounts every route. The /api/v1 group past login/register
// requires a Bearer token.
func Register(
	e *echo.Echo,
	authH *handler.AuthHandler,
	billH *handler.BillHandler,
	svcH *handler.ServiceHandler,
	payH *handler.PaymentHandler,
	jwtManager *auth.JWTManager,
) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api/v1")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	protected := api.Group("", middleware.RequireAuth(jwtManager))
	protected.POST("/auth/logout", authH.Logout)
	protected.GET("/auth/me", authH.Me)
	protected.PUT("/auth/me", authH.Update)

	protected.GET("/bills/current", billH.Current)
	protected.GET("/bills", billH.History)
	protected.POST("/bills/:id/pay", billH.Pay)

	protected.GET("/services", svcH.List)
	protected.POST("/services", svcH.Create)
	protected.GET("/services/bills", svcH.WithBills)
	protected.POST("/services/:id/pay", svcH.Pay)

	protected.GET("/payments", payH.List)
}
