package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/powerbill/internal/middleware"
	"github.com/mmynk/powerbill/internal/service"
)

// PaymentHandler bundles dependencies for the payment log endpoints.
type PaymentHandler struct {
	Payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// List returns the user's payment log, newest first.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.Payments.Payments(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load payments failed"})
	}
	return c.JSON(http.StatusOK, payments)
}
