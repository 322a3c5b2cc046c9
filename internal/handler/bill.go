package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/powerbill/internal/metrics"
	"github.com/mmynk/powerbill/internal/middleware"
	"github.com/mmynk/powerbill/internal/service"
)

// BillHandler bundles dependencies for the bill endpoints.
type BillHandler struct {
	Bills *service.BillService
}

func NewBillHandler(bills *service.BillService) *BillHandler {
	return &BillHandler{Bills: bills}
}

// Current returns the live bill shown on the home view.
func (h *BillHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Bills.CurrentBill(middleware.UserID(c)))
}

// History returns the persisted bill history, seeding it on first read.
func (h *BillHandler) History(c echo.Context) error {
	bills, err := h.Bills.BillHistory(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load history failed"})
	}
	return c.JSON(http.StatusOK, bills)
}

// Pay marks a history entry as paid.
func (h *BillHandler) Pay(c echo.Context) error {
	billID := c.Param("id")
	if err := h.Bills.PayBill(c.Request().Context(), billID, middleware.UserID(c)); err != nil {
		if errors.Is(err, service.ErrBillNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bill not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
	metrics.PaymentsRecorded.WithLabelValues("bill").Inc()
	return c.JSON(http.StatusOK, echo.Map{"status": "paid"})
}
