package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/powerbill/internal/metrics"
	"github.com/mmynk/powerbill/internal/middleware"
	"github.com/mmynk/powerbill/internal/service"
)

// ServiceHandler bundles dependencies for the sub-service endpoints.
type ServiceHandler struct {
	Registry *service.ServiceRegistry
}

func NewServiceHandler(registry *service.ServiceRegistry) *ServiceHandler {
	return &ServiceHandler{Registry: registry}
}

type addServiceReq struct {
	ServiceNumber string `json:"serviceNumber"`
	Name          string `json:"name"`
}

// List returns the user's registered services.
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.Registry.Services(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load services failed"})
	}
	return c.JSON(http.StatusOK, services)
}

// Create registers a new service.
func (h *ServiceHandler) Create(c echo.Context) error {
	var req addServiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ServiceNumber == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "serviceNumber/name required"})
	}

	svc, err := h.Registry.AddService(c.Request().Context(), middleware.UserID(c), req.ServiceNumber, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidServiceNumber):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "service number must be 16 digits"})
		case errors.Is(err, service.ErrServiceLimit):
			return c.JSON(http.StatusConflict, echo.Map{"error": "maximum 5 services allowed"})
		case errors.Is(err, service.ErrDuplicateService):
			return c.JSON(http.StatusConflict, echo.Map{"error": "service number already registered"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add service failed"})
		}
	}
	return c.JSON(http.StatusCreated, svc)
}

// WithBills returns the services paired with freshly simulated current bills.
func (h *ServiceHandler) WithBills(c echo.Context) error {
	services, err := h.Registry.ServicesWithBills(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load services failed"})
	}
	return c.JSON(http.StatusOK, services)
}

// Pay records a payment against a service.
func (h *ServiceHandler) Pay(c echo.Context) error {
	payment, err := h.Registry.PayServiceBill(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
	metrics.PaymentsRecorded.WithLabelValues("service").Inc()
	return c.JSON(http.StatusCreated, payment)
}
