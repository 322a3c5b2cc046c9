package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/powerbill/internal/models"
	"github.com/mmynk/powerbill/internal/storage"
)

// MaxServices is the cap on registered services per user.
const MaxServices = 5

var (
	ErrServiceLimit         = errors.New("maximum of 5 services reached")
	ErrDuplicateService     = errors.New("service number already registered")
	ErrInvalidServiceNumber = errors.New("service number must be 16 digits")
)

// ServiceRegistry manages the bounded list of sub-services a user has
// registered, persisted at storage.ServicesKey(userID).
type ServiceRegistry struct {
	store    storage.Store
	payments *PaymentService
	opts     options
}

// NewServiceRegistry creates a service registry. Payments made against a
// service are recorded through the given payment log.
func NewServiceRegistry(store storage.Store, payments *PaymentService, opts ...Option) *ServiceRegistry {
	return &ServiceRegistry{
		store:    store,
		payments: payments,
		opts:     newOptions(0, opts),
	}
}

// Services returns the persisted list, empty when none exist.
func (r *ServiceRegistry) Services(ctx context.Context, userID string) ([]models.Service, error) {
	var services []models.Service
	if _, err := storage.ReadJSON(ctx, r.store, storage.ServicesKey(userID), &services); err != nil {
		return nil, err
	}
	return services, nil
}

// AddService registers a new service. It fails on a malformed service
// number, on the five-service cap, and on a number the user already has.
// Two concurrent callers can race past the cap check; the storage contract
// assumes a single writer.
func (r *ServiceRegistry) AddService(ctx context.Context, userID, serviceNumber, name string) (*models.Service, error) {
	if !validServiceNumber(serviceNumber) {
		return nil, ErrInvalidServiceNumber
	}

	services, err := r.Services(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(services) >= MaxServices {
		return nil, ErrServiceLimit
	}
	for i := range services {
		if services[i].ServiceNumber == serviceNumber {
			return nil, ErrDuplicateService
		}
	}

	service := models.Service{
		ID:            r.opts.newID(),
		UserID:        userID,
		ServiceNumber: serviceNumber,
		Name:          name,
		IsActive:      true,
	}
	services = append(services, service)
	if err := storage.WriteJSON(ctx, r.store, storage.ServicesKey(userID), services); err != nil {
		return nil, err
	}

	slog.Info("Service registered", "user_id", userID, "service_id", service.ID)
	return &service, nil
}

// ServicesWithBills pairs every registered service with a freshly generated
// simulated bill. The bills are random on every call and never persisted.
func (r *ServiceRegistry) ServicesWithBills(ctx context.Context, userID string) ([]models.ServiceWithBill, error) {
	services, err := r.Services(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := r.opts.now()
	withBills := make([]models.ServiceWithBill, len(services))
	for i, svc := range services {
		bill := models.Bill{
			ID:            svc.ID + "-current",
			UserID:        userID,
			BillDate:      now.Format("02/01/2006"),
			DueDate:       now.Add(15 * 24 * time.Hour).Format("02/01/2006"),
			AccountNumber: svc.ServiceNumber,
			Consumption:   100 + r.opts.rng.Intn(300),
			Amount:        float64(500 + r.opts.rng.Intn(2000)),
			Taxes:         float64(50 + r.opts.rng.Intn(200)),
			Status:        models.BillStatusPending,
			PrintedOn:     now.Format("02/01/2006"),
		}
		withBills[i] = models.ServiceWithBill{Service: svc, CurrentBill: &bill}
	}
	return withBills, nil
}

// PayServiceBill records a payment against a service with a simulated
// amount. It does not check that the service belongs to the user; the only
// failure mode is a storage error from the payment log.
func (r *ServiceRegistry) PayServiceBill(ctx context.Context, serviceID, userID string) (*models.Payment, error) {
	amount := float64(500 + r.opts.rng.Intn(2000))
	return r.payments.Record(ctx, userID, serviceID, amount)
}

// validServiceNumber reports whether s is exactly 16 ASCII digits.
func validServiceNumber(s string) bool {
	if len(s) != 16 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
