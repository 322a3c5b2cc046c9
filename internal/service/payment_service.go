package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/powerbill/internal/models"
	"github.com/mmynk/powerbill/internal/storage"
)

// PaymentService is the append-only payment log, persisted newest-first at
// storage.PaymentsKey(userID).
type PaymentService struct {
	store storage.Store
	opts  options
}

// NewPaymentService creates a payment log on top of the given store.
func NewPaymentService(store storage.Store, opts ...Option) *PaymentService {
	return &PaymentService{
		store: store,
		opts:  newOptions(0, opts),
	}
}

// Record prepends a completed payment to the user's log. Once a payment is
// written it never fails; the only error path is the underlying store.
func (s *PaymentService) Record(ctx context.Context, userID, serviceID string, amount float64) (*models.Payment, error) {
	payment := models.Payment{
		ID:        s.opts.newID(),
		ServiceID: serviceID,
		UserID:    userID,
		Amount:    amount,
		Date:      s.opts.now().UTC().Format(time.RFC3339),
		Status:    models.PaymentStatusCompleted,
	}

	payments, err := s.Payments(ctx, userID)
	if err != nil {
		return nil, err
	}

	payments = append([]models.Payment{payment}, payments...)
	if err := storage.WriteJSON(ctx, s.store, storage.PaymentsKey(userID), payments); err != nil {
		return nil, err
	}

	slog.Info("Payment recorded",
		"user_id", userID,
		"service_id", serviceID,
		"payment_id", payment.ID,
		"amount", amount,
	)
	return &payment, nil
}

// Payments returns the user's payment log, newest first.
func (s *PaymentService) Payments(ctx context.Context, userID string) ([]models.Payment, error) {
	var payments []models.Payment
	if _, err := storage.ReadJSON(ctx, s.store, storage.PaymentsKey(userID), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
