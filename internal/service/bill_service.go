package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/mmynk/powerbill/internal/models"
	"github.com/mmynk/powerbill/internal/storage"
)

var ErrBillNotFound = errors.New("bill not found")

// DefaultPaymentDelay is the simulated latency for paying the main bill.
const DefaultPaymentDelay = 2 * time.Second

// accountNumber is the fixed demo account printed on every main bill.
const accountNumber = "1246557"

// seededMonths is the fixed table the four-entry bill history is generated
// from. Taxes are 8% of the amount, rounded.
var seededMonths = []struct {
	name        string
	year        string
	consumption int
	amount      float64
	status      models.BillStatus
}{
	{"MAY", "2025", 200, 1940, models.BillStatusPending},
	{"April", "2025", 224, 1930, models.BillStatusPaid},
	{"March", "2025", 180, 1470, models.BillStatusPaid},
	{"Feb", "2025", 262, 2290, models.BillStatusPaid},
}

// BillService computes the live current bill and manages the persisted
// history list at storage.BillsKey(userID).
type BillService struct {
	store storage.Store
	opts  options
}

// NewBillService creates a bill store on top of the given key-value store.
func NewBillService(store storage.Store, opts ...Option) *BillService {
	return &BillService{
		store: store,
		opts:  newOptions(DefaultPaymentDelay, opts),
	}
}

// CurrentBill returns the live bill shown on the home view. It has a fixed
// shape and is never persisted.
func (s *BillService) CurrentBill(userID string) models.Bill {
	return models.Bill{
		ID:            userID + "-current",
		UserID:        userID,
		BillDate:      "27/07/25",
		DueDate:       "12/08/25",
		AccountNumber: accountNumber,
		Consumption:   200,
		Amount:        600.15,
		Taxes:         46.80,
		Status:        models.BillStatusPending,
		PrintedOn:     "25/07/25",
	}
}

// BillHistory returns the persisted history list, seeding and persisting the
// four fixed months on first read. After the first call it is stable across
// reads except for status changes made by PayBill.
func (s *BillService) BillHistory(ctx context.Context, userID string) ([]models.Bill, error) {
	var bills []models.Bill
	found, err := storage.ReadJSON(ctx, s.store, storage.BillsKey(userID), &bills)
	if err != nil {
		return nil, err
	}
	if found {
		return bills, nil
	}

	bills = s.seedBills(userID)
	if err := storage.WriteJSON(ctx, s.store, storage.BillsKey(userID), bills); err != nil {
		return nil, err
	}
	slog.Info("Bill history seeded", "user_id", userID, "bills", len(bills))
	return bills, nil
}

// PayBill marks the identified history entry as paid. Paying an already-paid
// bill succeeds and leaves it paid. An unknown bill ID is ErrBillNotFound and
// leaves the history unchanged.
func (s *BillService) PayBill(ctx context.Context, billID, userID string) error {
	s.opts.simulateLatency()

	bills, err := s.BillHistory(ctx, userID)
	if err != nil {
		return err
	}

	for i := range bills {
		if bills[i].ID == billID {
			bills[i].Status = models.BillStatusPaid
			if err := storage.WriteJSON(ctx, s.store, storage.BillsKey(userID), bills); err != nil {
				return err
			}
			slog.Info("Bill paid", "user_id", userID, "bill_id", billID)
			return nil
		}
	}

	slog.Warn("Payment failed, bill not found", "user_id", userID, "bill_id", billID)
	return ErrBillNotFound
}

// seedBills builds the fixed four-month history for a user.
func (s *BillService) seedBills(userID string) []models.Bill {
	bills := make([]models.Bill, len(seededMonths))
	for i, m := range seededMonths {
		bills[i] = models.Bill{
			ID:            fmt.Sprintf("%s-%d", userID, i),
			UserID:        userID,
			BillDate:      fmt.Sprintf("%02d-%s-%s", i+1, strings.ToLower(m.name), m.year),
			DueDate:       fmt.Sprintf("%02d/08/25", i+12),
			AccountNumber: accountNumber,
			Consumption:   m.consumption,
			Amount:        m.amount,
			Taxes:         math.Round(m.amount * 0.08),
			Status:        m.status,
			PrintedOn:     "25/07/25",
		}
	}
	return bills
}
