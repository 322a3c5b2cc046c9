package service

import (
	"context"
	"testing"

	"github.com/mmynk/powerbill/internal/models"
	"github.com/mmynk/powerbill/internal/storage/memory"
)

func TestPaymentLog(t *testing.T) {
	ctx := context.Background()

	t.Run("empty for a user with no payments", func(t *testing.T) {
		svc := NewPaymentService(memory.New())
		payments, err := svc.Payments(ctx, "u1")
		if err != nil {
			t.Fatalf("Payments failed: %v", err)
		}
		if len(payments) != 0 {
			t.Errorf("got %d payments, want 0", len(payments))
		}
	})

	t.Run("record prepends newest first", func(t *testing.T) {
		svc := NewPaymentService(memory.New(),
			WithClock(testClock),
			WithIDGenerator(seqIDs()),
		)

		first, err := svc.Record(ctx, "u1", "s1", 750)
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		second, err := svc.Record(ctx, "u1", "s2", 1200)
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		payments, err := svc.Payments(ctx, "u1")
		if err != nil {
			t.Fatalf("Payments failed: %v", err)
		}
		if len(payments) != 2 {
			t.Fatalf("got %d payments, want 2", len(payments))
		}
		if payments[0].ID != second.ID || payments[1].ID != first.ID {
			t.Errorf("order = [%s %s], want newest first", payments[0].ID, payments[1].ID)
		}

		got := payments[0]
		if got.ServiceID != "s2" || got.UserID != "u1" || got.Amount != 1200 {
			t.Errorf("payment = %+v", got)
		}
		if got.Status != models.PaymentStatusCompleted {
			t.Errorf("status = %s, want completed", got.Status)
		}
		if got.Date != "2025-07-27T10:00:00Z" {
			t.Errorf("date = %s, want 2025-07-27T10:00:00Z", got.Date)
		}
	})
}
