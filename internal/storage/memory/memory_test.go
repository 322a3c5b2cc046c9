package memory

import (
	"context"
	"testing"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	t.Run("get missing key returns empty", func(t *testing.T) {
		got, err := store.Get(ctx, "nope")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "" {
			t.Errorf("Get = %q, want empty", got)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := store.Set(ctx, "a", "1"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := store.Get(ctx, "a")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "1" {
			t.Errorf("Get = %q, want %q", got, "1")
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		store.Set(ctx, "a", "2")
		got, _ := store.Get(ctx, "a")
		if got != "2" {
			t.Errorf("Get = %q, want %q", got, "2")
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := store.Remove(ctx, "a"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		got, _ := store.Get(ctx, "a")
		if got != "" {
			t.Errorf("Get after Remove = %q, want empty", got)
		}
		// Removing again is not an error.
		if err := store.Remove(ctx, "a"); err != nil {
			t.Errorf("second Remove failed: %v", err)
		}
	})
}
