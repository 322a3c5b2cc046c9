// Package storage provides the key-value port the rest of the application
// persists through.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the interface for the string-keyed blob store.
// This abstraction allows swapping storage backends (memory, SQLite, Redis)
// without changing the service layer.
//
// The store does not namespace keys; callers own the "<entity>-<userID>"
// convention (see the Key helpers below).
type Store interface {
	// Get retrieves the value for a key. A missing key is not an error:
	// it returns ("", nil). Values are JSON blobs and never empty.
	Get(ctx context.Context, key string) (string, error)

	// Set writes a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Persisted key layout. SessionKey holds the current user, RegistryKey the
// list of all registered users; per-user lists hang off the Key helpers.
const (
	SessionKey  = "electricity-bill-user"
	RegistryKey = "electricity-bill-users"
)

// BillsKey is the key for a user's persisted bill history.
func BillsKey(userID string) string { return "bills-" + userID }

// ServicesKey is the key for a user's registered services.
func ServicesKey(userID string) string { return "services-" + userID }

// PaymentsKey is the key for a user's payment log.
func PaymentsKey(userID string) string { return "payments-" + userID }

// ReadJSON loads the blob at key into v. It returns false when the key is
// absent or the stored blob is not valid JSON: corrupted data reads as "no
// data yet", never as an error.
func ReadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, nil
	}
	return true, nil
}

// WriteJSON marshals v and stores it at key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	if err := s.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}
