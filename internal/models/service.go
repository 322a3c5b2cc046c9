package models

// Service represents a sub-service registered under a user's account.
// A user owns at most five services, each with a 16-digit service number
// unique within that user's list.
type Service struct {
	// ID is the unique identifier for the service (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	// ServiceNumber is the 16-digit number identifying the sub-account.
	ServiceNumber string `json:"serviceNumber"`

	// Name is the user-chosen display name.
	Name string `json:"name"`

	IsActive bool `json:"isActive"`
}

// ServiceWithBill pairs a service with its simulated current bill.
// The bill is regenerated on every read and never persisted; callers must
// not expect it to be stable across calls.
type ServiceWithBill struct {
	Service
	CurrentBill *Bill `json:"currentBill,omitempty"`
}
