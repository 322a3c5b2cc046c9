package models

// PaymentStatusCompleted is the only status a recorded payment can have:
// payments never fail once written to the log.
const PaymentStatusCompleted = "completed"

// Payment is one entry in a user's payment log, newest first.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// ServiceID is the service the payment was made against.
	ServiceID string `json:"serviceId"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	Amount float64 `json:"amount"`

	// Date is the RFC 3339 timestamp of the payment.
	Date string `json:"date"`

	Status string `json:"status"`
}
