package models

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

// Bill represents one billing period for a user.
//
// The live "current bill" is computed on every read and never persisted; the
// history list is seeded once per user and then stays stable except for
// status transitions caused by payment. Dates are display strings, matching
// the persisted layout.
type Bill struct {
	// ID is the bill identifier. History entries use "<userID>-<index>",
	// synthetic current bills use "<ownerID>-current".
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	BillDate      string  `json:"billDate"`
	DueDate       string  `json:"dueDate"`
	AccountNumber string  `json:"accountNumber"`
	Consumption   int     `json:"consumption"`
	Amount        float64 `json:"amount"`
	Taxes         float64 `json:"taxes"`

	Status BillStatus `json:"status"`

	PrintedOn string `json:"printedOn"`
}
