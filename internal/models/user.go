package models

// User represents a registered account.
//
// Users are created at registration and never deleted; profile changes go
// through partial updates (UserPatch) so unset fields are left untouched.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address, unique across the registry.
	Email string `json:"email"`

	// ConsumerNumber is the utility consumer number supplied at registration.
	ConsumerNumber string `json:"consumerNumber"`

	// MeterNumber is generated at registration.
	MeterNumber string `json:"meterNumber"`

	Address      string `json:"address"`
	MobileNumber string `json:"mobileNumber"`

	// Meter readings are optional and absent until the user records them.
	PresentReading  *int `json:"presentReading,omitempty"`
	PreviousReading *int `json:"previousReading,omitempty"`
}

// UserPatch is a partial update to a User. Nil fields are left unchanged.
type UserPatch struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	ConsumerNumber  *string `json:"consumerNumber,omitempty"`
	Address         *string `json:"address,omitempty"`
	MobileNumber    *string `json:"mobileNumber,omitempty"`
	PresentReading  *int    `json:"presentReading,omitempty"`
	PreviousReading *int    `json:"previousReading,omitempty"`
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.ConsumerNumber != nil {
		u.ConsumerNumber = *p.ConsumerNumber
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.MobileNumber != nil {
		u.MobileNumber = *p.MobileNumber
	}
	if p.PresentReading != nil {
		u.PresentReading = p.PresentReading
	}
	if p.PreviousReading != nil {
		u.PreviousReading = p.PreviousReading
	}
}
