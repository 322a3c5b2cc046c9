package models

// Session is the authentication state owned by the session manager.
// There is exactly one active session per manager; it is rehydrated from the
// persisted current-user entry at startup and cleared on logout.
type Session struct {
	// User is the signed-in user, nil when anonymous.
	User *User `json:"user"`

	Authenticated bool `json:"isAuthenticated"`

	// Loading is set while a login or registration is in flight.
	Loading bool `json:"isLoading"`
}
