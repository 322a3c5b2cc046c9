package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/powerbill/internal/models"
	"github.com/mmynk/powerbill/internal/storage"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrUserNotFound       = errors.New("user not found")
)

// DefaultAuthDelay is the simulated latency for login and registration.
const DefaultAuthDelay = 1 * time.Second

// RegisterInput carries the registration form fields. The password is
// accepted for shape but never stored or verified; this is a demo, not an
// authentication model.
type RegisterInput struct {
	Name            string
	Email           string
	ConsumerNumber  string
	Address         string
	MobileNumber    string
	PresentReading  *int
	PreviousReading *int
}

// AuthService owns the session state and the user registry.
//
// The registry lives at storage.RegistryKey as a JSON array of users; the
// current session user is persisted separately at storage.SessionKey and
// rehydrated at startup without consulting the registry.
type AuthService struct {
	store storage.Store
	opts  options

	mu      sync.RWMutex
	session models.Session
}

// NewAuthService creates a session manager on top of the given store.
func NewAuthService(store storage.Store, opts ...Option) *AuthService {
	return &AuthService{
		store: store,
		opts:  newOptions(DefaultAuthDelay, opts),
	}
}

// Session returns a snapshot of the current session state.
func (s *AuthService) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.session
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}

// CurrentUser returns a copy of the signed-in user, or nil when anonymous.
func (s *AuthService) CurrentUser() *models.User {
	return s.Session().User
}

// Rehydrate restores a persisted session at startup. A malformed blob is
// discarded and treated as "no session".
func (s *AuthService) Rehydrate(ctx context.Context) error {
	raw, err := s.store.Get(ctx, storage.SessionKey)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if raw == "" {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		slog.Warn("Discarding malformed persisted session")
		if err := s.store.Remove(ctx, storage.SessionKey); err != nil {
			return fmt.Errorf("failed to discard session: %w", err)
		}
		return nil
	}

	s.setAuthenticated(&user)
	slog.Info("Session rehydrated", "user_id", user.ID)
	return nil
}

// Login looks the email up in the registry and starts a session. The
// password is not verified; any non-empty value passes.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	s.opts.simulateLatency()

	if email == "" || password == "" {
		s.setAnonymous()
		return nil, ErrInvalidCredentials
	}

	users, err := s.registry(ctx)
	if err != nil {
		s.setAnonymous()
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			user := users[i]
			if err := storage.WriteJSON(ctx, s.store, storage.SessionKey, &user); err != nil {
				s.setAnonymous()
				return nil, err
			}
			s.setAuthenticated(&user)
			slog.Info("User logged in", "user_id", user.ID, "email", user.Email)
			return &user, nil
		}
	}

	s.setAnonymous()
	slog.Warn("Login failed", "email", email)
	return nil, ErrInvalidCredentials
}

// Register creates a new account. The only failure mode besides storage
// errors is a duplicate email, which leaves the registry untouched.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	s.opts.simulateLatency()

	users, err := s.registry(ctx)
	if err != nil {
		s.setAnonymous()
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, in.Email) {
			s.setAnonymous()
			return nil, ErrEmailExists
		}
	}

	user := models.User{
		ID:              s.opts.newID(),
		Name:            in.Name,
		Email:           in.Email,
		ConsumerNumber:  in.ConsumerNumber,
		MeterNumber:     fmt.Sprintf("%d", s.opts.rng.Intn(100000000)),
		Address:         in.Address,
		MobileNumber:    in.MobileNumber,
		PresentReading:  in.PresentReading,
		PreviousReading: in.PreviousReading,
	}

	users = append(users, user)
	if err := storage.WriteJSON(ctx, s.store, storage.RegistryKey, users); err != nil {
		s.setAnonymous()
		return nil, err
	}
	if err := storage.WriteJSON(ctx, s.store, storage.SessionKey, &user); err != nil {
		s.setAnonymous()
		return nil, err
	}

	s.setAuthenticated(&user)
	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

// Logout clears the session and removes the persisted current-user entry.
// The registry is untouched.
func (s *AuthService) Logout(ctx context.Context) error {
	s.setAnonymous()
	if err := s.store.Remove(ctx, storage.SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	slog.Info("User logged out")
	return nil
}

// UpdateUser merges the patch into the current user, persisting both the
// session entry and the registry. Returns ErrNoSession when anonymous.
func (s *AuthService) UpdateUser(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	current := s.CurrentUser()
	if current == nil {
		return nil, ErrNoSession
	}

	updated := *current
	patch.Apply(&updated)

	if err := storage.WriteJSON(ctx, s.store, storage.SessionKey, &updated); err != nil {
		return nil, err
	}

	users, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == updated.ID {
			users[i] = updated
			if err := storage.WriteJSON(ctx, s.store, storage.RegistryKey, users); err != nil {
				return nil, err
			}
			break
		}
	}

	s.setAuthenticated(&updated)
	slog.Info("User updated", "user_id", updated.ID)
	return &updated, nil
}

// UserByID looks a user up in the registry.
func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *AuthService) registry(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := storage.ReadJSON(ctx, s.store, storage.RegistryKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *AuthService) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Loading = loading
}

func (s *AuthService) setAuthenticated(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.User = user
	s.session.Authenticated = true
}

func (s *AuthService) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.User = nil
	s.session.Authenticated = false
}
