package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/powerbill/internal/auth"
	"github.com/mmynk/powerbill/internal/middleware"
	"github.com/mmynk/powerbill/internal/models"
	"github.com/mmynk/powerbill/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth   *service.AuthService
	Tokens *auth.JWTManager
}

func NewAuthHandler(authSvc *service.AuthService, tokens *auth.JWTManager) *AuthHandler {
	return &AuthHandler{Auth: authSvc, Tokens: tokens}
}

// ----- DTOs -----

type registerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConsumerNumber  string `json:"consumerNumber"`
	Address         string `json:"address"`
	MobileNumber    string `json:"mobileNumber"`
	PresentReading  *int   `json:"presentReading"`
	PreviousReading *int   `json:"previousReading"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account and returns a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}

	user, err := h.Auth.Register(c.Request().Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		ConsumerNumber:  req.ConsumerNumber,
		Address:         req.Address,
		MobileNumber:    req.MobileNumber,
		PresentReading:  req.PresentReading,
		PreviousReading: req.PreviousReading,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	token, err := h.Tokens.Generate(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusCreated, authResp{User: user, Token: token})
}

// Login establishes a session. Any non-empty password passes.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	user, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	token, err := h.Tokens.Generate(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, authResp{User: user, Token: token})
}

// Logout clears the active session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Auth.Logout(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the token user's registry entry.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.Auth.UserByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, user)
}

// Update merges a partial update into the current user. The session manager
// holds one active session; a token for any other user is rejected.
func (h *AuthHandler) Update(c echo.Context) error {
	var patch models.UserPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	current := h.Auth.CurrentUser()
	if current == nil || current.ID != middleware.UserID(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}

	user, err := h.Auth.UpdateUser(c.Request().Context(), patch)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, user)
}
