package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/types"
)

// AuthHandler handles register, login and logout. Signing in opens a fresh editing session.
type AuthHandler struct {
	auth       *session.Auth
	sessions   *session.Registry
	jwtService *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(auth *session.Auth, sessions *session.Registry, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		jwtService: jwtService,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	ok, user, err := h.auth.Register(r.Context(), req.FullName, req.Email, req.Password)
	if errors.Is(err, config.ErrPasswordTooLong) {
		http.Error(w, "validation error: Password - max", HTTPStatus(err))
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("registration failed")
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		err := &ErrEmailAlreadyExists{Email: session.NormalizeEmail(req.Email)}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.startSession(w, user, http.StatusCreated)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	ok, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("login failed")
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		err := &ErrInvalidCredentials{}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.startSession(w, user, http.StatusOK)
}

// Logout closes the caller's editing session. Its document is discarded.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	h.sessions.Close(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, user *types.User, status int) {
	sessionID, _ := h.sessions.Open(user)

	token, err := h.jwtService.GenerateToken(user.ID, sessionID)
	if err != nil {
		h.sessions.Close(sessionID)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	logger.Info().Str("user_id", user.ID.String()).Str("session_id", sessionID).Msg("session opened")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(types.LoginResponse{User: user, Token: token}); err != nil {
		logger.Warn().Err(err).Msg("failed to encode auth response")
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		// first error only
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
