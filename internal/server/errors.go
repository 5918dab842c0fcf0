package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/export"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrSessionNotFound indicates the token's editing session has been closed or never existed
// in this process.
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailErr   *ErrEmailAlreadyExists
		credErr    *ErrInvalidCredentials
		sessionErr *ErrSessionNotFound
		validErr   *ErrValidation
		exportErr  *export.ExportError
	)
	switch {
	case errors.As(err, &emailErr):
		return http.StatusConflict
	case errors.As(err, &credErr), errors.As(err, &sessionErr):
		return http.StatusUnauthorized
	case errors.As(err, &validErr), errors.Is(err, document.ErrUnknownField), errors.Is(err, document.ErrInvalidValue),
		errors.Is(err, config.ErrPasswordTooLong), errors.Is(err, export.ErrInvalidFilename):
		return http.StatusBadRequest
	case errors.Is(err, document.ErrUnknownSection):
		return http.StatusNotFound
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
