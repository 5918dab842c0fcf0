package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterRequest is the body of a registration call.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the signed-in user as seen by an editing session. It never carries a password hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse is returned by register and login with the session token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdateEntryRequest sets one field of one entry. Value is a string for text fields
// and a bool (or "true"/"false") for the current flag.
type UpdateEntryRequest struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

// Validate validates the RegisterRequest using the validator. The max length counts runes;
// the byte limit bcrypt imposes is enforced when hashing.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateEntryRequest using the validator.
func (r *UpdateEntryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
