package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/types"
)

// Auth registers and signs in users against a Store.
type Auth struct {
	store    Store
	password *config.PasswordConfig
	now      func() time.Time
}

// NewAuth returns an Auth over store hashing with password.
func NewAuth(store Store, password *config.PasswordConfig) *Auth {
	return &Auth{store: store, password: password, now: time.Now}
}

// toUser strips the password hash.
func toUser(u *StoredUser) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// Register creates an account. It returns false with no error when the email is already taken.
func (a *Auth) Register(ctx context.Context, fullName, email, password string) (bool, *types.User, error) {
	email = NormalizeEmail(email)

	existing, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		return false, nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return false, nil, nil
	}

	hash, err := a.password.HashPassword(password)
	if err != nil {
		return false, nil, err
	}

	u := &StoredUser{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
	}
	if err := a.store.CreateUser(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, ErrEmailTaken) {
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, toUser(u), nil
}

// Login checks credentials. Unknown email and wrong password both return false with no error.
func (a *Auth) Login(ctx context.Context, email, password string) (bool, *types.User, error) {
	u, err := a.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return false, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil || !a.password.VerifyPassword(password, u.PasswordHash) {
		return false, nil, nil
	}
	return true, toUser(u), nil
}
