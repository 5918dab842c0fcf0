// Package session provides user accounts and per-login editing sessions.
//
// Accounts live in a Store (a local SQLite file or PostgreSQL). Documents never do: each
// Session holds its Document in memory and forgets it on logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned by Store.CreateUser when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// StoredUser is an account row including its password hash.
type StoredUser struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Store persists accounts.
type Store interface {
	// CreateUser inserts u. It returns ErrEmailTaken for a duplicate email.
	CreateUser(ctx context.Context, u *StoredUser) error
	// GetUserByEmail returns nil, nil when no account has that email.
	GetUserByEmail(ctx context.Context, email string) (*StoredUser, error)
	Close() error
}

// OpenStore opens the Store named by dsn: "sqlite://<path>" or "postgres://..." / "postgresql://...".
func OpenStore(ctx context.Context, dsn string) (Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return OpenSQLite(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return ConnectPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported user store %q: want sqlite:// or postgres://", dsn)
	}
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
