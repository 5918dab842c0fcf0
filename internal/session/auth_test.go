package session

import (
	"context"
	"testing"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) *Auth {
	t.Helper()
	return NewAuth(newSQLiteStore(t), &config.PasswordConfig{BcryptCost: config.MinBcryptCost})
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t)

	ok, user, err := auth.Register(ctx, "Ada Lovelace", "Ada@Example.com", "secret1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, user)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.FullName)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("duplicate email is rejected", func(t *testing.T) {
		ok, user, err := auth.Register(ctx, "Someone Else", "ada@example.com", "another")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, user)
	})
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t)

	_, registered, err := auth.Register(ctx, "Ada Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantOK   bool
	}{
		{"correct credentials", "ada@example.com", "secret1", true},
		{"email case ignored", "ADA@example.com", "secret1", true},
		{"wrong password", "ada@example.com", "secret2", false},
		{"unknown email", "bob@example.com", "secret1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, user, err := auth.Login(ctx, tt.email, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, user)
				assert.Equal(t, registered.ID, user.ID)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}
