package config

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds accepted from BCRYPT_COST. Low costs are allowed so local and test
// setups stay fast.
const (
	MinBcryptCost     = bcrypt.MinCost
	MaxBcryptCost     = 14
	DefaultBcryptCost = bcrypt.DefaultCost
)

// MaxPasswordBytes is the longest input bcrypt accepts, pepper included.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned when a password plus the pepper exceeds MaxPasswordBytes.
var ErrPasswordTooLong = errors.New("password too long")

// PasswordConfig hashes and checks account passwords for the local user store.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional secret appended before hashing
}

// NewPasswordConfig reads BCRYPT_COST (default bcrypt.DefaultCost) and PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost, err := getEnvAsInt64("BCRYPT_COST", int64(DefaultBcryptCost))
	if err != nil {
		return nil, err
	}

	cfg := &PasswordConfig{
		BcryptCost: int(cost),
		Pepper:     getEnv("PASSWORD_PEPPER", ""),
	}
	if cfg.BcryptCost < MinBcryptCost || cfg.BcryptCost > MaxBcryptCost {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", cfg.BcryptCost, MinBcryptCost, MaxBcryptCost)
	}
	return cfg, nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// MaxPasswordLen is the longest password, in bytes, that HashPassword accepts with this pepper.
func (c *PasswordConfig) MaxPasswordLen() int {
	return MaxPasswordBytes - len(c.Pepper)
}

// HashPassword returns the bcrypt hash of pw, or ErrPasswordTooLong.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	if len(pw) > c.MaxPasswordLen() {
		return "", fmt.Errorf("%w: %d bytes, at most %d allowed", ErrPasswordTooLong, len(pw), c.MaxPasswordLen())
	}
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}
