package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// JWTConfig holds the signing secret and lifetime of session tokens.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	// Ephemeral is set when the secret was generated for this process only.
	Ephemeral bool
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	return newJWTConfig(secret, false)
}

// NewJWTConfigOrEphemeral is NewJWTConfig, except that an unset JWT_SECRET yields a random
// per-process secret. Tokens then stop validating when the process exits, which matches
// sessions that only live in memory.
func NewJWTConfigOrEphemeral() (*JWTConfig, error) {
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		return newJWTConfig(secret, false)
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return newJWTConfig(hex.EncodeToString(buf), true)
}

func newJWTConfig(secret string, ephemeral bool) (*JWTConfig, error) {
	hours, err := getEnvAsInt64("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", hours)
	}
	return &JWTConfig{
		Secret:     secret,
		Expiration: time.Duration(hours) * time.Hour,
		Ephemeral:  ephemeral,
	}, nil
}
