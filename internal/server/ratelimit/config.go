package ratelimit

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultLimit is the per-minute request allowance for routes without their own rule.
const DefaultLimit = 600

// Rule limits the requests one client may make to the routes matching Pattern.
type Rule struct {
	// Pattern is "METHOD /path". A {name} segment matches any single path segment and a
	// trailing "/" matches everything below it.
	Pattern string
	Limit   int
	Window  time.Duration
	// Burst is the bucket capacity; zero means Limit.
	Burst int
}

func (r Rule) capacity() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

func (r Rule) refillRate() float64 {
	window := r.Window
	if window <= 0 {
		window = time.Minute
	}
	return float64(r.Limit) / window.Seconds()
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Default applies to routes no rule matches; its Pattern is ignored.
	Default Rule
	Rules   []Rule
	// Exempt lists patterns that are never limited.
	Exempt []string
	// Allow and Deny are client ids (IP addresses) that skip the limiter or are always refused.
	Allow map[string]bool
	Deny  map[string]bool
	// Buckets untouched for IdleTTL are dropped every CleanupInterval.
	IdleTTL         time.Duration
	CleanupInterval time.Duration
}

// DefaultRules returns the per-route limits used unless configured otherwise.
func DefaultRules() []Rule {
	return []Rule{
		// export drives a headless browser
		{Pattern: "POST /document/export", Limit: 10, Window: time.Minute, Burst: 2},
		{Pattern: "PUT /document/photo", Limit: 30, Window: time.Minute, Burst: 5},
		{Pattern: "POST /auth/", Limit: 20, Window: time.Minute, Burst: 5},
	}
}

// DefaultConfig returns an enabled configuration with DefaultRules.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Default:         Rule{Pattern: "*", Limit: DefaultLimit, Window: time.Minute},
		Rules:           DefaultRules(),
		Exempt:          []string{"GET /health", "OPTIONS /"},
		Allow:           map[string]bool{},
		Deny:            map[string]bool{},
		IdleTTL:         time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

// LoadConfig starts from DefaultConfig and applies the RATE_LIMIT_* environment variables.
// A malformed value is an error.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	enabled, err := envBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	if err != nil {
		return nil, err
	}
	cfg.Enabled = enabled

	if cfg.Default.Limit, err = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.Default.Limit); err != nil {
		return nil, err
	}
	if cfg.Default.Window, err = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.Default.Window); err != nil {
		return nil, err
	}
	exportLimit, err := envInt("RATE_LIMIT_EXPORT_LIMIT", cfg.Rules[0].Limit)
	if err != nil {
		return nil, err
	}
	cfg.Rules[0].Limit = exportLimit
	if cfg.CleanupInterval, err = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval); err != nil {
		return nil, err
	}

	cfg.Allow = parseIPList(os.Getenv("RATE_LIMIT_ALLOWLIST"))
	cfg.Deny = parseIPList(os.Getenv("RATE_LIMIT_DENYLIST"))
	return cfg, nil
}

func envInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func envBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func envDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

// parseIPList turns "a, b,c" into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
