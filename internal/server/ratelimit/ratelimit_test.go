package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg *Config) *Limiter {
	t.Helper()
	l, err := NewLimiter(cfg)
	require.NoError(t, err)
	t.Cleanup(l.Stop)
	return l
}

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBucket_Take(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	b := newBucket(3, 1.0, start)

	for i := 0; i < 3; i++ {
		ok, _ := b.take(start)
		assert.True(t, ok, "request %d should use the burst", i+1)
	}
	ok, tokens := b.take(start)
	assert.False(t, ok)
	assert.Zero(t, tokens)

	ok, _ = b.take(start.Add(1100 * time.Millisecond))
	assert.True(t, ok, "one token should have refilled")

	ok, _ = b.take(start.Add(1200 * time.Millisecond))
	assert.False(t, ok)
}

func TestBucket_NeverExceedsCapacity(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	b := newBucket(2, 10, start)

	_, tokens := b.take(start.Add(time.Hour))
	assert.Equal(t, 1.0, tokens)
}

func TestLimiter_Allow(t *testing.T) {
	l := newTestLimiter(t, &Config{Enabled: true, Default: Rule{Limit: 10, Window: time.Minute}})
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l.now = clock.now

	for i := 0; i < 10; i++ {
		info := l.Allow("127.0.0.1", "GET", "/document")
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	info := l.Allow("127.0.0.1", "GET", "/document")
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 6*time.Second, info.RetryAfter)
	assert.Equal(t, clock.t.Add(time.Minute), info.ResetTime)

	clock.advance(7 * time.Second)
	assert.True(t, l.Allow("127.0.0.1", "GET", "/document").Allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := newTestLimiter(t, &Config{Enabled: true, Default: Rule{Limit: 1, Window: time.Minute}})

	assert.True(t, l.Allow("10.0.0.1", "GET", "/document").Allowed)
	assert.False(t, l.Allow("10.0.0.1", "GET", "/document").Allowed)
	assert.True(t, l.Allow("10.0.0.2", "GET", "/document").Allowed)
}

func TestLimiter_AllowAndDenyLists(t *testing.T) {
	l := newTestLimiter(t, &Config{
		Enabled: true,
		Default: Rule{Limit: 1, Window: time.Minute},
		Allow:   map[string]bool{"127.0.0.1": true},
		Deny:    map[string]bool{"192.168.1.1": true},
	})

	for i := 0; i < 20; i++ {
		info := l.Allow("127.0.0.1", "GET", "/document")
		assert.True(t, info.Allowed)
		assert.Zero(t, info.Limit)
	}
	assert.False(t, l.Allow("192.168.1.1", "GET", "/health").Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 20; i++ {
		info := l.Allow("127.0.0.1", "POST", "/document/export")
		assert.True(t, info.Allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_DefaultConfig(t *testing.T) {
	l := newTestLimiter(t, nil)
	client := "10.0.0.1"

	t.Run("export allows a burst of two", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			info := l.Allow(client, "POST", "/document/export")
			require.True(t, info.Allowed)
			assert.Equal(t, 10, info.Limit)
		}
		assert.False(t, l.Allow(client, "POST", "/document/export").Allowed)
	})

	t.Run("auth routes share one bucket", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.True(t, l.Allow(client, "POST", "/auth/login").Allowed)
		}
		info := l.Allow(client, "POST", "/auth/register")
		assert.False(t, info.Allowed)
		assert.Equal(t, 20, info.Limit)
	})

	t.Run("editing uses the default", func(t *testing.T) {
		info := l.Allow(client, "PATCH", "/document/sections/skills/entries/abc")
		assert.True(t, info.Allowed)
		assert.Equal(t, DefaultLimit, info.Limit)
	})

	t.Run("health and preflight are exempt", func(t *testing.T) {
		for _, req := range []struct{ method, path string }{
			{"GET", "/health"},
			{"OPTIONS", "/document/export"},
		} {
			info := l.Allow(client, req.method, req.path)
			assert.True(t, info.Allowed)
			assert.Zero(t, info.Limit)
		}
	})
}

func TestLimiter_Concurrent(t *testing.T) {
	l := newTestLimiter(t, &Config{Enabled: true, Default: Rule{Limit: 100, Window: time.Hour}})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("127.0.0.1", "GET", "/document").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func TestLimiter_Sweep(t *testing.T) {
	l := newTestLimiter(t, &Config{Enabled: true, Default: Rule{Limit: 10, Window: time.Minute}, IdleTTL: time.Hour})
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l.now = clock.now

	l.Allow("127.0.0.1", "GET", "/document")
	clock.advance(2 * time.Hour)
	for i := 2; i <= 4; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i), "GET", "/document")
	}

	assert.Equal(t, 1, l.sweep(clock.t))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 3)
	assert.NotContains(t, l.buckets, "127.0.0.1 *")
}

func TestLimiter_StopTwice(t *testing.T) {
	l, err := NewLimiter(DefaultConfig())
	require.NoError(t, err)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestNewLimiter_InvalidPattern(t *testing.T) {
	_, err := NewLimiter(&Config{Enabled: true, Rules: []Rule{{Pattern: "/no-method", Limit: 1}}})
	assert.Error(t, err)

	_, err = NewLimiter(&Config{Enabled: true, Exempt: []string{"GET /a/{broken"}})
	assert.Error(t, err)
}

func TestNewLimiter_DoesNotModifyConfig(t *testing.T) {
	cfg := &Config{Enabled: true}
	newTestLimiter(t, cfg)
	assert.Zero(t, cfg.Default.Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_EXPORT_LIMIT", "3")
	t.Setenv("RATE_LIMIT_ALLOWLIST", "10.0.0.1, 10.0.0.2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.Default.Limit)
	assert.Equal(t, 3, cfg.Rules[0].Limit)
	assert.True(t, cfg.Allow["10.0.0.2"])
	assert.Empty(t, cfg.Deny)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Malformed(t *testing.T) {
	tests := []struct{ key, value string }{
		{"RATE_LIMIT_ENABLED", "sometimes"},
		{"RATE_LIMIT_DEFAULT_LIMIT", "lots"},
		{"RATE_LIMIT_DEFAULT_WINDOW", "a while"},
		{"RATE_LIMIT_EXPORT_LIMIT", "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestRouteMatch(t *testing.T) {
	tests := []struct {
		pattern string
		method  string
		path    string
		want    bool
	}{
		{"POST /document/export", "POST", "/document/export", true},
		{"POST /document/export", "GET", "/document/export", false},
		{"POST /document/export", "POST", "/document/export/x", false},
		{"POST /auth/", "POST", "/auth/login", true},
		{"POST /auth/", "POST", "/auth/a/b", true},
		{"POST /auth/", "POST", "/authx", false},
		{"PATCH /document/sections/{section}/entries/{id}", "PATCH", "/document/sections/skills/entries/42", true},
		{"PATCH /document/sections/{section}/entries/{id}", "PATCH", "/document/sections/skills/entries", false},
		{"OPTIONS /", "OPTIONS", "/anything/at/all", true},
		{"get /health", "GET", "/health", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			r, err := parsePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.match(tt.method, splitPath(tt.path)))
		})
	}
}

func TestMatcher_FirstRuleWins(t *testing.T) {
	m, err := newMatcher(&Config{Rules: []Rule{
		{Pattern: "POST /document/export", Limit: 1},
		{Pattern: "POST /document/", Limit: 2},
	}})
	require.NoError(t, err)

	rule, ok, exempt := m.lookup("POST", "/document/export")
	require.True(t, ok)
	assert.False(t, exempt)
	assert.Equal(t, 1, rule.Limit)

	rule, ok, _ = m.lookup("POST", "/document/sections/skills/entries")
	require.True(t, ok)
	assert.Equal(t, 2, rule.Limit)

	_, ok, _ = m.lookup("GET", "/document")
	assert.False(t, ok)
}
