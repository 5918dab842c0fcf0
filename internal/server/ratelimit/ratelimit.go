// Package ratelimit limits requests per client and route with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket that starts full and refills continuously.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64 // tokens per second
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		last:     now,
	}
}

// take refills the bucket up to now and spends one token if one is available.
// It returns the tokens left afterwards.
func (b *bucket) take(now time.Time) (bool, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.rate)
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, b.tokens
	}
	return false, b.tokens
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last.Before(cutoff)
}

// Info describes the limiter's decision for one request. Limit is zero for requests that
// are not limited.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter keeps one bucket per client and rule.
type Limiter struct {
	cfg     *Config
	matcher *matcher
	now     func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter validates the rule patterns of cfg and starts the idle-bucket janitor.
// A nil cfg means DefaultConfig.
func NewLimiter(cfg *Config) (*Limiter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	cfg = &c
	if cfg.Default.Limit == 0 && cfg.Default.Window == 0 {
		cfg.Default = Rule{Pattern: "*", Limit: DefaultLimit, Window: time.Minute}
	}
	if cfg.Default.Pattern == "" {
		cfg.Default.Pattern = "*"
	}

	m, err := newMatcher(cfg)
	if err != nil {
		return nil, err
	}

	l := &Limiter{
		cfg:     cfg,
		matcher: m,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		go l.janitor(cfg.CleanupInterval)
	}
	return l, nil
}

// Allow spends a token from client's bucket for the rule matching method and path.
func (l *Limiter) Allow(client, method, path string) Info {
	if !l.cfg.Enabled || l.cfg.Allow[client] {
		return Info{Allowed: true}
	}
	if l.cfg.Deny[client] {
		return Info{Allowed: false}
	}

	rule, ok, exempt := l.matcher.lookup(method, path)
	if exempt {
		return Info{Allowed: true}
	}
	if !ok {
		rule = l.cfg.Default
	}
	if rule.Limit <= 0 {
		return Info{Allowed: true}
	}

	now := l.now()
	b := l.bucket(client+" "+rule.Pattern, rule, now)
	allowed, tokens := b.take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(tokens),
		ResetTime: now,
	}
	if missing := b.capacity - tokens; missing > 0 {
		info.ResetTime = now.Add(secondsToDuration(missing / b.rate))
	}
	if !allowed {
		info.RetryAfter = secondsToDuration((1 - tokens) / b.rate)
	}
	return info
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (l *Limiter) bucket(key string, rule Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule.capacity(), rule.refillRate(), now)
		l.buckets[key] = b
	}
	return b
}

func (l *Limiter) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep(l.now())
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets that have not been used for IdleTTL.
func (l *Limiter) sweep(now time.Time) int {
	ttl := l.cfg.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := now.Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Stop ends the janitor. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
	})
}
