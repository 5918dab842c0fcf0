package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/jonathan/cv-builder/internal/types"
)

// Janitor interval bounds for idle-session eviction.
const (
	minSweepInterval = time.Second
	maxSweepInterval = 5 * time.Minute
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Registry maps session ids to live Sessions. Nothing in it outlives the process.
// Sessions unused for longer than the idle TTL are logged out and dropped.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	idleTTL  time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry returns an empty Registry. With a positive idleTTL a janitor goroutine evicts
// sessions idle for longer than idleTTL until Stop is called; zero keeps sessions until Close.
func NewRegistry(idleTTL time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
	if idleTTL > 0 {
		r.stop = make(chan struct{})
		go r.janitor(min(max(idleTTL/4, minSweepInterval), maxSweepInterval))
	}
	return r
}

// Open starts a Session for user and returns its id.
func (r *Registry) Open(user *types.User) (string, *Session) {
	id := uuid.NewString()
	s := New(user)

	r.mu.Lock()
	r.sessions[id] = &entry{session: s, lastSeen: r.now()}
	r.mu.Unlock()
	return id, s
}

// Get returns the Session with id and marks it as used. An expired session is evicted
// and reported as absent.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return nil, false
	}
	now := r.now()
	if r.expired(e, now) {
		delete(r.sessions, id)
		r.mu.Unlock()
		e.session.Logout()
		return nil, false
	}
	e.lastSeen = now
	r.mu.Unlock()
	return e.session, true
}

// Close logs the Session out and drops it. Closing an unknown id is a no-op.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		e.session.Logout()
	}
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Stop ends the janitor. It is safe to call more than once.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		if r.stop != nil {
			close(r.stop)
		}
	})
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.idleTTL > 0 && now.Sub(e.lastSeen) > r.idleTTL
}

func (r *Registry) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := r.sweep(r.now()); n > 0 {
				logger.Debug().Int("evicted", n).Int("open", r.Len()).Msg("evicted idle sessions")
			}
		case <-r.stop:
			return
		}
	}
}

// sweep logs out and drops every session idle for longer than the idle TTL.
func (r *Registry) sweep(now time.Time) int {
	r.mu.Lock()
	var evicted []*Session
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			evicted = append(evicted, e.session)
		}
	}
	r.mu.Unlock()

	for _, s := range evicted {
		s.Logout()
	}
	return len(evicted)
}
