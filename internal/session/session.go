package session

import (
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
)

// Session is one user's editing context: who is signed in and the Document being edited.
// A new Session has no user and an empty Document.
type Session struct {
	mu   sync.Mutex
	user *types.User
	doc  types.Document
}

// New returns a Session for user, which may be nil.
func New(user *types.User) *Session {
	return &Session{user: user, doc: types.NewDocument()}
}

// User returns the signed-in user, or nil.
func (s *Session) User() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Document returns the current Document. Edits made through Apply never change a
// Document already returned.
func (s *Session) Document() types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Apply replaces the Document with edit(current) and returns the result. Calls are
// applied one at a time in the order they acquire the session.
func (s *Session) Apply(edit func(types.Document) types.Document) types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = edit(s.doc)
	return s.doc
}

// Logout forgets the user and resets the Document.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.doc = types.NewDocument()
}
