package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Session is the live record for a logged-in identity. It is owned by the
// SessionRegistry; lastActivity is advanced by the ActivityTracker.
type Session struct {
	ID           string
	Identity     string
	LoginAt      time.Time
	lastActivity time.Time
}

// SessionRegistry tracks the set of currently logged-in identities. At most
// one live session exists per identity; registration and removal of the same
// name are mutually exclusive under the registry lock.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry(now func() time.Time) *SessionRegistry {
	if now == nil {
		now = time.Now
	}
	return &SessionRegistry{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

// Register creates a session for identity. Fails with ErrDuplicateIdentity if
// a session for that name is already live.
func (r *SessionRegistry) Register(identity string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[identity]; exists {
		return nil, ErrDuplicateIdentity
	}

	ts := r.now()
	s := &Session{
		ID:           uuid.NewString(),
		Identity:     identity,
		LoginAt:      ts,
		lastActivity: ts,
	}
	r.sessions[identity] = s
	return s, nil
}

// Unregister removes the identity's session along with its activity state.
// Fails with ErrUnknownIdentity if no session is live.
func (r *SessionRegistry) Unregister(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[identity]; !exists {
		return ErrUnknownIdentity
	}
	delete(r.sessions, identity)
	return nil
}

// IsActive reports whether identity has a live session.
func (r *SessionRegistry) IsActive(identity string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.sessions[identity]
	return exists
}

// ListActive returns a snapshot of all logged-in identities.
func (r *SessionRegistry) ListActive() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Keys(r.sessions)
}

// touch and lastSeen live on the registry because it owns the session lock;
// ActivityTracker is the public face for them.

func (r *SessionRegistry) touch(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[identity]
	if !exists {
		return ErrUnknownIdentity
	}
	s.lastActivity = r.now()
	return nil
}

func (r *SessionRegistry) lastSeen(identity string) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[identity]
	if !exists {
		return time.Time{}, ErrUnknownIdentity
	}
	return s.lastActivity, nil
}
