package core

import "time"

// ActivityTracker records when an identity was last seen doing something that
// counts as activity: logging in or sending. Draining a mailbox deliberately
// does not count, so a client that only polls eventually goes Away.
type ActivityTracker struct {
	registry *SessionRegistry
}

// NewActivityTracker constructs a tracker over the given registry.
func NewActivityTracker(registry *SessionRegistry) *ActivityTracker {
	return &ActivityTracker{registry: registry}
}

// Touch marks identity as active now. Fails with ErrUnknownIdentity if there
// is no live session.
func (t *ActivityTracker) Touch(identity string) error {
	return t.registry.touch(identity)
}

// LastSeen returns the identity's last-activity timestamp.
func (t *ActivityTracker) LastSeen(identity string) (time.Time, error) {
	return t.registry.lastSeen(identity)
}
