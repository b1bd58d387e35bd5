package core

import "time"

// Presence is the derived availability of a logged-in identity.
type Presence int

const (
	// PresenceActive means the identity acted within the away threshold.
	PresenceActive Presence = iota
	// PresenceAway means the identity has been idle for the threshold or longer.
	PresenceAway
)

func (p Presence) String() string {
	if p == PresenceAway {
		return "away"
	}
	return "active"
}

// DefaultAwayThreshold is how long an identity may idle before it is
// classified Away.
const DefaultAwayThreshold = 5 * time.Minute

// PresenceEvaluator derives Active/Away from elapsed time since last tracked
// activity. Presence is never stored: it is computed on demand at routing
// time, so no background sweep exists.
type PresenceEvaluator struct {
	activity  *ActivityTracker
	threshold time.Duration
	now       func() time.Time
}

// NewPresenceEvaluator constructs an evaluator with the given idle threshold.
// A zero threshold falls back to DefaultAwayThreshold.
func NewPresenceEvaluator(activity *ActivityTracker, threshold time.Duration, now func() time.Time) *PresenceEvaluator {
	if threshold <= 0 {
		threshold = DefaultAwayThreshold
	}
	if now == nil {
		now = time.Now
	}
	return &PresenceEvaluator{
		activity:  activity,
		threshold: threshold,
		now:       now,
	}
}

// Evaluate returns the identity's current presence. Fails with
// ErrUnknownIdentity when no session is live; presence is undefined without
// a session.
func (e *PresenceEvaluator) Evaluate(identity string) (Presence, error) {
	seen, err := e.activity.LastSeen(identity)
	if err != nil {
		return PresenceAway, err
	}
	if e.now().Sub(seen) >= e.threshold {
		return PresenceAway, nil
	}
	return PresenceActive, nil
}
