package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newPresenceFixture(t *testing.T, threshold time.Duration) (*fakeClock, *SessionRegistry, *PresenceEvaluator) {
	t.Helper()
	clock := newFakeClock(time.Unix(0, 0))
	reg := NewSessionRegistry(clock.Now)
	tracker := NewActivityTracker(reg)
	eval := NewPresenceEvaluator(tracker, threshold, clock.Now)
	return clock, reg, eval
}

func TestPresenceActiveBelowThreshold(t *testing.T) {
	req := require.New(t)
	clock, reg, eval := newPresenceFixture(t, 5*time.Minute)

	_, err := reg.Register("bob")
	req.NoError(err)

	clock.Advance(5*time.Minute - time.Second)
	state, err := eval.Evaluate("bob")
	req.NoError(err)
	req.Equal(PresenceActive, state)
}

func TestPresenceAwayAtThreshold(t *testing.T) {
	req := require.New(t)
	clock, reg, eval := newPresenceFixture(t, 5*time.Minute)

	_, err := reg.Register("bob")
	req.NoError(err)

	// The boundary itself counts as Away.
	clock.Advance(5 * time.Minute)
	state, err := eval.Evaluate("bob")
	req.NoError(err)
	req.Equal(PresenceAway, state)
}

func TestPresenceBackToActiveAfterTouch(t *testing.T) {
	req := require.New(t)
	clock, reg, eval := newPresenceFixture(t, time.Minute)
	tracker := NewActivityTracker(reg)

	_, err := reg.Register("bob")
	req.NoError(err)

	clock.Advance(2 * time.Minute)
	state, err := eval.Evaluate("bob")
	req.NoError(err)
	req.Equal(PresenceAway, state)

	req.NoError(tracker.Touch("bob"))
	state, err = eval.Evaluate("bob")
	req.NoError(err)
	req.Equal(PresenceActive, state)
}

func TestPresenceUndefinedWithoutSession(t *testing.T) {
	req := require.New(t)
	_, _, eval := newPresenceFixture(t, time.Minute)

	_, err := eval.Evaluate("ghost")
	req.ErrorIs(err, ErrUnknownIdentity)
}

func TestPresenceZeroThresholdFallsBackToDefault(t *testing.T) {
	req := require.New(t)
	clock, reg, eval := newPresenceFixture(t, 0)

	_, err := reg.Register("bob")
	req.NoError(err)

	clock.Advance(DefaultAwayThreshold - time.Second)
	state, err := eval.Evaluate("bob")
	req.NoError(err)
	req.Equal(PresenceActive, state)
}
