package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndUnregister(t *testing.T) {
	req := require.New(t)
	reg := NewSessionRegistry(nil)

	s, err := reg.Register("alice")
	req.NoError(err)
	req.Equal("alice", s.Identity)
	req.NotEmpty(s.ID)
	req.True(reg.IsActive("alice"))

	_, err = reg.Register("alice")
	req.ErrorIs(err, ErrDuplicateIdentity)

	req.NoError(reg.Unregister("alice"))
	req.False(reg.IsActive("alice"))
	req.ErrorIs(reg.Unregister("alice"), ErrUnknownIdentity)
}

func TestRegistryIdentitiesAreCaseSensitive(t *testing.T) {
	req := require.New(t)
	reg := NewSessionRegistry(nil)

	_, err := reg.Register("Alice")
	req.NoError(err)
	_, err = reg.Register("alice")
	req.NoError(err)

	req.ElementsMatch([]string{"Alice", "alice"}, reg.ListActive())
}

func TestRegistryConcurrentRegistrationSingleWinner(t *testing.T) {
	req := require.New(t)
	reg := NewSessionRegistry(nil)

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reg.Register("bob")
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			req.ErrorIs(err, ErrDuplicateIdentity)
		}
	}
	req.Equal(1, won)
}

func TestActivityTrackerTouchAdvancesLastSeen(t *testing.T) {
	req := require.New(t)
	clock := newFakeClock(time.Unix(1000, 0))
	reg := NewSessionRegistry(clock.Now)
	tracker := NewActivityTracker(reg)

	_, err := reg.Register("alice")
	req.NoError(err)

	seen, err := tracker.LastSeen("alice")
	req.NoError(err)
	req.Equal(time.Unix(1000, 0), seen)

	clock.Advance(42 * time.Second)
	req.NoError(tracker.Touch("alice"))

	seen, err = tracker.LastSeen("alice")
	req.NoError(err)
	req.Equal(time.Unix(1042, 0), seen)

	req.ErrorIs(tracker.Touch("nobody"), ErrUnknownIdentity)
	_, err = tracker.LastSeen("nobody")
	req.ErrorIs(err, ErrUnknownIdentity)
}
