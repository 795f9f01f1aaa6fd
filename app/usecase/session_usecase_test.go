package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairing-service/app/domain"
)

func TestSessionUseCase_MintAndList(t *testing.T) {
	uc := newSessionStack(t)
	ctx := context.Background()
	owner := domain.Identity{ID: "identity-1", Email: "user@example.com"}

	first, err := uc.Mint(ctx, owner, "Chrome on Windows")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := uc.Mint(ctx, owner, "Safari on iPhone")
	require.NoError(t, err)

	sessions, err := uc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// Newest first
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.Equal(t, first.ID, sessions[1].ID)
}

func TestSessionUseCase_Terminate(t *testing.T) {
	uc := newSessionStack(t)
	ctx := context.Background()
	owner := domain.Identity{ID: "identity-1", Email: "user@example.com"}

	session, err := uc.Mint(ctx, owner, "")
	require.NoError(t, err)

	require.NoError(t, uc.Terminate(ctx, owner.ID, session.ID))

	sessions, err := uc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// Terminating again is still fine
	assert.NoError(t, uc.Terminate(ctx, owner.ID, session.ID))
}

func TestSessionUseCase_TerminateAllExcept(t *testing.T) {
	uc := newSessionStack(t)
	ctx := context.Background()
	owner := domain.Identity{ID: "identity-1", Email: "user@example.com"}

	var keep *domain.Session
	for i := 0; i < 5; i++ {
		session, err := uc.Mint(ctx, owner, "")
		require.NoError(t, err)
		if i == 2 {
			keep = session
		}
	}

	require.NoError(t, uc.TerminateAllExcept(ctx, owner.ID, keep.ID))

	sessions, err := uc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, keep.ID, sessions[0].ID)
}

func TestSessionUseCase_Watchdog(t *testing.T) {
	t.Run("fires exactly once on deletion", func(t *testing.T) {
		uc := newSessionStack(t)
		ctx := context.Background()
		owner := domain.Identity{ID: "identity-1", Email: "user@example.com"}
		session, err := uc.Mint(ctx, owner, "")
		require.NoError(t, err)

		var fires atomic.Int32
		fired := make(chan struct{}, 4)
		watchdog, err := uc.StartWatchdog(ctx, owner.ID, session.ID, func() {
			fires.Add(1)
			fired <- struct{}{}
		})
		require.NoError(t, err)
		defer watchdog.Stop()

		require.NoError(t, uc.Terminate(ctx, owner.ID, session.ID))

		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("watchdog did not fire")
		}

		// A second deletion produces no further callback
		require.NoError(t, uc.Terminate(ctx, owner.ID, session.ID))
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(1), fires.Load())
	})

	t.Run("never fires after stop", func(t *testing.T) {
		uc := newSessionStack(t)
		ctx := context.Background()
		owner := domain.Identity{ID: "identity-1", Email: "user@example.com"}
		session, err := uc.Mint(ctx, owner, "")
		require.NoError(t, err)

		var fires atomic.Int32
		watchdog, err := uc.StartWatchdog(ctx, owner.ID, session.ID, func() {
			fires.Add(1)
		})
		require.NoError(t, err)

		watchdog.Stop()
		require.NoError(t, uc.Terminate(ctx, owner.ID, session.ID))

		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(0), fires.Load())
	})

	t.Run("survives unrelated session activity", func(t *testing.T) {
		uc := newSessionStack(t)
		ctx := context.Background()
		owner := domain.Identity{ID: "identity-1", Email: "user@example.com"}
		watched, err := uc.Mint(ctx, owner, "")
		require.NoError(t, err)
		other, err := uc.Mint(ctx, owner, "")
		require.NoError(t, err)

		var fires atomic.Int32
		watchdog, err := uc.StartWatchdog(ctx, owner.ID, watched.ID, func() {
			fires.Add(1)
		})
		require.NoError(t, err)
		defer watchdog.Stop()

		// Deleting a sibling session must not trip the watchdog
		require.NoError(t, uc.Terminate(ctx, owner.ID, other.ID))
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(0), fires.Load())
	})
}

func TestSessionUseCase_WatchSessions(t *testing.T) {
	uc := newSessionStack(t)
	ctx := context.Background()
	owner := domain.Identity{ID: "identity-1", Email: "user@example.com"}

	lists, cancel, err := uc.WatchSessions(ctx, owner.ID)
	require.NoError(t, err)
	defer cancel()

	// Initial list is empty
	select {
	case sessions := <-lists:
		assert.Empty(t, sessions)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial list")
	}

	_, err = uc.Mint(ctx, owner, "")
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case sessions := <-lists:
			if len(sessions) == 1 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for updated list")
		}
	}
}
