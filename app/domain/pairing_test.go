package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from PairingStatus
		to   PairingStatus
		want bool
	}{
		{name: "pending to authorized", from: PairingStatusPending, to: PairingStatusAuthorized, want: true},
		{name: "pending to consumed", from: PairingStatusPending, to: PairingStatusConsumed, want: true},
		{name: "authorized to consumed", from: PairingStatusAuthorized, to: PairingStatusConsumed, want: true},
		{name: "authorized to pending regresses", from: PairingStatusAuthorized, to: PairingStatusPending, want: false},
		{name: "consumed to authorized regresses", from: PairingStatusConsumed, to: PairingStatusAuthorized, want: false},
		{name: "same status is not a transition", from: PairingStatusPending, to: PairingStatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewPairingRequest(t *testing.T) {
	req := NewPairingRequest()

	assert.NotEmpty(t, req.Token)
	assert.Equal(t, PairingStatusPending, req.Status)
	assert.False(t, req.CreatedAt.IsZero())
	assert.Nil(t, req.AuthorizedIdentity)
	assert.Empty(t, req.SessionID)

	// Tokens must not collide across requests
	other := NewPairingRequest()
	assert.NotEqual(t, req.Token, other.Token)
}

func TestPairingRequest_Authorize(t *testing.T) {
	identity := Identity{ID: "identity-1", Email: "user@example.com"}

	t.Run("pending request is authorized", func(t *testing.T) {
		req := NewPairingRequest()

		err := req.Authorize(identity)

		require.NoError(t, err)
		assert.Equal(t, PairingStatusAuthorized, req.Status)
		require.NotNil(t, req.AuthorizedIdentity)
		assert.Equal(t, identity, *req.AuthorizedIdentity)
	})

	t.Run("second authorize fails with already consumed", func(t *testing.T) {
		req := NewPairingRequest()
		require.NoError(t, req.Authorize(identity))

		err := req.Authorize(Identity{ID: "identity-2", Email: "other@example.com"})

		assert.ErrorIs(t, err, ErrAlreadyConsumed)
		// The first authorization is untouched
		assert.Equal(t, "identity-1", req.AuthorizedIdentity.ID)
	})

	t.Run("consumed request cannot be authorized", func(t *testing.T) {
		req := NewPairingRequest()
		require.NoError(t, req.Authorize(identity))
		require.NoError(t, req.AttachSession("session-1"))

		err := req.Authorize(identity)

		assert.ErrorIs(t, err, ErrAlreadyConsumed)
	})

	t.Run("zero identity is rejected", func(t *testing.T) {
		req := NewPairingRequest()

		err := req.Authorize(Identity{})

		assert.Error(t, err)
		assert.Equal(t, PairingStatusPending, req.Status)
	})
}

func TestPairingRequest_AttachSession(t *testing.T) {
	identity := Identity{ID: "identity-1", Email: "user@example.com"}

	t.Run("attaches once and consumes the request", func(t *testing.T) {
		req := NewPairingRequest()
		require.NoError(t, req.Authorize(identity))

		err := req.AttachSession("session-1")

		require.NoError(t, err)
		assert.Equal(t, "session-1", req.SessionID)
		assert.Equal(t, PairingStatusConsumed, req.Status)
	})

	t.Run("same session id is a no-op", func(t *testing.T) {
		req := NewPairingRequest()
		require.NoError(t, req.Authorize(identity))
		require.NoError(t, req.AttachSession("session-1"))

		err := req.AttachSession("session-1")

		assert.NoError(t, err)
		assert.Equal(t, "session-1", req.SessionID)
	})

	t.Run("different session id is rejected", func(t *testing.T) {
		req := NewPairingRequest()
		require.NoError(t, req.Authorize(identity))
		require.NoError(t, req.AttachSession("session-1"))

		err := req.AttachSession("session-2")

		assert.ErrorIs(t, err, ErrAlreadyConsumed)
		assert.Equal(t, "session-1", req.SessionID)
	})

	t.Run("pending request cannot carry a session", func(t *testing.T) {
		req := NewPairingRequest()

		err := req.AttachSession("session-1")

		assert.Error(t, err)
		assert.Empty(t, req.SessionID)
	})
}

func TestPairingURL(t *testing.T) {
	assert.Equal(t,
		"https://pair.example.com/auth/token/abc123",
		PairingURL("https://pair.example.com", "abc123"))
	assert.Equal(t,
		"https://pair.example.com/auth/token/abc123",
		PairingURL("https://pair.example.com/", "abc123"))
}

func TestTokenFromPairingURL(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{name: "full url", payload: "https://pair.example.com/auth/token/abc123", want: "abc123"},
		{name: "url with trailing slash", payload: "https://pair.example.com/auth/token/abc123/", want: "abc123"},
		{name: "bare token", payload: "abc123", want: "abc123"},
		{name: "surrounding whitespace", payload: "  abc123\n", want: "abc123"},
		{name: "empty payload", payload: "", wantErr: true},
		{name: "url without path", payload: "https://pair.example.com/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromPairingURL(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
