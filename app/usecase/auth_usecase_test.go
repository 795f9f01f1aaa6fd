package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pairing-service/app/domain"
	mock_port "pairing-service/app/mocks"
	"pairing-service/app/port"
)

type authMocks struct {
	identities *mock_port.MockIdentityProvider
	sessions   *mock_port.MockSessionUsecase
	audit      *mock_port.MockAuditRecorder
}

func newAuthUseCaseWithMocks(t *testing.T) (*AuthUseCase, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mocks := authMocks{
		identities: mock_port.NewMockIdentityProvider(ctrl),
		sessions:   mock_port.NewMockSessionUsecase(ctrl),
		audit:      mock_port.NewMockAuditRecorder(ctrl),
	}
	uc := NewAuthUseCase(mocks.identities, mocks.sessions, mocks.audit, discardLogger())
	return uc, mocks
}

func TestAuthUseCase_Login(t *testing.T) {
	identity := domain.Identity{ID: "identity-1", Email: "user@example.com"}
	session := &domain.Session{ID: "session-1", Owner: identity, CreatedAt: time.Now().UTC()}

	t.Run("successful login mints session and arms watchdog", func(t *testing.T) {
		uc, mocks := newAuthUseCaseWithMocks(t)
		ctx := context.Background()

		mocks.identities.EXPECT().
			Authenticate(gomock.Any(), "user@example.com", "secret").
			Return(&identity, nil)
		mocks.sessions.EXPECT().
			Mint(gomock.Any(), identity, "Chrome on Windows").
			Return(session, nil)
		mocks.sessions.EXPECT().
			StartWatchdog(gomock.Any(), identity.ID, session.ID, gomock.Any()).
			Return(&port.Watchdog{Stop: func() {}}, nil)
		mocks.audit.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			Return(nil)

		gotIdentity, gotSession, err := uc.Login(ctx, "user@example.com", "secret", "Chrome on Windows")

		require.NoError(t, err)
		assert.Equal(t, identity, *gotIdentity)
		assert.Equal(t, session.ID, gotSession.ID)

		current, currentSession := uc.Current()
		assert.Equal(t, identity, current)
		require.NotNil(t, currentSession)
		assert.Equal(t, session.ID, currentSession.ID)
	})

	t.Run("rejected credentials surface the auth error", func(t *testing.T) {
		uc, mocks := newAuthUseCaseWithMocks(t)
		authErr := domain.NewAuthError(domain.ErrCodeInvalidCredentials, "Invalid email or password", nil)

		mocks.identities.EXPECT().
			Authenticate(gomock.Any(), "user@example.com", "wrong").
			Return(nil, authErr)

		_, _, err := uc.Login(context.Background(), "user@example.com", "wrong", "")

		require.Error(t, err)
		gotErr, ok := domain.AsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrCodeInvalidCredentials, gotErr.Code)

		current, _ := uc.Current()
		assert.True(t, current.IsZero())
	})

	t.Run("mint failure rolls the provider session back", func(t *testing.T) {
		uc, mocks := newAuthUseCaseWithMocks(t)

		mocks.identities.EXPECT().
			Authenticate(gomock.Any(), "user@example.com", "secret").
			Return(&identity, nil)
		mocks.sessions.EXPECT().
			Mint(gomock.Any(), identity, "").
			Return(nil, errors.New("store down"))
		mocks.identities.EXPECT().
			SignOut(gomock.Any()).
			Return(nil)

		_, _, err := uc.Login(context.Background(), "user@example.com", "secret", "")

		assert.Error(t, err)
		current, _ := uc.Current()
		assert.True(t, current.IsZero())
	})
}

func TestAuthUseCase_Register(t *testing.T) {
	identity := domain.Identity{ID: "identity-9", Email: "new@example.com"}
	session := &domain.Session{ID: "session-9", Owner: identity, CreatedAt: time.Now().UTC()}

	uc, mocks := newAuthUseCaseWithMocks(t)

	mocks.identities.EXPECT().
		CreateAccount(gomock.Any(), "new@example.com", "secret").
		Return(&identity, nil)
	mocks.sessions.EXPECT().
		Mint(gomock.Any(), identity, "Firefox on Linux").
		Return(session, nil)
	mocks.sessions.EXPECT().
		StartWatchdog(gomock.Any(), identity.ID, session.ID, gomock.Any()).
		Return(&port.Watchdog{Stop: func() {}}, nil)
	mocks.audit.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		Return(nil)

	gotIdentity, gotSession, err := uc.Register(context.Background(), "new@example.com", "secret", "Firefox on Linux")

	require.NoError(t, err)
	assert.Equal(t, identity.ID, gotIdentity.ID)
	assert.Equal(t, session.ID, gotSession.ID)
}

func TestAuthUseCase_LoginWithPairing(t *testing.T) {
	identity := domain.Identity{ID: "identity-1", Email: "user@example.com"}
	session := &domain.Session{ID: "session-7", Owner: identity, CreatedAt: time.Now().UTC()}

	t.Run("adopts the conveyed identity and session", func(t *testing.T) {
		uc, mocks := newAuthUseCaseWithMocks(t)

		mocks.sessions.EXPECT().
			StartWatchdog(gomock.Any(), identity.ID, session.ID, gomock.Any()).
			Return(&port.Watchdog{Stop: func() {}}, nil)
		mocks.audit.EXPECT().
			Record(gomock.Any(), gomock.Any()).
			Return(nil)

		require.NoError(t, uc.LoginWithPairing(context.Background(), identity, session))

		current, currentSession := uc.Current()
		assert.Equal(t, identity, current)
		assert.Equal(t, session.ID, currentSession.ID)
	})

	t.Run("requires both identity and session", func(t *testing.T) {
		uc, _ := newAuthUseCaseWithMocks(t)

		assert.Error(t, uc.LoginWithPairing(context.Background(), domain.Identity{}, session))
		assert.Error(t, uc.LoginWithPairing(context.Background(), identity, nil))
	})
}

func TestAuthUseCase_Logout(t *testing.T) {
	identity := domain.Identity{ID: "identity-1", Email: "user@example.com"}
	session := &domain.Session{ID: "session-1", Owner: identity, CreatedAt: time.Now().UTC()}

	t.Run("terminates session and signs out", func(t *testing.T) {
		uc, mocks := newAuthUseCaseWithMocks(t)
		stopped := false

		mocks.sessions.EXPECT().
			StartWatchdog(gomock.Any(), identity.ID, session.ID, gomock.Any()).
			Return(&port.Watchdog{Stop: func() { stopped = true }}, nil)
		mocks.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		require.NoError(t, uc.LoginWithPairing(context.Background(), identity, session))

		mocks.sessions.EXPECT().
			Terminate(gomock.Any(), identity.ID, session.ID).
			Return(nil)
		mocks.identities.EXPECT().
			SignOut(gomock.Any()).
			Return(nil)

		require.NoError(t, uc.Logout(context.Background()))

		assert.True(t, stopped)
		current, currentSession := uc.Current()
		assert.True(t, current.IsZero())
		assert.Nil(t, currentSession)
	})

	t.Run("logout while signed out is a no-op", func(t *testing.T) {
		uc, _ := newAuthUseCaseWithMocks(t)
		assert.NoError(t, uc.Logout(context.Background()))
	})
}

func TestAuthUseCase_ForcedLogout(t *testing.T) {
	identity := domain.Identity{ID: "identity-1", Email: "user@example.com"}
	session := &domain.Session{ID: "session-1", Owner: identity, CreatedAt: time.Now().UTC()}

	uc, mocks := newAuthUseCaseWithMocks(t)

	var onRevoked func()
	mocks.sessions.EXPECT().
		StartWatchdog(gomock.Any(), identity.ID, session.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, fn func()) (*port.Watchdog, error) {
			onRevoked = fn
			return &port.Watchdog{Stop: func() {}}, nil
		})
	mocks.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	require.NoError(t, uc.LoginWithPairing(context.Background(), identity, session))

	notified := make(chan struct{}, 1)
	uc.SetForcedLogoutHandler(func() { notified <- struct{}{} })

	mocks.identities.EXPECT().
		SignOut(gomock.Any()).
		Return(nil)

	// Simulate the watchdog observing a remote revocation
	onRevoked()

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("forced logout handler was not invoked")
	}

	current, currentSession := uc.Current()
	assert.True(t, current.IsZero())
	assert.Nil(t, currentSession)
}

func TestAuthUseCase_Restore(t *testing.T) {
	identity := domain.Identity{ID: "identity-1", Email: "user@example.com"}
	session := &domain.Session{ID: "session-2", Owner: identity, CreatedAt: time.Now().UTC()}

	t.Run("restores a surviving provider session", func(t *testing.T) {
		uc, mocks := newAuthUseCaseWithMocks(t)

		mocks.identities.EXPECT().
			CurrentIdentity(gomock.Any()).
			Return(&identity, nil)
		mocks.sessions.EXPECT().
			Mint(gomock.Any(), identity, "Chrome on Windows").
			Return(session, nil)
		mocks.sessions.EXPECT().
			StartWatchdog(gomock.Any(), identity.ID, session.ID, gomock.Any()).
			Return(&port.Watchdog{Stop: func() {}}, nil)

		require.NoError(t, uc.Restore(context.Background(), "Chrome on Windows"))

		current, _ := uc.Current()
		assert.Equal(t, identity, current)
	})

	t.Run("no provider session leaves the facade signed out", func(t *testing.T) {
		uc, mocks := newAuthUseCaseWithMocks(t)

		mocks.identities.EXPECT().
			CurrentIdentity(gomock.Any()).
			Return(nil, domain.ErrNotFound)

		require.NoError(t, uc.Restore(context.Background(), ""))

		current, _ := uc.Current()
		assert.True(t, current.IsZero())
	})
}
