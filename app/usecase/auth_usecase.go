package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// AuthUseCase is the single entry point devices use for authentication. It
// tracks the signed-in identity and session for this process and keeps the
// watchdog on the active session.
type AuthUseCase struct {
	identities port.IdentityProvider
	sessions   port.SessionUsecase
	audit      port.AuditRecorder
	logger     *slog.Logger

	mu             sync.Mutex
	current        domain.Identity
	session        *domain.Session
	watchdog       *port.Watchdog
	onForcedLogout func()
}

// NewAuthUseCase creates a new AuthUseCase instance.
func NewAuthUseCase(
	identities port.IdentityProvider,
	sessions port.SessionUsecase,
	audit port.AuditRecorder,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		identities: identities,
		sessions:   sessions,
		audit:      audit,
		logger:     logger.With("component", "auth_usecase"),
	}
}

// SetForcedLogoutHandler installs the hook invoked after a remote revocation
// of the active session has been processed.
func (uc *AuthUseCase) SetForcedLogoutHandler(fn func()) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.onForcedLogout = fn
}

// Login verifies credentials with the identity provider and mints a session.
// A provider login without a minted session is useless to the device, so a
// mint failure rolls the provider session back.
func (uc *AuthUseCase) Login(ctx context.Context, email, password, clientDescriptor string) (*domain.Identity, *domain.Session, error) {
	identity, err := uc.identities.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	session, err := uc.adoptIdentity(ctx, *identity, clientDescriptor)
	if err != nil {
		return nil, nil, err
	}

	event := domain.NewAuditEvent(domain.AuditLogin, identity.ID, session.ID)
	event.ClientDescriptor = clientDescriptor
	uc.audit.Record(ctx, event)

	uc.logger.Info("login completed", "identity_id", identity.ID, "session_id", session.ID)
	return identity, session, nil
}

// Register creates a new account with the identity provider and mints its
// first session.
func (uc *AuthUseCase) Register(ctx context.Context, email, password, clientDescriptor string) (*domain.Identity, *domain.Session, error) {
	identity, err := uc.identities.CreateAccount(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	session, err := uc.adoptIdentity(ctx, *identity, clientDescriptor)
	if err != nil {
		return nil, nil, err
	}

	event := domain.NewAuditEvent(domain.AuditRegister, identity.ID, session.ID)
	event.ClientDescriptor = clientDescriptor
	uc.audit.Record(ctx, event)

	uc.logger.Info("registration completed", "identity_id", identity.ID, "session_id", session.ID)
	return identity, session, nil
}

// LoginWithPairing adopts the identity and session a completed handshake
// conveyed. The session was already minted by the handshake coordinator.
func (uc *AuthUseCase) LoginWithPairing(ctx context.Context, identity domain.Identity, session *domain.Session) error {
	if identity.IsZero() || session == nil {
		return fmt.Errorf("pairing login requires an identity and a session")
	}

	// The watchdog must outlive the request that adopted the session
	watchdog, err := uc.sessions.StartWatchdog(context.WithoutCancel(ctx), identity.ID, session.ID, uc.handleForcedLogout)
	if err != nil {
		return fmt.Errorf("failed to start session watchdog: %w", err)
	}

	uc.mu.Lock()
	uc.stopWatchdogLocked()
	uc.current = identity
	uc.session = session
	uc.watchdog = watchdog
	uc.mu.Unlock()

	event := domain.NewAuditEvent(domain.AuditLogin, identity.ID, session.ID)
	event.ClientDescriptor = session.ClientDescriptor
	uc.audit.Record(ctx, event)

	uc.logger.Info("pairing login completed", "identity_id", identity.ID, "session_id", session.ID)
	return nil
}

// Logout terminates the active session, signs out of the identity provider
// and clears the local state. A missing session record does not block the
// sign-out.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	uc.mu.Lock()
	identity := uc.current
	session := uc.session
	uc.stopWatchdogLocked()
	uc.current = domain.Identity{}
	uc.session = nil
	uc.mu.Unlock()

	if identity.IsZero() {
		return nil
	}

	var errs []error
	if session != nil {
		if err := uc.sessions.Terminate(ctx, identity.ID, session.ID); err != nil {
			uc.logger.Error("failed to terminate session on logout", "session_id", session.ID, "error", err)
			errs = append(errs, err)
		}
	}
	if err := uc.identities.SignOut(ctx); err != nil {
		errs = append(errs, err)
	}

	uc.audit.Record(ctx, domain.NewAuditEvent(domain.AuditLogout, identity.ID, sessionID(session)))
	uc.logger.Info("logout completed", "identity_id", identity.ID)
	return errors.Join(errs...)
}

// Current returns the locally tracked identity and session, zero-valued when
// signed out.
func (uc *AuthUseCase) Current() (domain.Identity, *domain.Session) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.current, uc.session
}

// Restore picks up an identity provider session that survived a restart. The
// old session record is gone by then, so a fresh one is minted.
func (uc *AuthUseCase) Restore(ctx context.Context, clientDescriptor string) error {
	identity, err := uc.identities.CurrentIdentity(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	if _, err := uc.adoptIdentity(ctx, *identity, clientDescriptor); err != nil {
		return err
	}

	uc.logger.Info("identity restored", "identity_id", identity.ID)
	return nil
}

// adoptIdentity mints a session for identity, arms the watchdog and swaps
// the local state over. Minting is the critical step: on failure the
// provider session is revoked so the device is not left half signed in.
func (uc *AuthUseCase) adoptIdentity(ctx context.Context, identity domain.Identity, clientDescriptor string) (*domain.Session, error) {
	session, err := uc.sessions.Mint(ctx, identity, clientDescriptor)
	if err != nil {
		if signOutErr := uc.identities.SignOut(ctx); signOutErr != nil {
			uc.logger.Error("failed to roll back provider session", "error", signOutErr)
		}
		return nil, fmt.Errorf("failed to mint session: %w", err)
	}

	// The watchdog must outlive the request that adopted the session
	watchdog, err := uc.sessions.StartWatchdog(context.WithoutCancel(ctx), identity.ID, session.ID, uc.handleForcedLogout)
	if err != nil {
		uc.logger.Error("failed to start session watchdog", "session_id", session.ID, "error", err)
		watchdog = nil
	}

	uc.mu.Lock()
	uc.stopWatchdogLocked()
	uc.current = identity
	uc.session = session
	uc.watchdog = watchdog
	uc.mu.Unlock()

	return session, nil
}

// handleForcedLogout reacts to a remote revocation of the active session.
// The session record is already gone; only the provider session and the
// local state need tearing down.
func (uc *AuthUseCase) handleForcedLogout() {
	uc.mu.Lock()
	identity := uc.current
	session := uc.session
	handler := uc.onForcedLogout
	uc.watchdog = nil
	uc.current = domain.Identity{}
	uc.session = nil
	uc.mu.Unlock()

	if identity.IsZero() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := uc.identities.SignOut(ctx); err != nil {
		uc.logger.Error("failed to sign out after forced logout", "error", err)
	}
	uc.audit.Record(ctx, domain.NewAuditEvent(domain.AuditForcedLogout, identity.ID, sessionID(session)))
	uc.logger.Info("forced logout processed", "identity_id", identity.ID, "session_id", sessionID(session))

	if handler != nil {
		handler()
	}
}

func (uc *AuthUseCase) stopWatchdogLocked() {
	if uc.watchdog != nil {
		uc.watchdog.Stop()
		uc.watchdog = nil
	}
}

func sessionID(session *domain.Session) string {
	if session == nil {
		return ""
	}
	return session.ID
}
