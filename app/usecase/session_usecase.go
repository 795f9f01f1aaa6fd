package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// SessionUseCase implements the session registry business logic.
type SessionUseCase struct {
	sessions port.SessionRepository
	audit    port.AuditRecorder
	logger   *slog.Logger
}

// NewSessionUseCase creates a new SessionUseCase instance.
func NewSessionUseCase(sessions port.SessionRepository, audit port.AuditRecorder, logger *slog.Logger) *SessionUseCase {
	return &SessionUseCase{
		sessions: sessions,
		audit:    audit,
		logger:   logger.With("component", "session_usecase"),
	}
}

// Mint registers a new session for owner and returns it.
func (uc *SessionUseCase) Mint(ctx context.Context, owner domain.Identity, clientDescriptor string) (*domain.Session, error) {
	session, err := domain.NewSession(owner, clientDescriptor)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to mint session: %w", err)
	}

	event := domain.NewAuditEvent(domain.AuditSessionMinted, owner.ID, session.ID)
	event.ClientDescriptor = clientDescriptor
	uc.audit.Record(ctx, event)

	uc.logger.Info("session minted", "session_id", session.ID, "identity_id", owner.ID)
	return session, nil
}

// Terminate revokes one session. Revocation is deletion of the record, so
// terminating an already-gone session succeeds.
func (uc *SessionUseCase) Terminate(ctx context.Context, identityID, sessionID string) error {
	if err := uc.sessions.Delete(ctx, identityID, sessionID); err != nil {
		return fmt.Errorf("failed to terminate session: %w", err)
	}

	uc.audit.Record(ctx, domain.NewAuditEvent(domain.AuditSessionRevoked, identityID, sessionID))
	return nil
}

// TerminateAllExcept revokes every session of the identity except keep.
// Individual failures do not stop the sweep; they are joined into one error
// so the caller knows which sessions survived.
func (uc *SessionUseCase) TerminateAllExcept(ctx context.Context, identityID, keep string) error {
	sessions, err := uc.sessions.List(ctx, identityID)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	var errs []error
	revoked := 0
	for _, session := range sessions {
		if session.ID == keep {
			continue
		}
		if err := uc.sessions.Delete(ctx, identityID, session.ID); err != nil {
			uc.logger.Error("failed to revoke session during sweep",
				"session_id", session.ID, "identity_id", identityID, "error", err)
			errs = append(errs, fmt.Errorf("session %s survived: %w", session.ID, err))
			continue
		}
		revoked++
	}

	uc.audit.Record(ctx, domain.NewAuditEvent(domain.AuditBulkRevocation, identityID, keep))
	uc.logger.Info("bulk revocation completed",
		"identity_id", identityID, "revoked", revoked, "failed", len(errs))

	return errors.Join(errs...)
}

// List returns the identity's sessions newest first.
func (uc *SessionUseCase) List(ctx context.Context, identityID string) ([]domain.Session, error) {
	sessions, err := uc.sessions.List(ctx, identityID)
	if err != nil {
		return nil, err
	}
	domain.SortSessionsByNewest(sessions)
	return sessions, nil
}

// WatchSessions streams the identity's session list as it changes.
func (uc *SessionUseCase) WatchSessions(ctx context.Context, identityID string) (<-chan []domain.Session, func(), error) {
	return uc.sessions.WatchSessions(ctx, identityID)
}

// StartWatchdog observes one session record and invokes onRevoked exactly
// once when the record disappears. A stopped watchdog never fires, even if
// the deletion event was already in flight.
func (uc *SessionUseCase) StartWatchdog(ctx context.Context, identityID, sessionID string, onRevoked func()) (*port.Watchdog, error) {
	updates, cancel, err := uc.sessions.WatchSession(ctx, identityID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to watch session: %w", err)
	}

	var mu sync.Mutex
	stopped := false
	fired := false

	go func() {
		defer cancel()
		for session := range updates {
			if session != nil {
				continue
			}
			mu.Lock()
			if stopped || fired {
				mu.Unlock()
				return
			}
			fired = true
			mu.Unlock()

			uc.logger.Info("session revoked remotely", "session_id", sessionID, "identity_id", identityID)
			onRevoked()
			return
		}
	}()

	stop := func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
		cancel()
	}
	return &port.Watchdog{Stop: stop}, nil
}
