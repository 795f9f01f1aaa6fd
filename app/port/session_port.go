package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go

import (
	"context"

	"pairing-service/app/domain"
)

// SessionRepository persists per-identity session records and exposes change
// subscriptions on them.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, identityID, sessionID string) (*domain.Session, error)
	List(ctx context.Context, identityID string) ([]domain.Session, error)
	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, identityID, sessionID string) error
	// WatchSession streams the state of one session record, nil once deleted.
	WatchSession(ctx context.Context, identityID, sessionID string) (<-chan *domain.Session, func(), error)
	// WatchSessions streams the full session list for an identity, re-read on
	// every membership or record change.
	WatchSessions(ctx context.Context, identityID string) (<-chan []domain.Session, func(), error)
}

// SessionUsecase manages the session registry for an identity.
type SessionUsecase interface {
	// Mint registers a new session for owner and returns it.
	Mint(ctx context.Context, owner domain.Identity, clientDescriptor string) (*domain.Session, error)
	// Terminate revokes one session. Terminating an already-gone session
	// succeeds; revocation is idempotent.
	Terminate(ctx context.Context, identityID, sessionID string) error
	// TerminateAllExcept revokes every session of the identity except keep.
	// Failures are collected; surviving sessions are reported in the error.
	TerminateAllExcept(ctx context.Context, identityID, keep string) error
	// List returns the identity's sessions newest first.
	List(ctx context.Context, identityID string) ([]domain.Session, error)
	WatchSessions(ctx context.Context, identityID string) (<-chan []domain.Session, func(), error)
	// StartWatchdog observes one session record and invokes onRevoked exactly
	// once if the record is deleted. Stopping the watchdog before a deletion
	// suppresses the callback permanently.
	StartWatchdog(ctx context.Context, identityID, sessionID string, onRevoked func()) (*Watchdog, error)
}

// Watchdog is a running session-deletion observer.
type Watchdog struct {
	// Stop detaches the observer. After Stop returns, the callback will not
	// fire.
	Stop func()
}
