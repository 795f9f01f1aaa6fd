package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// SessionGateway implements port.SessionRepository on the document store.
// Each identity owns its own collection, so listing and watching never cross
// identity boundaries.
type SessionGateway struct {
	store  port.DocumentStore
	logger *slog.Logger
}

// NewSessionGateway creates a new SessionGateway instance.
func NewSessionGateway(store port.DocumentStore, logger *slog.Logger) *SessionGateway {
	return &SessionGateway{
		store:  store,
		logger: logger.With("component", "session_gateway"),
	}
}

func sessionCollection(identityID string) string {
	return "sessions:" + identityID
}

// Create persists a session record under its identifier.
func (g *SessionGateway) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := g.store.Create(ctx, sessionCollection(session.Owner.ID), session.ID, data); err != nil {
		g.logger.Error("failed to create session record", "session_id", session.ID, "error", err)
		return err
	}

	g.logger.Info("session record created", "session_id", session.ID, "identity_id", session.Owner.ID)
	return nil
}

// Get returns one session record.
func (g *SessionGateway) Get(ctx context.Context, identityID, sessionID string) (*domain.Session, error) {
	snap, err := g.store.Get(ctx, sessionCollection(identityID), sessionID)
	if err != nil {
		return nil, err
	}
	return decodeSession(snap.Data)
}

// List returns every session record of the identity, unordered.
func (g *SessionGateway) List(ctx context.Context, identityID string) ([]domain.Session, error) {
	snaps, err := g.store.List(ctx, sessionCollection(identityID))
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(snaps))
	for _, snap := range snaps {
		session, err := decodeSession(snap.Data)
		if err != nil {
			g.logger.Error("corrupt session record skipped", "session_id", snap.Key, "error", err)
			continue
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}

// Delete removes the session record. The deletion itself is the revocation
// signal; an absent record means revocation already happened.
func (g *SessionGateway) Delete(ctx context.Context, identityID, sessionID string) error {
	if err := g.store.Delete(ctx, sessionCollection(identityID), sessionID); err != nil {
		g.logger.Error("failed to delete session record", "session_id", sessionID, "error", err)
		return err
	}
	g.logger.Info("session record deleted", "session_id", sessionID, "identity_id", identityID)
	return nil
}

// WatchSession streams the state of one session record, nil once deleted.
func (g *SessionGateway) WatchSession(ctx context.Context, identityID, sessionID string) (<-chan *domain.Session, func(), error) {
	snaps, cancelWatch, err := g.store.WatchKey(ctx, sessionCollection(identityID), sessionID)
	if err != nil {
		return nil, nil, err
	}

	done := make(chan struct{})
	out := make(chan *domain.Session, 1)
	go func() {
		defer close(out)
		for snap := range snaps {
			var session *domain.Session
			if snap.Exists {
				decoded, err := decodeSession(snap.Data)
				if err != nil {
					g.logger.Error("corrupt session record in watch stream", "session_id", sessionID, "error", err)
					continue
				}
				session = decoded
			}
			select {
			case out <- session:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			cancelWatch()
		})
	}
	return out, cancel, nil
}

// WatchSessions streams the identity's full session list: the current list
// first, then a re-read list after every membership or record change.
func (g *SessionGateway) WatchSessions(ctx context.Context, identityID string) (<-chan []domain.Session, func(), error) {
	events, cancelWatch, err := g.store.WatchCollection(ctx, sessionCollection(identityID))
	if err != nil {
		return nil, nil, err
	}

	initial, err := g.List(ctx, identityID)
	if err != nil {
		cancelWatch()
		return nil, nil, err
	}

	done := make(chan struct{})
	out := make(chan []domain.Session, 1)
	go func() {
		defer close(out)
		select {
		case out <- initial:
		case <-done:
			return
		case <-ctx.Done():
			return
		}
		for range events {
			sessions, err := g.List(ctx, identityID)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				g.logger.Error("failed to re-read session list", "identity_id", identityID, "error", err)
				continue
			}
			select {
			case out <- sessions:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			cancelWatch()
		})
	}
	return out, cancel, nil
}

func decodeSession(data []byte) (*domain.Session, error) {
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}
