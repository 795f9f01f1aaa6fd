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

const pairingCollection = "pairing"

// PairingGateway implements port.PairingRepository on the document store.
// Every state transition goes through the store's guarded update, so two
// racing writers serialize and the loser sees the winner's record.
type PairingGateway struct {
	store  port.DocumentStore
	logger *slog.Logger
}

// NewPairingGateway creates a new PairingGateway instance.
func NewPairingGateway(store port.DocumentStore, logger *slog.Logger) *PairingGateway {
	return &PairingGateway{
		store:  store,
		logger: logger.With("component", "pairing_gateway"),
	}
}

// Create persists a fresh pairing request under its token.
func (g *PairingGateway) Create(ctx context.Context, req *domain.PairingRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode pairing request: %w", err)
	}

	if err := g.store.Create(ctx, pairingCollection, req.Token, data); err != nil {
		g.logger.Error("failed to create pairing request", "token", req.Token, "error", err)
		return err
	}

	g.logger.Info("pairing request created", "token", req.Token)
	return nil
}

// Get returns the pairing request stored under token.
func (g *PairingGateway) Get(ctx context.Context, token string) (*domain.PairingRequest, error) {
	snap, err := g.store.Get(ctx, pairingCollection, token)
	if err != nil {
		return nil, err
	}
	return decodePairingRequest(snap.Data)
}

// Authorize transitions the request to authorized on behalf of identity. The
// transition runs inside the store's optimistic update, so of two racing
// approvers exactly one wins and the other gets domain.ErrAlreadyConsumed.
func (g *PairingGateway) Authorize(ctx context.Context, token string, identity domain.Identity) (*domain.PairingRequest, error) {
	var authorized *domain.PairingRequest

	err := g.store.Update(ctx, pairingCollection, token, func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domain.ErrNotFound
		}
		req, err := decodePairingRequest(current)
		if err != nil {
			return nil, err
		}
		if err := req.Authorize(identity); err != nil {
			return nil, err
		}
		authorized = req
		return json.Marshal(req)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyConsumed) && !errors.Is(err, domain.ErrNotFound) {
			g.logger.Error("failed to authorize pairing request", "token", token, "error", err)
		}
		return nil, err
	}

	g.logger.Info("pairing request authorized", "token", token, "identity_id", identity.ID)
	return authorized, nil
}

// AttachSession records the minted session on an authorized request and marks
// it consumed.
func (g *PairingGateway) AttachSession(ctx context.Context, token, sessionID string) error {
	err := g.store.Update(ctx, pairingCollection, token, func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domain.ErrNotFound
		}
		req, err := decodePairingRequest(current)
		if err != nil {
			return nil, err
		}
		if err := req.AttachSession(sessionID); err != nil {
			return nil, err
		}
		return json.Marshal(req)
	})
	if err != nil {
		g.logger.Error("failed to attach session to pairing request", "token", token, "error", err)
		return err
	}

	g.logger.Info("session attached to pairing request", "token", token, "session_id", sessionID)
	return nil
}

// Delete removes the pairing request. Deleting an absent request succeeds.
func (g *PairingGateway) Delete(ctx context.Context, token string) error {
	if err := g.store.Delete(ctx, pairingCollection, token); err != nil {
		g.logger.Error("failed to delete pairing request", "token", token, "error", err)
		return err
	}
	return nil
}

// Watch streams the stored request state, starting with the current state.
// A nil element means the record does not exist.
func (g *PairingGateway) Watch(ctx context.Context, token string) (<-chan *domain.PairingRequest, func(), error) {
	snaps, cancelWatch, err := g.store.WatchKey(ctx, pairingCollection, token)
	if err != nil {
		return nil, nil, err
	}

	done := make(chan struct{})
	out := make(chan *domain.PairingRequest, 1)
	go func() {
		defer close(out)
		for snap := range snaps {
			var req *domain.PairingRequest
			if snap.Exists {
				decoded, err := decodePairingRequest(snap.Data)
				if err != nil {
					g.logger.Error("corrupt pairing record in watch stream", "token", token, "error", err)
					continue
				}
				req = decoded
			}
			select {
			case out <- req:
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

func decodePairingRequest(data []byte) (*domain.PairingRequest, error) {
	var req domain.PairingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode pairing request: %w", err)
	}
	return &req, nil
}
