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

// PairingUseCase drives both sides of the QR pairing handshake: the
// approver's authorize call and the requesting device's coordinator.
type PairingUseCase struct {
	pairings port.PairingRepository
	sessions port.SessionUsecase
	audit    port.AuditRecorder
	baseURL  string
	ttl      time.Duration
	logger   *slog.Logger
}

// NewPairingUseCase creates a new PairingUseCase instance. baseURL is the
// landing page origin encoded into QR payloads; ttl bounds how long a
// pending request stays scannable.
func NewPairingUseCase(
	pairings port.PairingRepository,
	sessions port.SessionUsecase,
	audit port.AuditRecorder,
	baseURL string,
	ttl time.Duration,
	logger *slog.Logger,
) *PairingUseCase {
	return &PairingUseCase{
		pairings: pairings,
		sessions: sessions,
		audit:    audit,
		baseURL:  baseURL,
		ttl:      ttl,
		logger:   logger.With("component", "pairing_usecase"),
	}
}

// Authorize is the approver side of the handshake. It resolves the scanned
// payload to a token and authorizes the pairing request on behalf of
// approver. A replayed or raced payload yields domain.ErrAlreadyConsumed; a
// stale one domain.ErrNotFound.
func (uc *PairingUseCase) Authorize(ctx context.Context, payload string, approver domain.Identity) error {
	token, err := domain.TokenFromPairingURL(payload)
	if err != nil {
		return fmt.Errorf("unusable pairing payload: %w", domain.ErrNotFound)
	}

	if _, err := uc.pairings.Authorize(ctx, token, approver); err != nil {
		return err
	}

	uc.audit.Record(ctx, domain.NewAuditEvent(domain.AuditPairingAuthorized, approver.ID, token))
	uc.logger.Info("pairing request authorized", "token", token, "identity_id", approver.ID)
	return nil
}

// Get returns the stored pairing request for a token.
func (uc *PairingUseCase) Get(ctx context.Context, token string) (*domain.PairingRequest, error) {
	return uc.pairings.Get(ctx, token)
}

// Cancel abandons a pairing attempt and removes its record.
func (uc *PairingUseCase) Cancel(ctx context.Context, token string) error {
	return uc.pairings.Delete(ctx, token)
}

// StartHandshake creates a fresh pairing request and runs the requesting
// device's side of the handshake until a terminal state. The returned
// handshake streams state updates in order; the channel closes after the
// terminal update.
func (uc *PairingUseCase) StartHandshake(ctx context.Context, clientDescriptor string) (*port.Handshake, error) {
	req := domain.NewPairingRequest()
	if err := uc.pairings.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create pairing request: %w", err)
	}

	// The handshake outlives the request that started it, only explicit
	// cancellation or expiry ends it
	runCtx := context.WithoutCancel(ctx)

	updates, cancelWatch, err := uc.pairings.Watch(runCtx, req.Token)
	if err != nil {
		uc.pairings.Delete(ctx, req.Token)
		return nil, fmt.Errorf("failed to watch pairing request: %w", err)
	}

	stop := make(chan struct{})
	states := make(chan port.HandshakeUpdate, 4)

	hs := &handshakeRun{
		uc:               uc,
		token:            req.Token,
		clientDescriptor: clientDescriptor,
		updates:          updates,
		states:           states,
		stop:             stop,
	}
	go hs.run(runCtx, cancelWatch)

	var once sync.Once
	cancelOnce := func() {
		once.Do(func() { close(stop) })
	}

	return &port.Handshake{
		Token:      req.Token,
		PairingURL: domain.PairingURL(uc.baseURL, req.Token),
		States:     states,
		Cancel:     cancelOnce,
	}, nil
}

// handshakeRun is one in-flight handshake on the requesting device.
type handshakeRun struct {
	uc               *PairingUseCase
	token            string
	clientDescriptor string
	updates          <-chan *domain.PairingRequest
	states           chan port.HandshakeUpdate
	stop             chan struct{}
}

func (h *handshakeRun) run(ctx context.Context, cancelWatch func()) {
	defer close(h.states)
	defer cancelWatch()

	expiry := time.NewTimer(h.uc.ttl)
	defer expiry.Stop()

	if !h.send(ctx, port.HandshakeUpdate{State: port.HandshakeDisplaying}) {
		h.cleanup()
		return
	}

	for {
		select {
		case req, ok := <-h.updates:
			if !ok {
				h.send(ctx, port.HandshakeUpdate{State: port.HandshakeInvalid})
				return
			}
			if req == nil {
				// Absence signals expiry: the record was reaped or deleted
				// before an approver accepted
				h.send(ctx, port.HandshakeUpdate{State: port.HandshakeExpired})
				return
			}
			if req.Status == domain.PairingStatusPending {
				continue
			}
			if req.AuthorizedIdentity == nil {
				h.uc.logger.Error("authorized pairing request without identity", "token", h.token)
				h.send(ctx, port.HandshakeUpdate{State: port.HandshakeInvalid})
				h.cleanup()
				return
			}
			h.adopt(ctx, *req.AuthorizedIdentity)
			return

		case <-expiry.C:
			h.uc.logger.Info("pairing request expired", "token", h.token)
			h.send(ctx, port.HandshakeUpdate{State: port.HandshakeExpired})
			h.cleanup()
			return

		case <-h.stop:
			h.cleanup()
			return

		case <-ctx.Done():
			h.cleanup()
			return
		}
	}
}

// adopt turns an approved request into a session owned by the approver's
// identity. Minting the session is the critical step; recording the session
// id back on the pairing record is best effort.
func (h *handshakeRun) adopt(ctx context.Context, identity domain.Identity) {
	if !h.send(ctx, port.HandshakeUpdate{State: port.HandshakeAuthorized}) {
		h.cleanup()
		return
	}

	session, err := h.uc.sessions.Mint(ctx, identity, h.clientDescriptor)
	if err != nil {
		h.uc.logger.Error("failed to mint session for handshake", "token", h.token, "error", err)
		h.send(ctx, port.HandshakeUpdate{State: port.HandshakeInvalid})
		h.cleanup()
		return
	}

	if err := h.uc.pairings.AttachSession(ctx, h.token, session.ID); err != nil &&
		!errors.Is(err, domain.ErrNotFound) {
		// Non-critical: the device holds its session either way
		h.uc.logger.Warn("failed to record session on pairing request", "token", h.token, "error", err)
	}

	h.send(ctx, port.HandshakeUpdate{State: port.HandshakeSessionAdopted, Session: session})
	h.uc.logger.Info("handshake completed", "token", h.token, "session_id", session.ID)
}

// cleanup removes the pairing record after an abandoned or failed attempt.
func (h *handshakeRun) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.uc.pairings.Delete(ctx, h.token); err != nil {
		h.uc.logger.Warn("failed to delete pairing request", "token", h.token, "error", err)
	}
}

func (h *handshakeRun) send(ctx context.Context, update port.HandshakeUpdate) bool {
	select {
	case h.states <- update:
		return true
	case <-h.stop:
		return false
	case <-ctx.Done():
		return false
	}
}
