package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PairingStatus is the lifecycle status of a pairing request. Transitions
// are monotonic: pending -> authorized -> consumed, never backwards.
type PairingStatus string

const (
	PairingStatusPending    PairingStatus = "pending"
	PairingStatusAuthorized PairingStatus = "authorized"
	PairingStatusConsumed   PairingStatus = "consumed"
)

// rank orders statuses for the monotonicity check.
func (s PairingStatus) rank() int {
	switch s {
	case PairingStatusPending:
		return 0
	case PairingStatusAuthorized:
		return 1
	case PairingStatusConsumed:
		return 2
	default:
		return -1
	}
}

// IsValid returns true for a known status value.
func (s PairingStatus) IsValid() bool {
	return s.rank() >= 0
}

// CanTransitionTo returns true if moving to next never regresses the status.
func (s PairingStatus) CanTransitionTo(next PairingStatus) bool {
	return next.rank() > s.rank()
}

// PairingRequest is the ephemeral record behind one QR-code login attempt.
// The record is keyed by Token; absence of the record (not a status value)
// signals that the request expired or was abandoned.
type PairingRequest struct {
	Token              string        `json:"token"`
	Status             PairingStatus `json:"status"`
	CreatedAt          time.Time     `json:"created_at"`
	AuthorizedIdentity *Identity     `json:"authorized_identity,omitempty"`
	SessionID          string        `json:"session_id,omitempty"`
}

// NewPairingRequest creates a pending pairing request with a fresh token.
func NewPairingRequest() *PairingRequest {
	return &PairingRequest{
		Token:     uuid.New().String(),
		Status:    PairingStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Authorize records the approving identity. Only a pending request may be
// authorized; anything else is a replay and fails with ErrAlreadyConsumed.
func (r *PairingRequest) Authorize(identity Identity) error {
	if r.Status != PairingStatusPending {
		return ErrAlreadyConsumed
	}
	if identity.IsZero() {
		return fmt.Errorf("authorizing identity is required")
	}
	r.Status = PairingStatusAuthorized
	r.AuthorizedIdentity = &identity
	return nil
}

// AttachSession records the session minted for this pairing and marks the
// request consumed. A session may be attached only once; repeating the call
// with the same session id is a no-op.
func (r *PairingRequest) AttachSession(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if r.SessionID != "" {
		if r.SessionID == sessionID {
			return nil
		}
		return ErrAlreadyConsumed
	}
	if r.Status != PairingStatusAuthorized {
		return fmt.Errorf("cannot attach session to %s request", r.Status)
	}
	r.SessionID = sessionID
	r.Status = PairingStatusConsumed
	return nil
}

// PairingURL builds the URL-shaped payload embedded in the displayed QR
// code. The token travels as the last path segment.
func PairingURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/token/" + token
}

// TokenFromPairingURL extracts the pairing token from a decoded QR payload.
// The decoder hands the payload over verbatim; a bare token is accepted as
// well since older clients encoded only the token itself.
func TokenFromPairingURL(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", fmt.Errorf("empty pairing payload")
	}
	if !strings.Contains(payload, "/") {
		return payload, nil
	}
	u, err := url.Parse(payload)
	if err != nil {
		return "", fmt.Errorf("malformed pairing payload: %w", err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	token := segments[len(segments)-1]
	if token == "" {
		return "", fmt.Errorf("pairing payload carries no token")
	}
	return token, nil
}
