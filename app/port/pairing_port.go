package port

//go:generate mockgen -source=pairing_port.go -destination=../mocks/mock_pairing_port.go

import (
	"context"

	"pairing-service/app/domain"
)

// PairingRepository persists pairing requests and exposes change
// subscriptions on individual tokens.
type PairingRepository interface {
	Create(ctx context.Context, req *domain.PairingRequest) error
	Get(ctx context.Context, token string) (*domain.PairingRequest, error)
	// Authorize transitions the request to authorized on behalf of identity.
	// The transition is guarded: a request that already left the pending
	// state yields domain.ErrAlreadyConsumed and the stored record is
	// untouched.
	Authorize(ctx context.Context, token string, identity domain.Identity) (*domain.PairingRequest, error)
	// AttachSession records the session minted from an authorized request and
	// marks the request consumed.
	AttachSession(ctx context.Context, token, sessionID string) error
	Delete(ctx context.Context, token string) error
	// Watch streams the request state, starting with the current state. A nil
	// element means the record does not exist.
	Watch(ctx context.Context, token string) (<-chan *domain.PairingRequest, func(), error)
}

// PairingUsecase drives both sides of the handshake: the approver's authorize
// call and the requesting device's coordinator.
type PairingUsecase interface {
	// Authorize is the approver side: it resolves the scanned QR payload to a
	// token and authorizes the request for the approver's identity.
	Authorize(ctx context.Context, payload string, approver domain.Identity) error
	Get(ctx context.Context, token string) (*domain.PairingRequest, error)
	Cancel(ctx context.Context, token string) error
	// StartHandshake creates a pairing request and begins observing it on
	// behalf of the requesting device.
	StartHandshake(ctx context.Context, clientDescriptor string) (*Handshake, error)
}

// HandshakeState is the requesting device's view of the handshake.
type HandshakeState string

const (
	// HandshakeDisplaying means the QR payload is live and awaiting a scan.
	HandshakeDisplaying HandshakeState = "displaying"
	// HandshakeAuthorized means an approver accepted; session adoption is in
	// flight.
	HandshakeAuthorized HandshakeState = "authorized"
	// HandshakeSessionAdopted is terminal: the device holds a session.
	HandshakeSessionAdopted HandshakeState = "session_adopted"
	// HandshakeExpired is terminal: the request aged out or its record was
	// removed before approval.
	HandshakeExpired HandshakeState = "expired"
	// HandshakeInvalid is terminal: a store failure or an unusable record
	// ended observation.
	HandshakeInvalid HandshakeState = "invalid"
)

// Terminal reports whether the handshake can make no further progress.
func (s HandshakeState) Terminal() bool {
	switch s {
	case HandshakeSessionAdopted, HandshakeExpired, HandshakeInvalid:
		return true
	}
	return false
}

// HandshakeUpdate is one state observation, carrying the adopted session and
// its owner once the handshake completes.
type HandshakeUpdate struct {
	State   HandshakeState
	Session *domain.Session
}

// Handshake is a live pairing attempt held by the requesting device. States
// delivers updates in order and is closed after a terminal state. Cancel
// tears down the attempt and deletes the pending record.
type Handshake struct {
	Token      string
	PairingURL string
	States     <-chan HandshakeUpdate
	Cancel     func()
}
