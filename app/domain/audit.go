package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventKind classifies auth and session lifecycle events.
type AuditEventKind string

const (
	AuditLogin             AuditEventKind = "login"
	AuditRegister          AuditEventKind = "register"
	AuditLogout            AuditEventKind = "logout"
	AuditForcedLogout      AuditEventKind = "forced_logout"
	AuditPairingAuthorized AuditEventKind = "pairing_authorized"
	AuditSessionMinted     AuditEventKind = "session_minted"
	AuditSessionRevoked    AuditEventKind = "session_revoked"
	AuditBulkRevocation    AuditEventKind = "bulk_revocation"
)

// AuditEvent is one recorded auth, pairing or session lifecycle event.
// Subject is the affected record key (session id or pairing token).
type AuditEvent struct {
	ID               string         `json:"id"`
	Kind             AuditEventKind `json:"kind"`
	ActorID          string         `json:"actor_id,omitempty"`
	Subject          string         `json:"subject,omitempty"`
	ClientDescriptor string         `json:"client_descriptor,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// NewAuditEvent creates an audit event stamped with the current time.
func NewAuditEvent(kind AuditEventKind, actorID, subject string) *AuditEvent {
	return &AuditEvent{
		ID:        uuid.New().String(),
		Kind:      kind,
		ActorID:   actorID,
		Subject:   subject,
		CreatedAt: time.Now().UTC(),
	}
}
