package port

//go:generate mockgen -source=audit_port.go -destination=../mocks/mock_audit_port.go

import (
	"context"

	"pairing-service/app/domain"
)

// AuditRecorder persists auth and session lifecycle events. Recording is best
// effort; callers log failures and continue.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
	ListByActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEvent, error)
}
