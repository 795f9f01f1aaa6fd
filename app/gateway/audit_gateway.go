package gateway

import (
	"context"
	"log/slog"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

// AuditGateway implements port.AuditRecorder. Recording is best effort: with
// no repository configured every call is a no-op, and repository failures are
// logged, never propagated into the calling flow.
type AuditGateway struct {
	repo   port.AuditRecorder
	logger *slog.Logger
}

// NewAuditGateway creates a new AuditGateway instance. repo may be nil.
func NewAuditGateway(repo port.AuditRecorder, logger *slog.Logger) *AuditGateway {
	return &AuditGateway{
		repo:   repo,
		logger: logger.With("component", "audit_gateway"),
	}
}

// Record persists an audit event if a repository is configured.
func (g *AuditGateway) Record(ctx context.Context, event *domain.AuditEvent) error {
	if g.repo == nil {
		return nil
	}
	if err := g.repo.Record(ctx, event); err != nil {
		g.logger.Error("failed to record audit event", "kind", event.Kind, "error", err)
		return nil
	}
	return nil
}

// ListByActor returns recent audit events for an actor, newest first.
func (g *AuditGateway) ListByActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEvent, error) {
	if g.repo == nil {
		return []domain.AuditEvent{}, nil
	}
	return g.repo.ListByActor(ctx, actorID, limit)
}
