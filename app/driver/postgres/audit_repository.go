package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"pairing-service/app/domain"
)

// AuditRepository persists auth and session lifecycle events to PostgreSQL.
type AuditRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewAuditRepository creates a new PostgreSQL audit repository
func NewAuditRepository(db DatabaseIface, logger *slog.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger.With("component", "audit_repository"),
	}
}

// Record inserts one audit event.
func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) error {
	query := `
		INSERT INTO audit_events (
			id, kind, actor_id, subject, client_descriptor, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		string(event.Kind),
		event.ActorID,
		event.Subject,
		event.ClientDescriptor,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert audit event", "kind", event.Kind, "error", err)
		return fmt.Errorf("failed to insert audit event: %w", err)
	}

	return nil
}

// ListByActor returns the most recent events for an actor, newest first.
func (r *AuditRepository) ListByActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, kind, actor_id, subject, client_descriptor, created_at
		FROM audit_events
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.AuditEvent, 0, limit)
	for rows.Next() {
		var event domain.AuditEvent
		var kind string
		if err := rows.Scan(&event.ID, &kind, &event.ActorID, &event.Subject, &event.ClientDescriptor, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		event.Kind = domain.AuditEventKind(kind)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit events: %w", err)
	}

	return events, nil
}
