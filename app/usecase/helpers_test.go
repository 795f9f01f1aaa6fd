package usecase

import (
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pairing-service/app/driver/redisdoc"
	"pairing-service/app/gateway"
)

// newTestStore spins up a miniredis-backed document store.
func newTestStore(t *testing.T, opts ...redisdoc.Option) *redisdoc.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	client := redisdoc.NewWithClient(rdb, opts...)
	t.Cleanup(func() { client.Close() })

	return client
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noopAudit is an AuditRecorder with no backing repository.
func noopAudit() *gateway.AuditGateway {
	return gateway.NewAuditGateway(nil, discardLogger())
}

// newSessionStack builds a session usecase on a real miniredis store.
func newSessionStack(t *testing.T) *SessionUseCase {
	t.Helper()
	store := newTestStore(t)
	repo := gateway.NewSessionGateway(store, discardLogger())
	return NewSessionUseCase(repo, noopAudit(), discardLogger())
}
