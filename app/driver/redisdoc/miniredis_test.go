package redisdoc

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Miniredis wraps miniredis for testing.
type Miniredis struct {
	*miniredis.Miniredis
}

// NewMiniredis creates a new miniredis instance for testing.
func NewMiniredis(t *testing.T) *Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return &Miniredis{Miniredis: mr}
}

// NewTestClient creates a document store client backed by miniredis.
func NewTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()

	mr := NewMiniredis(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	client := NewWithClient(rdb, opts...)
	t.Cleanup(func() { client.Close() })

	return client
}
