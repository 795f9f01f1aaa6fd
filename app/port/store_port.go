package port

//go:generate mockgen -source=store_port.go -destination=../mocks/mock_store_port.go

import "context"

// Snapshot is one observation of a document. Exists reports whether the
// document was present when the snapshot was taken; Data is the raw document
// body and is nil when Exists is false.
type Snapshot struct {
	Key    string
	Exists bool
	Data   []byte
}

// DocumentStore is a keyed document store with change subscriptions.
// Collections are flat namespaces; documents are opaque byte payloads.
//
// Watch channels deliver an initial snapshot of the current state followed by
// change notifications. Delivery is at-least-once per subscription and ordered
// within a subscription. The returned cancel function releases the
// subscription and closes the channel.
type DocumentStore interface {
	Get(ctx context.Context, collection, key string) (Snapshot, error)
	Create(ctx context.Context, collection, key string, data []byte) error
	Set(ctx context.Context, collection, key string, data []byte) error
	// Update applies fn to the current document body under an optimistic
	// concurrency guard and retries on conflict. fn receives nil when the
	// document does not exist; an error from fn aborts the update unchanged.
	Update(ctx context.Context, collection, key string, fn func(current []byte) ([]byte, error)) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) ([]Snapshot, error)
	WatchKey(ctx context.Context, collection, key string) (<-chan Snapshot, func(), error)
	WatchCollection(ctx context.Context, collection string) (<-chan Snapshot, func(), error)
}
