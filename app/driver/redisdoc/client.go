// Package redisdoc implements the document store on Redis. Documents are
// opaque byte payloads under doc:{collection}:{key}, collection membership is
// tracked in a set, and change notifications ride Redis pub/sub.
package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"pairing-service/app/domain"
	"pairing-service/app/port"
)

const (
	updateMaxRetries = 20
	watchChanBuffer  = 16
)

// Client is a Redis-backed port.DocumentStore.
type Client struct {
	rdb    *redis.Client
	ttls   map[string]time.Duration
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCollectionTTL gives every document written to collection a Redis-level
// expiry. Expiry removes the document silently; no change event is published.
func WithCollectionTTL(collection string, ttl time.Duration) Option {
	return func(c *Client) {
		c.ttls[collection] = ttl
	}
}

// WithLogger routes the client's diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client from a Redis URL.
func New(url string, opts ...Option) (*Client, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	c := &Client{
		rdb:    redis.NewClient(redisOpts),
		ttls:   make(map[string]time.Duration),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewWithClient wraps an existing Redis client. Used by tests.
func NewWithClient(rdb *redis.Client, opts ...Option) *Client {
	c := &Client{
		rdb:    rdb,
		ttls:   make(map[string]time.Duration),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks if Redis is available.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func docKey(collection, key string) string {
	return "doc:" + collection + ":" + key
}

func memberKey(collection string) string {
	return "col:" + collection
}

func collectionChannel(collection string) string {
	return "watch:" + collection
}

func keyChannel(collection, key string) string {
	return "watch:" + collection + ":" + key
}

// changeEvent is the pub/sub payload for one document change. Data is raw
// bytes, not embedded JSON: documents are opaque to the store and need not be
// valid JSON themselves.
type changeEvent struct {
	Key    string `json:"key"`
	Exists bool   `json:"exists"`
	Data   []byte `json:"data,omitempty"`
}

func (c *Client) publish(ctx context.Context, collection, key string, exists bool, data []byte) {
	payload, err := json.Marshal(changeEvent{Key: key, Exists: exists, Data: data})
	if err != nil {
		c.logger.Error("failed to encode change event", "collection", collection, "key", key, "error", err)
		return
	}
	// Both the per-key and the collection channel carry every change.
	c.rdb.Publish(ctx, keyChannel(collection, key), payload)
	c.rdb.Publish(ctx, collectionChannel(collection), payload)
}

// Get returns the current document snapshot. Absent documents yield
// domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, collection, key string) (port.Snapshot, error) {
	data, err := c.rdb.Get(ctx, docKey(collection, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return port.Snapshot{Key: key}, domain.ErrNotFound
	}
	if err != nil {
		return port.Snapshot{}, domain.NewStoreError("get", err)
	}
	return port.Snapshot{Key: key, Exists: true, Data: data}, nil
}

// Create writes a document that must not exist yet.
func (c *Client) Create(ctx context.Context, collection, key string, data []byte) error {
	ok, err := c.rdb.SetNX(ctx, docKey(collection, key), data, c.ttls[collection]).Result()
	if err != nil {
		return domain.NewStoreError("create", err)
	}
	if !ok {
		return domain.ErrAlreadyExists
	}
	if err := c.rdb.SAdd(ctx, memberKey(collection), key).Err(); err != nil {
		return domain.NewStoreError("create", err)
	}
	c.publish(ctx, collection, key, true, data)
	return nil
}

// Set writes a document unconditionally.
func (c *Client) Set(ctx context.Context, collection, key string, data []byte) error {
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, docKey(collection, key), data, c.ttls[collection])
	pipe.SAdd(ctx, memberKey(collection), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.NewStoreError("set", err)
	}
	c.publish(ctx, collection, key, true, data)
	return nil
}

// Update applies fn under an optimistic WATCH guard and retries on conflict.
// fn sees nil when the document does not exist; an error from fn aborts the
// update and is returned as-is. The document's remaining expiry survives the
// rewrite.
func (c *Client) Update(ctx context.Context, collection, key string, fn func(current []byte) ([]byte, error)) error {
	dk := docKey(collection, key)

	var written []byte
	txn := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, dk).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}

		ttl := c.ttls[collection]
		if current != nil {
			pttl, err := tx.PTTL(ctx, dk).Result()
			if err != nil {
				return err
			}
			if pttl > 0 {
				ttl = pttl
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		written = next
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dk, next, ttl)
			pipe.SAdd(ctx, memberKey(collection), key)
			return nil
		})
		return err
	}

	for i := 0; i < updateMaxRetries; i++ {
		err := c.rdb.Watch(ctx, txn, dk)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			var storeErr *domain.StoreError
			var authErr *domain.AuthError
			if errors.Is(err, domain.ErrNotFound) ||
				errors.Is(err, domain.ErrAlreadyConsumed) ||
				errors.As(err, &storeErr) || errors.As(err, &authErr) {
				return err
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return domain.NewStoreError("update", err)
		}
		c.publish(ctx, collection, key, true, written)
		return nil
	}
	return domain.NewStoreError("update", redis.TxFailedErr)
}

// Delete removes a document. Deleting an absent document is not an error and
// publishes no event.
func (c *Client) Delete(ctx context.Context, collection, key string) error {
	removed, err := c.rdb.Del(ctx, docKey(collection, key)).Result()
	if err != nil {
		return domain.NewStoreError("delete", err)
	}
	if err := c.rdb.SRem(ctx, memberKey(collection), key).Err(); err != nil {
		return domain.NewStoreError("delete", err)
	}
	if removed > 0 {
		c.publish(ctx, collection, key, false, nil)
	}
	return nil
}

// List returns snapshots of every live document in the collection. Members
// whose documents expired are pruned from the membership set on the way.
func (c *Client) List(ctx context.Context, collection string) ([]port.Snapshot, error) {
	keys, err := c.rdb.SMembers(ctx, memberKey(collection)).Result()
	if err != nil {
		return nil, domain.NewStoreError("list", err)
	}
	if len(keys) == 0 {
		return []port.Snapshot{}, nil
	}

	docKeys := make([]string, len(keys))
	for i, k := range keys {
		docKeys[i] = docKey(collection, k)
	}
	values, err := c.rdb.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, domain.NewStoreError("list", err)
	}

	snapshots := make([]port.Snapshot, 0, len(keys))
	var stale []interface{}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			stale = append(stale, keys[i])
			continue
		}
		snapshots = append(snapshots, port.Snapshot{Key: keys[i], Exists: true, Data: []byte(s)})
	}
	if len(stale) > 0 {
		c.rdb.SRem(ctx, memberKey(collection), stale...)
	}
	return snapshots, nil
}

// WatchKey streams changes to one document, starting with its current state.
func (c *Client) WatchKey(ctx context.Context, collection, key string) (<-chan port.Snapshot, func(), error) {
	pubsub := c.rdb.Subscribe(ctx, keyChannel(collection, key))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, domain.NewStoreError("watch", err)
	}

	initial, err := c.Get(ctx, collection, key)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		pubsub.Close()
		return nil, nil, err
	}

	out := make(chan port.Snapshot, watchChanBuffer)
	done := make(chan struct{})
	go c.relay(ctx, pubsub, out, done, &initial)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}
	return out, cancel, nil
}

// WatchCollection streams changes to any document in the collection, starting
// with a snapshot of each live document.
func (c *Client) WatchCollection(ctx context.Context, collection string) (<-chan port.Snapshot, func(), error) {
	pubsub := c.rdb.Subscribe(ctx, collectionChannel(collection))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, domain.NewStoreError("watch", err)
	}

	current, err := c.List(ctx, collection)
	if err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	out := make(chan port.Snapshot, watchChanBuffer)
	done := make(chan struct{})
	go func() {
		defer close(out)
		for _, snap := range current {
			select {
			case out <- snap:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
		c.forward(ctx, pubsub, out, done)
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}
	return out, cancel, nil
}

func (c *Client) relay(ctx context.Context, pubsub *redis.PubSub, out chan<- port.Snapshot, done chan struct{}, initial *port.Snapshot) {
	defer close(out)
	if initial != nil {
		select {
		case out <- *initial:
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
	c.forward(ctx, pubsub, out, done)
}

func (c *Client) forward(ctx context.Context, pubsub *redis.PubSub, out chan<- port.Snapshot, done chan struct{}) {
	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event changeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			snap := port.Snapshot{Key: event.Key, Exists: event.Exists, Data: event.Data}
			select {
			case out <- snap:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
