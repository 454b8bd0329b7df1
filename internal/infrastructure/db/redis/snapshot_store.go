package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

const defaultPrefix = "agriconnect:"

// cmdable is the subset of the go-redis API the store uses.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// SnapshotStore keeps local storage keys in Redis so several storefront
// processes can share one cart. Keys never expire.
// Key format: <prefix><key>, e.g. agriconnect:cart
type SnapshotStore struct {
	client cmdable
	prefix string
	close  func() error
}

// NewSnapshotStore wraps client. Closing the store closes the client.
func NewSnapshotStore(client *redis.Client, prefix string) *SnapshotStore {
	s := newSnapshotStore(client, prefix)
	s.close = client.Close
	return s
}

func newSnapshotStore(client cmdable, prefix string) *SnapshotStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SnapshotStore{client: client, prefix: prefix, close: func() error { return nil }}
}

func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return b, nil
}

func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SnapshotStore) Close() error {
	return s.close()
}

func (s *SnapshotStore) key(k string) string {
	return s.prefix + k
}
