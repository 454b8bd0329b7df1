package ports

import "context"

// KeyValueStore is the durable local storage the stores write through to.
// Get returns domain.ErrKeyNotFound when the key has never been set or was
// deleted. Deleting an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by dependencies that take part in readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
