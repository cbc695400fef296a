package core

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=store_mock_test.go -package=core

// Store is the TTL-capable key/field store the protocol runs on.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	WriteFields(ctx context.Context, key string, fields map[string]string) error
	ReadField(ctx context.Context, key, field string) (string, bool, error)
	// SetTTL returns ErrNoSuchKey when key is absent.
	SetTTL(ctx context.Context, key string, ttl time.Duration) error
	// Delete reports whether something was removed.
	Delete(ctx context.Context, key string) (bool, error)
}

// ReadAndDeleter is implemented by stores that can fetch and remove a
// record in one atomic step. ok is false when the key was absent.
type ReadAndDeleter interface {
	ReadAndDelete(ctx context.Context, key string) (fields map[string]string, ok bool, err error)
}

// Creator is implemented by stores that can write a record with its
// deadline only if the key does not already exist.
type Creator interface {
	CreateWithTTL(ctx context.Context, key string, fields map[string]string, ttl time.Duration) (created bool, err error)
}

const rollbackTimeout = 2 * time.Second

// rollbackContext detaches compensating writes from ctx's cancellation. A
// write that failed on its deadline must still be undone.
func rollbackContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
}
