package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type ManagerOptions struct {
	RedisAddr      string
	RedisKeyPrefix string
	PostgresDSN    string
	PostgresTable  string
	OpTimeout      time.Duration
	Logger         *slog.Logger
}

// OpenStore picks a backend from opts: Postgres when a DSN is set, Redis
// when an address is set, memory otherwise.
func OpenStore(ctx context.Context, opts ManagerOptions) (Store, error) {
	switch {
	case opts.PostgresDSN != "":
		s, err := OpenPostgresStore(ctx, opts.PostgresDSN, opts.PostgresTable)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return s, nil
	case opts.RedisAddr != "":
		client := redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return NewRedisStore(client, opts.RedisKeyPrefix), nil
	default:
		return NewMemoryStore(), nil
	}
}

func NewManagerWithOptions(ctx context.Context, opts ManagerOptions) (*Manager, error) {
	store, err := OpenStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewManager(Config{
		Store:     store,
		Logger:    opts.Logger,
		OpTimeout: opts.OpTimeout,
	})
}
