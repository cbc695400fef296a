package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// readAndDeleteScript returns the flattened hash under KEYS[1] and removes
// it, or false when the key is absent.
var readAndDeleteScript = redis.NewScript(`
local fields = redis.call("HGETALL", KEYS[1])
if #fields == 0 then
  return false
end
redis.call("DEL", KEYS[1])
return fields
`)

// createScript writes the hash and its deadline only if KEYS[1] is absent.
// ARGV[1] = ttl in milliseconds, ARGV[2..] = field/value pairs.
var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV, 2))
redis.call("PEXPIRE", KEYS[1], ARGV[1])
return 1
`)

// RedisStore keeps each record as a Redis hash.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

func NewRedisStore(client redis.UniversalClient, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

var (
	_ Store          = (*RedisStore)(nil)
	_ ReadAndDeleter = (*RedisStore)(nil)
	_ Creator        = (*RedisStore)(nil)
)

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s%s", s.keyPrefix, k)
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) WriteFields(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return s.client.HSet(ctx, s.key(key), flatten(fields)...).Err()
}

func (s *RedisStore) ReadField(ctx context.Context, key, field string) (string, bool, error) {
	val, err := s.client.HGet(ctx, s.key(key), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) SetTTL(ctx context.Context, key string, ttl time.Duration) error {
	ok, err := s.client.PExpire(ctx, s.key(key), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSuchKey
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) ReadAndDelete(ctx context.Context, key string) (map[string]string, bool, error) {
	flat, err := readAndDeleteScript.Run(ctx, s.client, []string{s.key(key)}).StringSlice()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	fields := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		fields[flat[i]] = flat[i+1]
	}
	return fields, true, nil
}

func (s *RedisStore) CreateWithTTL(ctx context.Context, key string, fields map[string]string, ttl time.Duration) (bool, error) {
	args := append([]interface{}{ttl.Milliseconds()}, flatten(fields)...)
	res, err := createScript.Run(ctx, s.client, []string{s.key(key)}, args...).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func flatten(fields map[string]string) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
