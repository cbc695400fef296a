package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const tokenKeyPrefix = "pow:token:"

const fieldIssuedAt = "issued_at"

// TokenStore maps Token records onto a Store. A token's existence is the
// only evidence of its validity.
type TokenStore struct {
	store Store
}

func NewTokenStore(s Store) *TokenStore {
	return &TokenStore{store: s}
}

func tokenKey(id string) string {
	return tokenKeyPrefix + id
}

func (ts *TokenStore) Save(ctx context.Context, t Token, ttl time.Duration) error {
	key := tokenKey(t.ID.String())
	fields := map[string]string{
		fieldIssuedAt: strconv.FormatInt(t.IssuedAt.Unix(), 10),
	}

	if creator, ok := ts.store.(Creator); ok {
		created, err := creator.CreateWithTTL(ctx, key, fields, ttl)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTokenPersist, err)
		}
		if !created {
			return fmt.Errorf("%w: token id collision", ErrTokenPersist)
		}
		return nil
	}

	if err := ts.store.WriteFields(ctx, key, fields); err != nil {
		return errors.Join(
			fmt.Errorf("%w: %v", ErrTokenPersist, err),
			ts.rollback(ctx, key),
		)
	}
	if err := ts.store.SetTTL(ctx, key, ttl); err != nil {
		return errors.Join(
			fmt.Errorf("%w: set token expiry: %v", ErrTokenPersist, err),
			ts.rollback(ctx, key),
		)
	}
	return nil
}

func (ts *TokenStore) rollback(ctx context.Context, key string) error {
	ctx, cancel := rollbackContext(ctx)
	defer cancel()
	if _, err := ts.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("rollback %s: %w", key, err)
	}
	return nil
}

func (ts *TokenStore) Exists(ctx context.Context, id string) (bool, error) {
	return ts.store.Exists(ctx, tokenKey(id))
}
