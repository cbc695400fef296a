package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const challengeKeyPrefix = "pow:challenge:"

const (
	fieldID         = "id"
	fieldPrefix     = "prefix"
	fieldDifficulty = "difficulty"
	fieldTimestamp  = "timestamp"
)

var challengeFields = []string{fieldID, fieldPrefix, fieldDifficulty, fieldTimestamp}

// ChallengeStore maps Challenge records onto a Store.
type ChallengeStore struct {
	store Store
}

func NewChallengeStore(s Store) *ChallengeStore {
	return &ChallengeStore{store: s}
}

func challengeKey(id string) string {
	return challengeKeyPrefix + id
}

// Create persists c with the given validity window. It fails with
// ErrDuplicateID when a record already exists under c.ID and never leaves
// a record without a deadline behind.
func (cs *ChallengeStore) Create(ctx context.Context, c Challenge, ttl time.Duration) error {
	key := challengeKey(c.ID.String())
	fields := map[string]string{
		fieldID:         c.ID.String(),
		fieldPrefix:     c.Prefix,
		fieldDifficulty: strconv.Itoa(c.Difficulty),
		fieldTimestamp:  strconv.FormatInt(c.IssuedAt.Unix(), 10),
	}

	if creator, ok := cs.store.(Creator); ok {
		created, err := creator.CreateWithTTL(ctx, key, fields, ttl)
		if err != nil {
			return fmt.Errorf("%w: create challenge: %v", ErrStoreUnavailable, err)
		}
		if !created {
			return ErrDuplicateID
		}
		return nil
	}

	exists, err := cs.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: check challenge: %v", ErrStoreUnavailable, err)
	}
	if exists {
		return ErrDuplicateID
	}
	if err := cs.store.WriteFields(ctx, key, fields); err != nil {
		return errors.Join(
			fmt.Errorf("%w: write challenge: %v", ErrStoreUnavailable, err),
			cs.rollback(ctx, key),
		)
	}
	if err := cs.store.SetTTL(ctx, key, ttl); err != nil {
		return errors.Join(
			fmt.Errorf("%w: set challenge expiry: %v", ErrStorePartialFailure, err),
			cs.rollback(ctx, key),
		)
	}
	return nil
}

func (cs *ChallengeStore) rollback(ctx context.Context, key string) error {
	ctx, cancel := rollbackContext(ctx)
	defer cancel()
	if _, err := cs.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("rollback %s: %w", key, err)
	}
	return nil
}

// Take fetches the challenge under id and removes it in the same step.
// Of several concurrent callers only one receives the record; the rest
// get ErrNotFound.
func (cs *ChallengeStore) Take(ctx context.Context, id string) (Challenge, error) {
	key := challengeKey(id)

	if rd, ok := cs.store.(ReadAndDeleter); ok {
		fields, found, err := rd.ReadAndDelete(ctx, key)
		if err != nil {
			return Challenge{}, fmt.Errorf("%w: take challenge: %v", ErrStoreUnavailable, err)
		}
		if !found {
			return Challenge{}, ErrNotFound
		}
		return parseChallenge(fields)
	}

	fields := make(map[string]string, len(challengeFields))
	for _, f := range challengeFields {
		v, found, err := cs.store.ReadField(ctx, key, f)
		if err != nil {
			return Challenge{}, fmt.Errorf("%w: read challenge: %v", ErrStoreUnavailable, err)
		}
		if found {
			fields[f] = v
		}
	}

	// The delete arbitrates: whoever removes the record owns it. It runs
	// even when fields are missing so an inspected record never lingers.
	deleted, err := cs.store.Delete(ctx, key)
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: delete challenge: %v", ErrStoreUnavailable, err)
	}
	if !deleted {
		return Challenge{}, ErrNotFound
	}
	return parseChallenge(fields)
}

func parseChallenge(fields map[string]string) (Challenge, error) {
	id, err := uuid.Parse(fields[fieldID])
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: id: %v", ErrMalformedChallenge, err)
	}
	prefix := fields[fieldPrefix]
	if prefix == "" {
		return Challenge{}, fmt.Errorf("%w: missing prefix", ErrMalformedChallenge)
	}
	difficulty, err := strconv.Atoi(fields[fieldDifficulty])
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: difficulty: %v", ErrMalformedChallenge, err)
	}
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return Challenge{}, fmt.Errorf("%w: difficulty %d out of range", ErrMalformedChallenge, difficulty)
	}
	ts, err := strconv.ParseInt(fields[fieldTimestamp], 10, 64)
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: timestamp: %v", ErrMalformedChallenge, err)
	}
	return Challenge{
		ID:         id,
		Prefix:     prefix,
		Difficulty: difficulty,
		IssuedAt:   time.Unix(ts, 0),
	}, nil
}
