package core

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"log/slog"
	"time"
)

const defaultOpTimeout = 2 * time.Second

// Manager runs the challenge protocol: Issue, Verify and Introspect. It
// keeps no mutable state of its own; all coordination happens in the Store.
type Manager struct {
	challenges   *ChallengeStore
	tokens       *TokenStore
	ids          *IDGenerator
	now          func() time.Time
	log          *slog.Logger
	challengeTTL time.Duration
	tokenTTL     time.Duration
	opTimeout    time.Duration
}

type Config struct {
	Store Store
	// Now defaults to time.Now.
	Now func() time.Time
	// Rand is the entropy source for ids and prefixes; defaults to crypto/rand.
	Rand   io.Reader
	Logger *slog.Logger

	ChallengeTTL time.Duration
	TokenTTL     time.Duration
	// OpTimeout bounds every operation, including its Store calls.
	OpTimeout time.Duration
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	challengeTTL := cfg.ChallengeTTL
	if challengeTTL <= 0 {
		challengeTTL = ChallengeTTL
	}
	tokenTTL := cfg.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = TokenTTL
	}
	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &Manager{
		challenges:   NewChallengeStore(cfg.Store),
		tokens:       NewTokenStore(cfg.Store),
		ids:          NewIDGenerator(cfg.Rand),
		now:          nowFn,
		log:          logger,
		challengeTTL: challengeTTL,
		tokenTTL:     tokenTTL,
		opTimeout:    opTimeout,
	}, nil
}

// Issue creates a challenge at the requested difficulty, clamped into
// [MinDifficulty, MaxDifficulty].
func (m *Manager) Issue(ctx context.Context, requestedDifficulty int) (Challenge, error) {
	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	difficulty := ClampDifficulty(requestedDifficulty)

	id, err := m.ids.ChallengeID()
	if err != nil {
		return Challenge{}, err
	}
	prefix, err := m.ids.Prefix()
	if err != nil {
		return Challenge{}, err
	}

	c := Challenge{
		ID:         id,
		Prefix:     prefix,
		Difficulty: difficulty,
		IssuedAt:   time.Unix(m.now().Unix(), 0),
	}
	if err := m.challenges.Create(ctx, c, m.challengeTTL); err != nil {
		m.log.Warn("issue challenge failed", "challenge_id", id.String(), "err", err)
		return Challenge{}, err
	}

	recordIssue(difficulty)
	m.log.Debug("challenge issued", "challenge_id", id.String(), "difficulty", difficulty)
	return c, nil
}

// Verify redeems a challenge. A wrong solution is not an error: it yields
// StatusFail. Either way the challenge is consumed and a second call with
// the same id returns ErrNotFound.
func (m *Manager) Verify(ctx context.Context, challengeID, nonce, candidateHash string) (res VerifyResult, err error) {
	defer func() {
		verifications.WithLabelValues(resultLabel(string(res.Status), err)).Inc()
	}()

	if challengeID == "" || nonce == "" || candidateHash == "" {
		return VerifyResult{}, ErrInvalidInput
	}
	if PrefixLength+len(nonce) >= MaxPreimageLength {
		return VerifyResult{}, ErrInputTooLong
	}

	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	c, err := m.challenges.Take(ctx, challengeID)
	if err != nil {
		return VerifyResult{}, err
	}

	if m.now().Unix()-c.IssuedAt.Unix() > int64(m.challengeTTL/time.Second) {
		m.log.Debug("challenge expired", "challenge_id", challengeID)
		return VerifyResult{}, ErrExpired
	}
	if len(c.Prefix)+len(nonce) >= MaxPreimageLength {
		return VerifyResult{}, ErrInputTooLong
	}

	digest := Hash(c.Prefix + nonce)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(candidateHash)) != 1 ||
		!MeetsDifficulty(digest, c.Difficulty) {
		m.log.Debug("challenge failed", "challenge_id", challengeID)
		return VerifyResult{Status: StatusFail}, nil
	}

	tokenID, err := m.ids.TokenID()
	if err != nil {
		return VerifyResult{}, err
	}
	t := Token{ID: tokenID, IssuedAt: time.Unix(m.now().Unix(), 0)}
	if err := m.tokens.Save(ctx, t, m.tokenTTL); err != nil {
		m.log.Error("token persist failed", "challenge_id", challengeID, "err", err)
		return VerifyResult{}, err
	}

	m.log.Debug("challenge solved", "challenge_id", challengeID, "token_id", tokenID.String())
	return VerifyResult{Status: StatusOK, Token: t}, nil
}

// Introspect reports whether tokenID names a live token.
func (m *Manager) Introspect(ctx context.Context, tokenID string) (status TokenStatus, err error) {
	defer func() {
		introspections.WithLabelValues(resultLabel(string(status), err)).Inc()
	}()

	if tokenID == "" {
		return "", ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	ok, err := m.tokens.Exists(ctx, tokenID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return TokenInvalid, nil
	}
	return TokenValid, nil
}
