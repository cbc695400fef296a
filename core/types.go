package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 6

	ChallengeTTL = 180 * time.Second
	TokenTTL     = 3600 * time.Second

	// PrefixLength is the length of a challenge prefix in hex characters.
	PrefixLength = 32
	// MaxPreimageLength bounds prefix+nonce; the combined length must stay below it.
	MaxPreimageLength = 255
	DigestLength      = 64
)

type Challenge struct {
	ID         uuid.UUID `json:"id"`
	Prefix     string    `json:"prefix"`
	Difficulty int       `json:"difficulty"`
	IssuedAt   time.Time `json:"timestamp"`
}

type Token struct {
	ID       uuid.UUID `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

type VerifyStatus string

const (
	StatusOK   VerifyStatus = "OK"
	StatusFail VerifyStatus = "FAIL"
)

// VerifyResult is the outcome of a Verify call that reached a decision.
// Token is only set when Status is StatusOK.
type VerifyResult struct {
	Status VerifyStatus
	Token  Token
}

type TokenStatus string

const (
	TokenValid   TokenStatus = "VALID"
	TokenInvalid TokenStatus = "INVALID"
)

var (
	ErrInvalidInput        = errors.New("invalid input parameters")
	ErrInputTooLong        = errors.New("input too long")
	ErrNotFound            = errors.New("challenge not found or expired")
	ErrExpired             = errors.New("challenge expired")
	ErrMalformedChallenge  = errors.New("invalid challenge data")
	ErrDuplicateID         = errors.New("challenge ID already exists")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrStorePartialFailure = errors.New("store partial failure")
	ErrTokenPersist        = errors.New("failed to save token")
	ErrEntropy             = errors.New("random source failure")
	ErrNoSuchKey           = errors.New("no such key")
)

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInputTooLong)
}

// IsChallengeUnusable reports whether err means the challenge cannot be
// redeemed. Callers outside the protocol should not tell these apart.
func IsChallengeUnusable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired) || errors.Is(err, ErrMalformedChallenge)
}
