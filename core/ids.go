package core

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// IDGenerator draws challenge ids, token ids and prefixes from one
// explicitly injected random source.
type IDGenerator struct {
	rand io.Reader
}

// NewIDGenerator returns a generator reading from r, or from crypto/rand
// when r is nil.
func NewIDGenerator(r io.Reader) *IDGenerator {
	if r == nil {
		r = rand.Reader
	}
	return &IDGenerator{rand: r}
}

func (g *IDGenerator) ChallengeID() (uuid.UUID, error) {
	return g.newUUID()
}

func (g *IDGenerator) TokenID() (uuid.UUID, error) {
	return g.newUUID()
}

func (g *IDGenerator) newUUID() (uuid.UUID, error) {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return id, nil
}

// Prefix returns PrefixLength lowercase hex characters of fresh entropy.
func (g *IDGenerator) Prefix() (string, error) {
	buf := make([]byte, PrefixLength/2)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return hex.EncodeToString(buf), nil
}
