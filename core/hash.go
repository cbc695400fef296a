package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of preimage.
func Hash(preimage string) string {
	sum := sha256.Sum256([]byte(preimage))
	return hex.EncodeToString(sum[:])
}

// MeetsDifficulty reports whether the first difficulty hex characters of
// digest are all '0'. Callers clamp difficulty into [MinDifficulty, MaxDifficulty].
func MeetsDifficulty(digest string, difficulty int) bool {
	if len(digest) < difficulty {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if digest[i] != '0' {
			return false
		}
	}
	return true
}

func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
