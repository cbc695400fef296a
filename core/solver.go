package core

import (
	"context"
	"strconv"
)

// Solution is a nonce together with the digest it produces.
type Solution struct {
	Nonce string
	Hash  string
}

// Solve searches decimal nonces 0, 1, 2, ... until Hash(prefix+nonce)
// meets difficulty. It is the client half of the protocol.
func Solve(ctx context.Context, prefix string, difficulty int) (Solution, error) {
	difficulty = ClampDifficulty(difficulty)
	for n := uint64(0); ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return Solution{}, err
			}
		}
		nonce := strconv.FormatUint(n, 10)
		digest := Hash(prefix + nonce)
		if MeetsDifficulty(digest, difficulty) {
			return Solution{Nonce: nonce, Hash: digest}, nil
		}
	}
}
