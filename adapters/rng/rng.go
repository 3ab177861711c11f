package rng

import (
	"context"
	"math/rand"
	"time"
)

// Adapter implements ports.RNGPort. A zero base seed draws a fresh seed from
// the clock for every stream; any other value makes streams reproducible.
type Adapter struct {
	baseSeed int64
}

// NewAdapter creates an RNG adapter with the given base seed
func NewAdapter(baseSeed int64) *Adapter {
	return &Adapter{baseSeed: baseSeed}
}

// Stream derives a generator from the base seed and the session/operation/key triple
func (a *Adapter) Stream(ctx context.Context, sessionID, operation, key string) (*rand.Rand, error) {
	if a.baseSeed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano())), nil
	}

	seed := a.baseSeed
	if sessionID != "" {
		seed = int64(hashString(sessionID)) + seed
	}
	if operation != "" {
		seed = int64(hashString(operation)) + seed
	}
	if key != "" {
		seed = int64(hashString(key)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2
	}
	return hash
}
