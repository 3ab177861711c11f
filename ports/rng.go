package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for reproducible sampling
type RNGPort interface {
	// Stream creates an RNG stream for one operation within a session.
	// With a fixed base seed the same session/operation/key yields the same stream.
	Stream(ctx context.Context, sessionID, operation, key string) (*rand.Rand, error)
}
