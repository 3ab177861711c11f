package rng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamIsReproducibleWithSeed(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(42)

	r1, err := a.Stream(ctx, "session", "project", "Apollo")
	require.NoError(t, err)
	r2, err := a.Stream(ctx, "session", "project", "Apollo")
	require.NoError(t, err)

	assert.Equal(t, r1.Perm(20), r2.Perm(20))
}

func TestStreamVariesByKey(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(42)

	r1, _ := a.Stream(ctx, "session", "project", "Apollo")
	r2, _ := a.Stream(ctx, "session", "project", "Gemini")

	assert.NotEqual(t, r1.Perm(20), r2.Perm(20))
}

func TestStreamWithoutSeedIsUsable(t *testing.T) {
	r, err := NewAdapter(0).Stream(context.Background(), "session", "project", "Apollo")
	require.NoError(t, err)
	assert.Len(t, r.Perm(5), 5)
}
