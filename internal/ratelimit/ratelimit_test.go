package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_BurstThenBlocked(t *testing.T) {
	rl := New(1, 3)

	passed := 0
	for range 5 {
		if rl.Allow("books.googleapis.com") {
			passed++
		}
	}

	assert.Equal(t, 3, passed)
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	rl := New(1, 1)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
}

func TestWait_RespectsContextCancellation(t *testing.T) {
	rl := New(0.001, 1)
	require.True(t, rl.Allow("k"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx, "k")
	assert.Error(t, err)
}

func TestWait_AllowsWithinBurst(t *testing.T) {
	rl := New(100, 2)

	ctx := context.Background()
	require.NoError(t, rl.Wait(ctx, "k"))
	require.NoError(t, rl.Wait(ctx, "k"))
}
