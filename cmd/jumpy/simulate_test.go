package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/jumpy-bird/internal/config"
)

func TestSimulateIsDeterministicPerSeed(t *testing.T) {
	cfg := config.DefaultJumpyConfig()
	ctx := context.Background()

	first, err := simulate(ctx, cfg, 42, 4, 1.0/60.0, 20*time.Second)
	require.NoError(t, err)
	second, err := simulate(ctx, cfg, 42, 4, 1.0/60.0, 20*time.Second)
	require.NoError(t, err)

	require.Len(t, first, 4)
	for i := range first {
		assert.Equal(t, int64(42+i), first[i].seed)
		assert.Equal(t, first[i].run.FinalScore, second[i].run.FinalScore, "seed %d", first[i].seed)
		assert.Equal(t, first[i].run.ElapsedActiveTime, second[i].run.ElapsedActiveTime, "seed %d", first[i].seed)
		assert.Equal(t, first[i].ended, second[i].ended)
		assert.LessOrEqual(t, first[i].run.ElapsedActiveTime, 20*time.Second+time.Second/60)
	}
}

func TestSimulateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := simulate(ctx, config.DefaultJumpyConfig(), 1, 3, 1.0/60.0, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
