package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mixmate/internal/config"
)

func easySampleConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, config.ApplyPreset(&cfg, config.DifficultyEasy))
	cfg.Mix.Rounds = 200
	return cfg
}

func TestSamplePuzzlesCountsEveryPuzzle(t *testing.T) {
	cfg := easySampleConfig(t)

	for _, workers := range []int{1, 3, 8, 50} {
		report, err := samplePuzzles(context.Background(), cfg, 25, workers, 11)
		require.NoError(t, err)
		assert.Equal(t, 25, report.Puzzles, "workers=%d", workers)
		assert.LessOrEqual(t, report.Solved, report.Sorted)
		assert.LessOrEqual(t, report.Mixed, 25*cfg.ToPuzzle().Bottles())
	}
}

func TestSamplePuzzlesReproducible(t *testing.T) {
	cfg := easySampleConfig(t)

	a, err := samplePuzzles(context.Background(), cfg, 40, 4, 99)
	require.NoError(t, err)
	b, err := samplePuzzles(context.Background(), cfg, 40, 4, 99)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSamplePuzzlesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := samplePuzzles(ctx, easySampleConfig(t), 10, 2, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSamplePuzzlesZero(t *testing.T) {
	report, err := samplePuzzles(context.Background(), easySampleConfig(t), 0, 4, 1)
	require.NoError(t, err)
	assert.Zero(t, report.Puzzles)
	assert.Zero(t, report.mean(report.Mixed))
}

func TestSampleReportMean(t *testing.T) {
	r := sampleReport{Puzzles: 4, Mixed: 10}
	assert.InDelta(t, 2.5, r.mean(r.Mixed), 1e-9)
}
