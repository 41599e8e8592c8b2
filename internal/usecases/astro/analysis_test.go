package astro

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/natal/internal/domain"
)

func snapshotWithChart(t *testing.T) *domain.ChartSnapshot {
	t.Helper()

	canonical, err := ToCanonical(rawPayload(t, validChartFields()))
	require.NoError(t, err)

	return &domain.ChartSnapshot{ChartData: *canonical}
}

func TestGetAnalysis(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown detail level", func(t *testing.T) {
		env := newTestEnv()

		_, _, err := env.service.GetAnalysis(ctx, uuid.New(), "verbose")
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		assert.Empty(t, env.ai.prompts)
	})

	t.Run("cache hit skips generation", func(t *testing.T) {
		env := newTestEnv()
		profileID := uuid.New()
		env.service.StoreAnalysis(ctx, profileID, domain.DetailLevelBasic, "cached reading")

		text, cached, err := env.service.GetAnalysis(ctx, profileID, domain.DetailLevelBasic)
		require.NoError(t, err)
		assert.True(t, cached)
		assert.Equal(t, "cached reading", text)
		assert.Empty(t, env.ai.prompts)
	})

	t.Run("cache miss generates from snapshot", func(t *testing.T) {
		env := newTestEnv()
		env.snapshots.stored = snapshotWithChart(t)
		env.ai.text = "fresh reading"
		profileID := uuid.New()

		text, cached, err := env.service.GetAnalysis(ctx, profileID, domain.DetailLevelBasic)
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Equal(t, "fresh reading", text)

		require.Len(t, env.ai.prompts, 1)
		prompt := env.ai.prompts[0]
		assert.Contains(t, prompt, "Alice")
		assert.Contains(t, prompt, "- Sun: Cancer")
		assert.Contains(t, prompt, "- House 1: Virgo")
		assert.Contains(t, prompt, "Waxing Crescent")
		assert.NotContains(t, prompt, "{{")

		// Результат записан в кэш
		stored, ok := env.service.GetCachedAnalysis(ctx, profileID, domain.DetailLevelBasic)
		assert.True(t, ok)
		assert.Equal(t, "fresh reading", stored)
	})

	t.Run("detailed level uses its own template", func(t *testing.T) {
		env := newTestEnv()
		env.snapshots.stored = snapshotWithChart(t)

		_, _, err := env.service.GetAnalysis(ctx, uuid.New(), domain.DetailLevelDetailed)
		require.NoError(t, err)

		require.Len(t, env.ai.prompts, 1)
		assert.Contains(t, env.ai.prompts[0], "in-depth natal chart reading")
	})

	t.Run("snapshot failure", func(t *testing.T) {
		env := newTestEnv()
		env.snapshots.getErr = errors.New("no rows")

		_, _, err := env.service.GetAnalysis(ctx, uuid.New(), domain.DetailLevelBasic)
		require.Error(t, err)
		assert.Empty(t, env.ai.prompts)
	})

	t.Run("generation failure is not cached", func(t *testing.T) {
		env := newTestEnv()
		env.snapshots.stored = snapshotWithChart(t)
		env.ai.err = errors.New("quota exceeded")
		profileID := uuid.New()

		_, _, err := env.service.GetAnalysis(ctx, profileID, domain.DetailLevelBasic)
		require.Error(t, err)

		_, ok := env.service.GetCachedAnalysis(ctx, profileID, domain.DetailLevelBasic)
		assert.False(t, ok)
	})
}
