package astro

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/natal/internal/domain"
)

func TestCreateNormalizedNatalChart(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		env := newTestEnv()
		env.astroAPI.raw = rawPayload(t, validChartFields())
		profileID := uuid.New()

		env.service.StoreAnalysis(ctx, profileID, domain.DetailLevelBasic, "stale reading")

		result, err := env.service.CreateNormalizedNatalChart(ctx, validSubject(), "user-1", "", profileID)
		require.NoError(t, err)
		assert.Equal(t, env.charts.id, result.ChartID)
		assert.Equal(t, "Alice", result.Canonical.Name)

		require.Len(t, env.charts.saved, 1)
		saved := env.charts.saved[0]
		assert.Equal(t, profileID, saved.Chart.ProfileID)
		assert.Len(t, saved.Planets, 10)
		assert.Len(t, saved.Houses, 12)

		// Снимок хранит локально пересчитанное время
		require.NotNil(t, env.snapshots.stored)
		assert.Equal(t, "Alice", env.snapshots.stored.ChartData.Name)
		assert.NotZero(t, env.snapshots.stored.Timestamps.JulianDay)

		// Перерасчёт делает старые разборы недействительными
		_, ok := env.service.GetCachedAnalysis(ctx, profileID, domain.DetailLevelBasic)
		assert.False(t, ok)

		require.Len(t, env.producer.events, 1)
		event := env.producer.events[0]
		assert.Equal(t, env.charts.id, event.ChartID)
		assert.Equal(t, profileID, event.ProfileID)
		assert.Equal(t, "Cancer", event.SunSign)
	})

	t.Run("invalid birth time fails before any calls", func(t *testing.T) {
		env := newTestEnv()
		subject := validSubject()
		subject.BirthTime = "25:70"

		_, err := env.service.CreateNormalizedNatalChart(ctx, subject, "user-1", "", uuid.New())
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		assert.Zero(t, env.astroAPI.birthCalls)
		assert.Empty(t, env.charts.saved)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		env := newTestEnv()
		subject := validSubject()
		subject.Latitude = 95

		_, err := env.service.CreateNormalizedNatalChart(ctx, subject, "user-1", "", uuid.New())
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		assert.Zero(t, env.astroAPI.birthCalls)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		env := newTestEnv()
		subject := validSubject()
		subject.Longitude = -181

		_, err := env.service.CreateNormalizedNatalChart(ctx, subject, "user-1", "", uuid.New())
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("astro API failure", func(t *testing.T) {
		env := newTestEnv()
		env.astroAPI.err = errors.New("upstream timeout")

		_, err := env.service.CreateNormalizedNatalChart(ctx, validSubject(), "user-1", "", uuid.New())
		require.Error(t, err)
		assert.Empty(t, env.charts.saved)
	})

	t.Run("incomplete payload is not persisted", func(t *testing.T) {
		env := newTestEnv()
		fields := validChartFields()
		delete(fields, "moon")
		env.astroAPI.raw = rawPayload(t, fields)

		_, err := env.service.CreateNormalizedNatalChart(ctx, validSubject(), "user-1", "", uuid.New())
		require.Error(t, err)
		assert.True(t, domain.IsUpstreamDataError(err))
		assert.Empty(t, env.charts.saved)
		assert.Nil(t, env.snapshots.stored)
	})

	t.Run("save failure", func(t *testing.T) {
		env := newTestEnv()
		env.astroAPI.raw = rawPayload(t, validChartFields())
		env.charts.saveErr = errors.New("deadlock")

		_, err := env.service.CreateNormalizedNatalChart(ctx, validSubject(), "user-1", "", uuid.New())
		require.Error(t, err)
		assert.Nil(t, env.snapshots.stored)
		assert.Empty(t, env.producer.events)
	})

	t.Run("snapshot failure does not fail the pipeline", func(t *testing.T) {
		env := newTestEnv()
		env.astroAPI.raw = rawPayload(t, validChartFields())
		env.snapshots.upsertErr = errors.New("jsonb too large")

		result, err := env.service.CreateNormalizedNatalChart(ctx, validSubject(), "user-1", "", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, env.charts.id, result.ChartID)
		require.Len(t, env.producer.events, 1)
	})

	t.Run("publish failure does not fail the pipeline", func(t *testing.T) {
		env := newTestEnv()
		env.astroAPI.raw = rawPayload(t, validChartFields())
		env.producer.err = errors.New("brokers unreachable")

		_, err := env.service.CreateNormalizedNatalChart(ctx, validSubject(), "user-1", "", uuid.New())
		require.NoError(t, err)
	})

	t.Run("nil producer is tolerated", func(t *testing.T) {
		env := newTestEnv()
		env.astroAPI.raw = rawPayload(t, validChartFields())
		env.service.Producer = nil

		_, err := env.service.CreateNormalizedNatalChart(ctx, validSubject(), "user-1", "", uuid.New())
		require.NoError(t, err)
	})
}

func TestGetNatalChart(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles chart with children", func(t *testing.T) {
		env := newTestEnv()
		profileID := uuid.New()
		chartID := uuid.New()
		env.charts.latest = &domain.NatalChartRecord{
			ID:        chartID,
			ProfileID: profileID,
			SunSign:   "Cancer",
			MoonSign:  "Pisces",
			Ascendant: "Virgo",
		}
		env.charts.planets = []domain.PlanetRecord{
			{NatalChartID: chartID, PlanetName: "Sun", Sign: "Cancer"},
			{NatalChartID: chartID, PlanetName: "Moon", Sign: "Pisces"},
		}
		env.charts.houses = []domain.HouseRecord{
			{NatalChartID: chartID, HouseNumber: 1, Sign: "Virgo", CuspPosition: "12"},
		}
		env.charts.lunar = &domain.LunarPhaseRecord{
			NatalChartID:  chartID,
			MoonPhaseName: "Waxing Crescent",
		}

		details, err := env.service.GetNatalChart(ctx, profileID)
		require.NoError(t, err)
		assert.Equal(t, chartID, details.Chart.ID)
		assert.Equal(t, "Cancer", details.Chart.SunSign)
		require.Len(t, details.Planets, 2)
		assert.Equal(t, "Sun", details.Planets[0].PlanetName)
		require.Len(t, details.Houses, 1)
		assert.Equal(t, "Virgo", details.Houses[0].Sign)
		require.NotNil(t, details.LunarPhase)
		assert.Equal(t, "Waxing Crescent", details.LunarPhase.MoonPhaseName)
	})

	t.Run("missing lunar phase is tolerated", func(t *testing.T) {
		env := newTestEnv()
		env.charts.latest = &domain.NatalChartRecord{ID: uuid.New()}

		details, err := env.service.GetNatalChart(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, details.LunarPhase)
	})

	t.Run("no chart for profile", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.service.GetNatalChart(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	t.Run("read failure", func(t *testing.T) {
		env := newTestEnv()
		env.charts.readErr = errors.New("connection reset")

		_, err := env.service.GetNatalChart(ctx, uuid.New())
		require.Error(t, err)
	})
}
