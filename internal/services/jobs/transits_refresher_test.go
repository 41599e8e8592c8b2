package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/natal/internal/domain"
	astroUsecase "github.com/bilgisen/natal/internal/usecases/astro"
)

type stubAstroAPI struct {
	err   error
	calls int
}

func (s *stubAstroAPI) FetchBirthData(_ context.Context, _ domain.BirthSubject) (domain.RawChartPayload, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAstroAPI) FetchCurrentTransits(_ context.Context) (domain.RawChartPayload, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return domain.RawChartPayload{"sun": json.RawMessage(`{"sign":"Virgo"}`)}, nil
}

func TestTransitsRefresherNextRun(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 25, 42, 0, time.UTC)
	job := NewTransitsRefresher(nil, nil)

	next := job.NextRun(now)
	assert.Equal(t, time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC), next)

	// Точно на границе часа следующий запуск через час
	onTheHour := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 31, 16, 0, 0, 0, time.UTC), job.NextRun(onTheHour))
}

func TestTransitsRefresherRun(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("warms the transits cache", func(t *testing.T) {
		api := &stubAstroAPI{}
		service := &astroUsecase.Service{AstroAPIService: api, Log: log}
		job := NewTransitsRefresher(service, log)

		require.NoError(t, job.Run(context.Background()))
		assert.Equal(t, 1, api.calls)
	})

	t.Run("propagates fetch errors for retry", func(t *testing.T) {
		api := &stubAstroAPI{err: errors.New("upstream timeout")}
		service := &astroUsecase.Service{AstroAPIService: api, Log: log}
		job := NewTransitsRefresher(service, log)

		require.Error(t, job.Run(context.Background()))
	})
}
