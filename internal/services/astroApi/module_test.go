package astroApi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astroApiAdapter "github.com/bilgisen/natal/internal/adapters/secondary/astroApi"
	"github.com/bilgisen/natal/internal/domain"
)

func newTestService(srvURL string) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := astroApiAdapter.NewClient(&astroApiAdapter.Config{
		BaseURL: srvURL,
		Host:    "astrologer.test",
		ApiKey:  "test-key",
	}, log)
	return New(client, log).(*Service)
}

func subject() domain.BirthSubject {
	return domain.BirthSubject{
		Name:      "Alice",
		BirthDate: time.Date(1990, 7, 15, 0, 0, 0, 0, time.UTC),
		BirthTime: "08:30",
		City:      "Istanbul",
		Country:   "Turkey",
		Latitude:  41.0082,
		Longitude: 28.9784,
		Timezone:  "Europe/Istanbul",
	}
}

func TestServiceFetchBirthData(t *testing.T) {
	t.Run("builds request from subject", func(t *testing.T) {
		var captured astroApiAdapter.BirthDataRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{"status":"OK","data":{"name":"Alice"}}`))
		}))
		defer srv.Close()

		raw, err := newTestService(srv.URL).FetchBirthData(context.Background(), subject())
		require.NoError(t, err)
		assert.Contains(t, raw, "name")

		assert.Equal(t, 1990, captured.Subject.Year)
		assert.Equal(t, 7, captured.Subject.Month)
		assert.Equal(t, 15, captured.Subject.Day)
		assert.Equal(t, 8, captured.Subject.Hour)
		assert.Equal(t, 30, captured.Subject.Minute)
		assert.Equal(t, "TR", captured.Subject.Nation)
		assert.Equal(t, "Europe/Istanbul", captured.Subject.Timezone)
		assert.Equal(t, "Tropic", captured.Subject.ZodiacType)
		assert.Equal(t, "P", captured.Subject.HousesSystemIdentifier)
		assert.Equal(t, "Apparent Geocentric", captured.Subject.PerspectiveType)
		assert.Equal(t, "classic", captured.Theme)
		assert.Equal(t, "EN", captured.Language)
		assert.False(t, captured.WheelOnly)
	})

	t.Run("empty timezone defaults to UTC", func(t *testing.T) {
		var captured astroApiAdapter.BirthDataRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{"status":"OK","data":{"name":"Alice"}}`))
		}))
		defer srv.Close()

		s := subject()
		s.Timezone = ""

		_, err := newTestService(srv.URL).FetchBirthData(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, "UTC", captured.Subject.Timezone)
	})

	t.Run("unknown country falls back", func(t *testing.T) {
		var captured astroApiAdapter.BirthDataRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{"status":"OK","data":{"name":"Alice"}}`))
		}))
		defer srv.Close()

		s := subject()
		s.Country = "Atlantis"

		_, err := newTestService(srv.URL).FetchBirthData(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, "AT", captured.Subject.Nation)
	})

	t.Run("bad birth time fails before the request", func(t *testing.T) {
		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests++
			_, _ = w.Write([]byte(`{"status":"OK","data":{}}`))
		}))
		defer srv.Close()

		s := subject()
		s.BirthTime = "noon"

		_, err := newTestService(srv.URL).FetchBirthData(context.Background(), s)
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		assert.Zero(t, requests)
	})
}

func TestServiceFetchCurrentTransits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/now", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"OK","data":{"sun":{"sign":"Virgo"}}}`))
	}))
	defer srv.Close()

	raw, err := newTestService(srv.URL).FetchCurrentTransits(context.Background())
	require.NoError(t, err)
	assert.Contains(t, raw, "sun")
}
