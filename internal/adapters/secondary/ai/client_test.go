package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srvURL string) *Client {
	cfg := &Config{
		BaseURL:     srvURL,
		Model:       "gemini-2.0-flash",
		ApiKey:      "test-key",
		Temperature: 0.7,
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGenerate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var req generateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Contents, 1)
			require.Len(t, req.Contents[0].Parts, 1)
			assert.Equal(t, "write a horoscope", req.Contents[0].Parts[0].Text)
			assert.Equal(t, 2000, req.GenerationConfig.MaxOutputTokens)
			assert.InDelta(t, 0.7, req.GenerationConfig.Temperature, 1e-9)

			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"your stars say hello"}]}}]}`))
		}))
		defer srv.Close()

		text, err := testClient(srv.URL).Generate(context.Background(), "write a horoscope", 2000)
		require.NoError(t, err)
		assert.Equal(t, "your stars say hello", text)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Generate(context.Background(), "prompt", 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status=403")
	})

	t.Run("no candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Generate(context.Background(), "prompt", 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no candidates")
	})
}
