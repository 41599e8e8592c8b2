package astroApi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/bilgisen/natal/internal/domain"
)

const (
	GetBirthData = "api/v4/birth-data"
	GetNow       = "api/v4/now"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент для работы с астрологическим API
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент для работы с астро-API
func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		Log: log,
	}
}

// buildURL собирает полный URL из BaseURL и endpoint
func (c *Client) buildURL(endpoint string) string {
	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")
	return baseURL + "/" + path.Join(endpoint)
}

// setHeaders устанавливает стандартные заголовки для запросов к API
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.cfg.ApiKey)
	req.Header.Set("x-rapidapi-host", c.cfg.Host)
}

// FetchBirthData рассчитывает данные рождения через API.
// Возвращает сырой payload из конверта ответа, без разбора полей.
func (c *Client) FetchBirthData(ctx context.Context, req BirthDataRequest) (domain.RawChartPayload, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := c.buildURL(GetBirthData)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	c.setHeaders(httpReq)

	return c.doRaw(httpReq)
}

// FetchNow получает текущие позиции планет (транзиты)
func (c *Client) FetchNow(ctx context.Context) (domain.RawChartPayload, error) {
	url := c.buildURL(GetNow)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	c.setHeaders(httpReq)

	return c.doRaw(httpReq)
}

// doRaw выполняет запрос, проверяет статус и возвращает сырой payload.
// Конверт {status, data} опционален: если поля data нет, тело трактуется
// как сам payload.
func (c *Client) doRaw(httpReq *http.Request) (domain.RawChartPayload, error) {
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	rawJSON := string(body)

	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("astro API returned non-200 status",
			"status_code", resp.StatusCode,
			"url", httpReq.URL.Path,
			"body_preview", truncateString(rawJSON, 200),
		)
		return nil, fmt.Errorf("astro API error [status=%d]: %s", resp.StatusCode, truncateString(rawJSON, 500))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.Log.Debug("failed to unmarshal astro API response",
			"error", err,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(rawJSON, 200),
		)
		return nil, fmt.Errorf("astro API unmarshal failed [status=%d]: %w", resp.StatusCode, err)
	}

	if envelope.Data != nil {
		return envelope.Data, nil
	}

	if envelope.Status != "" {
		return nil, fmt.Errorf("astro API response has no data [status=%s]", envelope.Status)
	}

	var payload domain.RawChartPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return nil, fmt.Errorf("astro API response has no data [status=%d]", resp.StatusCode)
	}

	return payload, nil
}
