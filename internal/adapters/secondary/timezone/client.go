package timezone

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client - клиент Google Time Zone API
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент для разрешения таймзон
func NewClient(cfg *Config, log *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Log: log,
	}
}

// LookupResponse представляет ответ Time Zone API
type LookupResponse struct {
	Status       string `json:"status"`
	TimeZoneID   string `json:"timeZoneId"`
	TimeZoneName string `json:"timeZoneName"`
	RawOffset    int    `json:"rawOffset"`
	DSTOffset    int    `json:"dstOffset"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Lookup разрешает координаты и момент времени в таймзону
func (c *Client) Lookup(ctx context.Context, lat float64, lng float64, timestamp int64) (*LookupResponse, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	params.Set("key", c.cfg.ApiKey)

	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("timezone API returned non-200 status",
			"status_code", resp.StatusCode,
		)
		return nil, fmt.Errorf("timezone API error [status=%d]", resp.StatusCode)
	}

	var lookupResp LookupResponse
	if err := json.Unmarshal(body, &lookupResp); err != nil {
		return nil, fmt.Errorf("timezone API unmarshal failed: %w", err)
	}

	if lookupResp.Status != "OK" {
		return nil, fmt.Errorf("timezone API error [status=%s]: %s", lookupResp.Status, lookupResp.ErrorMessage)
	}

	return &lookupResp, nil
}
