package timezone

import (
	"context"
	"fmt"

	"log/slog"

	tzAdapter "github.com/bilgisen/natal/internal/adapters/secondary/timezone"
	"github.com/bilgisen/natal/internal/ports/cache"
	"github.com/bilgisen/natal/internal/ports/service"
)

// Service реализует ITimezoneService с in-memory кэшем lookup'ов.
// Ключ кэша - координаты и момент времени, тот же запрос повторно
// к внешнему API не уходит.
type Service struct {
	client  *tzAdapter.Client
	tzCache cache.ITimezoneCache
	log     *slog.Logger
}

// New создаёт новый сервис разрешения таймзон
func New(client *tzAdapter.Client, tzCache cache.ITimezoneCache, log *slog.Logger) service.ITimezoneService {
	return &Service{
		client:  client,
		tzCache: tzCache,
		log:     log,
	}
}

// Resolve разрешает координаты и момент времени в таймзону
func (s *Service) Resolve(ctx context.Context, lat float64, lng float64, timestamp int64) (cache.TimezoneEntry, error) {
	key := fmt.Sprintf("%f,%f,%d", lat, lng, timestamp)

	if entry, ok := s.tzCache.Get(key); ok {
		return entry, nil
	}

	resp, err := s.client.Lookup(ctx, lat, lng, timestamp)
	if err != nil {
		return cache.TimezoneEntry{}, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	entry := cache.TimezoneEntry{
		TimezoneID:   resp.TimeZoneID,
		TimezoneName: resp.TimeZoneName,
		RawOffset:    resp.RawOffset,
		DSTOffset:    resp.DSTOffset,
	}

	s.tzCache.Put(key, entry)

	s.log.Debug("timezone resolved",
		"lat", lat,
		"lng", lng,
		"timezone_id", entry.TimezoneID,
	)

	return entry, nil
}
