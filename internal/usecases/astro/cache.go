package astro

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
	"github.com/bilgisen/natal/internal/ports/cache"
)

const (
	analysisKeyPrefix  = "astroAnalysis:"
	horoscopeKeyPrefix = "dailyHoroscopeData:"
	transitsKeyPrefix  = "currentTransitsData:"

	// Разбор валиден, пока не изменились данные рождения профиля,
	// а не по календарю
	analysisTTL = 365 * 24 * time.Hour

	// Дневные ключи зависят от транзитов, им короткий TTL
	dailyTTL = time.Hour
)

func analysisCacheKey(profileID uuid.UUID, detailLevel domain.DetailLevel) string {
	return analysisKeyPrefix + profileID.String() + ":" + string(detailLevel)
}

// GetCachedAnalysis читает разбор из кэша. Недоступность кэша
// неотличима от промаха: генерацию это не блокирует.
func (s *Service) GetCachedAnalysis(ctx context.Context, profileID uuid.UUID, detailLevel domain.DetailLevel) (string, bool) {
	return s.cacheGet(ctx, analysisCacheKey(profileID, detailLevel))
}

// StoreAnalysis пишет разбор в кэш с годовым TTL.
// Ошибка записи не пробрасывается, только логируется.
func (s *Service) StoreAnalysis(ctx context.Context, profileID uuid.UUID, detailLevel domain.DetailLevel, text string) {
	s.cacheSet(ctx, analysisCacheKey(profileID, detailLevel), text, analysisTTL)
}

// InvalidateAnalysis безусловно удаляет оба ключа разбора профиля.
// Вызывается при изменении данных рождения и после перерасчёта карты.
func (s *Service) InvalidateAnalysis(ctx context.Context, profileID uuid.UUID) {
	if s.Cache == nil {
		return
	}
	for _, detailLevel := range domain.DetailLevels {
		key := analysisCacheKey(profileID, detailLevel)
		if err := s.Cache.Delete(ctx, key); err != nil {
			s.Log.Warn("failed to invalidate analysis cache",
				"error", err,
				"key", key,
			)
		}
	}
	s.Log.Debug("analysis cache invalidated", "profile_id", profileID)
}

// cacheGet возвращает значение и признак попадания; любая ошибка
// бэкенда деградирует до промаха
func (s *Service) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.Cache == nil {
		return "", false
	}
	value, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			s.Log.Warn("cache read failed, treating as miss",
				"error", err,
				"key", key,
			)
		}
		return "", false
	}
	return value, true
}

// cacheSet пишет значение, ошибка бэкенда только логируется
func (s *Service) cacheSet(ctx context.Context, key string, value string, ttl time.Duration) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, value, ttl); err != nil {
		s.Log.Warn("cache write failed, skipping",
			"error", err,
			"key", key,
		)
	}
}

// dailyKey собирает календарный ключ кэша на сегодняшнюю дату
func dailyKey(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s", prefix, now.UTC().Format("2006-01-02"))
}
