package astro

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bilgisen/natal/internal/usecases/astro/texts"
)

const horoscopeMaxTokens = 2000

// GetCurrentTransits возвращает текущие позиции планет как JSON-строку.
// Значение кэшируется на календарный день с часовым TTL.
func (s *Service) GetCurrentTransits(ctx context.Context) (string, error) {
	key := dailyKey(transitsKeyPrefix, time.Now())

	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	raw, err := s.AstroAPIService.FetchCurrentTransits(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch current transits: %w", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transits: %w", err)
	}

	s.cacheSet(ctx, key, string(data), dailyTTL)

	return string(data), nil
}

// GetDailyHoroscope возвращает дневной гороскоп: из кэша либо генерацией
// по текущим транзитам. Если транзиты недоступны, промпт упрощается до
// безтранзитного, день без гороскопа не остаётся.
// Второй результат - признак попадания в кэш.
func (s *Service) GetDailyHoroscope(ctx context.Context) (string, bool, error) {
	now := time.Now()
	key := dailyKey(horoscopeKeyPrefix, now)

	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, true, nil
	}

	date := now.UTC().Format("2006-01-02")

	template := texts.DailyHoroscopeTemplate
	vars := map[string]interface{}{
		"date": date,
	}

	transits, err := s.GetCurrentTransits(ctx)
	if err != nil {
		s.Log.Warn("transits unavailable, falling back to simple horoscope prompt",
			"error", err,
		)
		template = texts.DailyHoroscopeSimpleTemplate
	} else {
		vars["transits"] = transits
	}

	prompt := texts.Render(template, vars)

	text, err := s.AIService.Generate(ctx, prompt, horoscopeMaxTokens)
	if err != nil {
		return "", false, fmt.Errorf("failed to generate daily horoscope: %w", err)
	}

	s.cacheSet(ctx, key, text, dailyTTL)

	s.Log.Info("daily horoscope generated", "date", date)

	return text, false, nil
}
