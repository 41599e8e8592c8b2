package astro

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
)

// CreateChartResult - результат расчёта и сохранения натальной карты
type CreateChartResult struct {
	ChartID   uuid.UUID
	Canonical *domain.CanonicalBirthData
}

// CreateNormalizedNatalChart - единая точка входа пайплайна карты:
// валидация ввода, вызов внешнего астро-API, нормализация ответа,
// транзакционное сохранение, снимок на профиле, инвалидация разборов
// и публикация события.
func (s *Service) CreateNormalizedNatalChart(
	ctx context.Context,
	subject domain.BirthSubject,
	userID string,
	birthPlaceID string,
	profileID uuid.UUID,
) (*CreateChartResult, error) {
	// Fail fast: ошибки ввода ловятся до любых внешних вызовов
	if _, _, err := subject.Clock(); err != nil {
		return nil, domain.WrapValidationError(err)
	}
	if subject.Latitude < -90 || subject.Latitude > 90 {
		return nil, domain.WrapValidationError(fmt.Errorf("latitude %f is out of range", subject.Latitude))
	}
	if subject.Longitude < -180 || subject.Longitude > 180 {
		return nil, domain.WrapValidationError(fmt.Errorf("longitude %f is out of range", subject.Longitude))
	}

	raw, err := s.AstroAPIService.FetchBirthData(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch birth data: %w", err)
	}

	canonical, err := ToCanonical(raw)
	if err != nil {
		return nil, err
	}

	normalized, err := s.Normalize(ctx, canonical, profileID, userID, birthPlaceID)
	if err != nil {
		return nil, err
	}

	chartID, err := s.ChartRepo.Save(ctx, normalized)
	if err != nil {
		return nil, err
	}

	// Снимок хранит локально пересчитанное время: полям времени из
	// ответа внешнего API доверять нельзя
	timestamps := DeriveTimestamps(
		normalized.Chart.SubjectBirthDate,
		normalized.Chart.SubjectBirthTime,
		canonical.TzStr,
	)
	snapshot := domain.ChartSnapshot{
		ChartData:  *canonical,
		Timestamps: timestamps,
	}
	if err := s.SnapshotRepo.Upsert(ctx, profileID, snapshot); err != nil {
		// Карта уже сохранена, снимок догонится при следующем перерасчёте
		s.Log.Error("failed to upsert chart snapshot",
			"error", err,
			"profile_id", profileID,
			"chart_id", chartID,
		)
	}

	// Свежая карта делает закэшированные разборы устаревшими
	s.InvalidateAnalysis(ctx, profileID)

	s.publishChartCalculated(ctx, chartID, profileID, normalized.Chart)

	s.Log.Info("natal chart created",
		"chart_id", chartID,
		"profile_id", profileID,
		"sun_sign", normalized.Chart.SunSign,
	)

	return &CreateChartResult{
		ChartID:   chartID,
		Canonical: canonical,
	}, nil
}

// ChartDetails - собранная для чтения карта профиля: заголовок и
// дочерние наборы
type ChartDetails struct {
	Chart      domain.NatalChartRecord  `json:"chart"`
	Planets    []domain.PlanetRecord    `json:"planets"`
	Houses     []domain.HouseRecord     `json:"houses"`
	LunarPhase *domain.LunarPhaseRecord `json:"lunar_phase,omitempty"`
}

// GetNatalChart возвращает последнюю рассчитанную карту профиля вместе
// с планетами, домами и лунной фазой. Перерасчёт не трогает старые
// строки, поэтому читается самая свежая по calculated_at.
func (s *Service) GetNatalChart(ctx context.Context, profileID uuid.UUID) (*ChartDetails, error) {
	chart, err := s.ChartRepo.GetLatestByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	planets, err := s.ChartRepo.GetPlanets(ctx, chart.ID)
	if err != nil {
		return nil, err
	}

	houses, err := s.ChartRepo.GetHouses(ctx, chart.ID)
	if err != nil {
		return nil, err
	}

	lunarPhase, err := s.ChartRepo.GetLunarPhase(ctx, chart.ID)
	if err != nil {
		return nil, err
	}

	return &ChartDetails{
		Chart:      *chart,
		Planets:    planets,
		Houses:     houses,
		LunarPhase: lunarPhase,
	}, nil
}

// publishChartCalculated отправляет событие downstream-консьюмерам,
// ошибка публикации не фатальна для пайплайна
func (s *Service) publishChartCalculated(ctx context.Context, chartID uuid.UUID, profileID uuid.UUID, header domain.NatalChartRecord) {
	if s.Producer == nil {
		return
	}

	event := domain.ChartCalculatedEvent{
		ChartID:      chartID,
		ProfileID:    profileID,
		SunSign:      header.SunSign,
		MoonSign:     header.MoonSign,
		Ascendant:    header.Ascendant,
		CalculatedAt: time.Now().UTC(),
	}

	if err := s.Producer.SendChartCalculated(ctx, event); err != nil {
		s.Log.Warn("failed to publish chart calculated event",
			"error", err,
			"chart_id", chartID,
		)
	}
}
