package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
)

// IChartRepository интерфейс для работы с натальными картами.
// Save пишет заголовок и дочерние строки в одной транзакции: либо
// сохраняется вся карта, либо ничего.
type IChartRepository interface {
	Save(ctx context.Context, chart domain.NormalizedChart) (uuid.UUID, error)
	GetLatestByProfile(ctx context.Context, profileID uuid.UUID) (*domain.NatalChartRecord, error)
	GetPlanets(ctx context.Context, chartID uuid.UUID) ([]domain.PlanetRecord, error)
	GetHouses(ctx context.Context, chartID uuid.UUID) ([]domain.HouseRecord, error)
	GetLunarPhase(ctx context.Context, chartID uuid.UUID) (*domain.LunarPhaseRecord, error)
}
