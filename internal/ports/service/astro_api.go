package service

import (
	"context"

	"github.com/bilgisen/natal/internal/domain"
)

// IAstroAPIService интерфейс внешнего поставщика эфемеридных расчётов.
// Возвращает сырой payload; разрешение алиасов и дефолты выполняет
// нормализатор.
type IAstroAPIService interface {
	FetchBirthData(ctx context.Context, subject domain.BirthSubject) (domain.RawChartPayload, error)
	FetchCurrentTransits(ctx context.Context) (domain.RawChartPayload, error)
}
