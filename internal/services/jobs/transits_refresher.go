package jobs

import (
	"context"
	"log/slog"
	"time"

	astroUsecase "github.com/bilgisen/natal/internal/usecases/astro"
)

const transitsRefresherName = "transits-refresher"

// TransitsRefresher джоба прогрева кэша текущих транзитов, каждый час
// в начале часа. Дневной гороскоп и разборы читают транзиты из кэша,
// прогрев убирает холодный запрос к внешнему API из пользовательского пути.
type TransitsRefresher struct {
	astroService *astroUsecase.Service
	log          *slog.Logger
}

// NewTransitsRefresher создаёт новую джобу прогрева транзитов
func NewTransitsRefresher(astroService *astroUsecase.Service, log *slog.Logger) *TransitsRefresher {
	return &TransitsRefresher{
		astroService: astroService,
		log:          log,
	}
}

func (j *TransitsRefresher) Name() string {
	return transitsRefresherName
}

// NextRun вычисляет следующее время запуска - начало следующего часа
func (j *TransitsRefresher) NextRun(now time.Time) time.Time {
	return now.Truncate(time.Hour).Add(time.Hour)
}

// Run прогревает кэш текущих транзитов
func (j *TransitsRefresher) Run(ctx context.Context) error {
	if _, err := j.astroService.GetCurrentTransits(ctx); err != nil {
		return err
	}
	return nil
}
