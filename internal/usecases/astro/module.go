package astro

import (
	"log/slog"

	"github.com/bilgisen/natal/internal/ports/cache"
	"github.com/bilgisen/natal/internal/ports/kafka"
	"github.com/bilgisen/natal/internal/ports/repository"
	"github.com/bilgisen/natal/internal/ports/service"
)

// Service бизнес-логика пайплайна натальных карт
type Service struct {
	AstroAPIService service.IAstroAPIService
	AIService       service.IAIService
	ChartRepo       repository.IChartRepository
	SystemRepo      repository.ISystemRepository
	SnapshotRepo    repository.ISnapshotRepository
	Cache           cache.Cache
	Producer        kafka.IProducer
	Log             *slog.Logger
}

// New создаёт новый сервис пайплайна натальных карт
func New(
	astroAPIService service.IAstroAPIService,
	aiService service.IAIService,
	chartRepo repository.IChartRepository,
	systemRepo repository.ISystemRepository,
	snapshotRepo repository.ISnapshotRepository,
	cacheClient cache.Cache,
	producer kafka.IProducer,
	log *slog.Logger,
) *Service {
	return &Service{
		AstroAPIService: astroAPIService,
		AIService:       aiService,
		ChartRepo:       chartRepo,
		SystemRepo:      systemRepo,
		SnapshotRepo:    snapshotRepo,
		Cache:           cacheClient,
		Producer:        producer,
		Log:             log,
	}
}
