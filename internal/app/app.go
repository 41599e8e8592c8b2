package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	server "github.com/bilgisen/natal/internal/adapters/primary/http"
	analysisController "github.com/bilgisen/natal/internal/adapters/primary/http/controllers/analysis"
	chartController "github.com/bilgisen/natal/internal/adapters/primary/http/controllers/chart"
	healthcheckController "github.com/bilgisen/natal/internal/adapters/primary/http/controllers/healthcheck"
	horoscopeController "github.com/bilgisen/natal/internal/adapters/primary/http/controllers/horoscope"
	aiAdapter "github.com/bilgisen/natal/internal/adapters/secondary/ai"
	astroApiAdapter "github.com/bilgisen/natal/internal/adapters/secondary/astroApi"
	kafkaAdapter "github.com/bilgisen/natal/internal/adapters/secondary/kafka"
	"github.com/bilgisen/natal/internal/adapters/secondary/storage/inmemory"
	"github.com/bilgisen/natal/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/bilgisen/natal/internal/adapters/secondary/storage/redis"
	tzAdapter "github.com/bilgisen/natal/internal/adapters/secondary/timezone"
	"github.com/bilgisen/natal/internal/pkg/logger"
	kafkaPort "github.com/bilgisen/natal/internal/ports/kafka"
	chartRepo "github.com/bilgisen/natal/internal/repository/chart"
	snapshotRepo "github.com/bilgisen/natal/internal/repository/snapshot"
	systemRepo "github.com/bilgisen/natal/internal/repository/system"
	aiService "github.com/bilgisen/natal/internal/services/ai"
	astroApiService "github.com/bilgisen/natal/internal/services/astroApi"
	"github.com/bilgisen/natal/internal/services/jobs"
	timezoneService "github.com/bilgisen/natal/internal/services/timezone"
	astroUsecase "github.com/bilgisen/natal/internal/usecases/astro"
	"golang.org/x/sync/errgroup"

	"github.com/jmoiron/sqlx"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) *App {
	return &App{
		Name: name,
		Cfg:  cfg,
		Log:  logger.New(name, cfg.Log),
	}
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("running natal service")

	db, err := a.initPostgres()
	if err != nil {
		return fmt.Errorf("failed to init postgres: %w", err)
	}

	redisConn, err := a.Cfg.Redis.NewConnection()
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	cacheClient := redisAdapter.NewClient(redisConn)
	a.Log.Info("redis connected successfully")

	producer, err := a.initKafka()
	if err != nil {
		return fmt.Errorf("failed to init kafka: %w", err)
	}

	persistenceLayer := pg.NewDB(db)
	systems := systemRepo.New(persistenceLayer, a.Log)
	charts := chartRepo.New(persistenceLayer, a.Log)
	snapshots := snapshotRepo.New(persistenceLayer, a.Log)

	astroClient := astroApiAdapter.NewClient(a.Cfg.AstroAPI, a.Log)
	aiClient := aiAdapter.NewClient(a.Cfg.AI, a.Log)
	tzClient := tzAdapter.NewClient(a.Cfg.Timezone, a.Log)

	astroAPI := astroApiService.New(astroClient, a.Log)
	ai := aiService.New(aiClient)
	tzCache := inmemory.NewTimezoneCache(a.Cfg.Timezone.CacheCapacity)
	timezone := timezoneService.New(tzClient, tzCache, a.Log)

	astroService := astroUsecase.New(astroAPI, ai, charts, systems, snapshots, cacheClient, producer, a.Log)

	scheduler := jobs.NewScheduler(a.Log)
	scheduler.Register(jobs.NewTransitsRefresher(astroService, a.Log))

	httpServer := server.NewHTTPServer(a.Cfg.Server, a.Log,
		healthcheckController.New(db, a.Log),
		chartController.New(astroService, a.Log),
		analysisController.New(astroService, a.Log),
		horoscopeController.New(astroService, timezone, a.Log),
	)

	g, gCtx := errgroup.WithContext(ctx)

	if err := scheduler.Start(gCtx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		if producer != nil {
			if err := producer.Close(); err != nil {
				a.Log.Error("failed to close kafka producer", "error", err)
			}
		}

		if err := cacheClient.Close(); err != nil {
			a.Log.Error("failed to close redis client", "error", err)
		}

		if err := db.Close(); err != nil {
			a.Log.Error("failed to close database", "error", err)
		}

		a.Log.Info("application shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("application error", "error", err)
		return err
	}

	return nil
}

func (a *App) initPostgres() (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initKafka создаёт продюсер событий. Без брокеров сервис
// работает дальше, события просто не публикуются.
func (a *App) initKafka() (kafkaPort.IProducer, error) {
	if a.Cfg.Kafka == nil || a.Cfg.Kafka.Brokers == "" {
		a.Log.Warn("kafka brokers not configured, chart events will not be published")
		return nil, nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	a.Log.Info("kafka producer created", "topic", a.Cfg.Kafka.Topic)
	return producer, nil
}
