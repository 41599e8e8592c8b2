package app

import (
	server "github.com/bilgisen/natal/internal/adapters/primary/http"
	aiAdapter "github.com/bilgisen/natal/internal/adapters/secondary/ai"
	astroApi "github.com/bilgisen/natal/internal/adapters/secondary/astroApi"
	kafkaAdapter "github.com/bilgisen/natal/internal/adapters/secondary/kafka"
	"github.com/bilgisen/natal/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/bilgisen/natal/internal/adapters/secondary/storage/redis"
	tzAdapter "github.com/bilgisen/natal/internal/adapters/secondary/timezone"
	"github.com/bilgisen/natal/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres *pg.Config           `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config `envconfig:"REDIS"`
	Log      *logger.Config       `envconfig:"LOG"`
	Server   *server.Config       `envconfig:"APISERVER"`
	AstroAPI *astroApi.Config     `envconfig:"ASTRO_API"`
	AI       *aiAdapter.Config    `envconfig:"AI"`
	Timezone *tzAdapter.Config    `envconfig:"TIMEZONE"`
	Kafka    *kafkaAdapter.Config `envconfig:"KAFKA"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
