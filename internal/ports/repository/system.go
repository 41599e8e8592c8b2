package repository

import (
	"context"

	"github.com/bilgisen/natal/internal/domain"
)

// ISystemRepository интерфейс справочника астрологических систем
type ISystemRepository interface {
	GetOrCreate(ctx context.Context, key string, name string) (domain.AstrologySystem, error)
	GetByKey(ctx context.Context, key string) (*domain.AstrologySystem, error)
}
