package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
)

// ISnapshotRepository интерфейс для денормализованного снимка карты
// на профиле. Upsert заменяет предыдущий снимок целиком.
type ISnapshotRepository interface {
	Upsert(ctx context.Context, profileID uuid.UUID, snapshot domain.ChartSnapshot) error
	GetByProfile(ctx context.Context, profileID uuid.UUID) (*domain.ChartSnapshot, error)
}
