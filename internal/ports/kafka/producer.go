package kafka

import (
	"context"

	"github.com/bilgisen/natal/internal/domain"
)

// IProducer интерфейс для публикации событий пайплайна
type IProducer interface {
	SendChartCalculated(ctx context.Context, event domain.ChartCalculatedEvent) error
	Send(ctx context.Context, key string, value []byte) error
	Close() error
}
