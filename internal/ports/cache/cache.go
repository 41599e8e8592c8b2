package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound возвращается из Get при промахе кэша
var ErrKeyNotFound = errors.New("cache key not found")

// Cache интерфейс для работы с кэш-бэкендом.
// Значения только строковые; структурные данные кодирует/декодирует вызывающий.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
