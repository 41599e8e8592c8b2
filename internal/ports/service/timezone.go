package service

import (
	"context"

	"github.com/bilgisen/natal/internal/ports/cache"
)

// ITimezoneService интерфейс разрешения координат в таймзону
type ITimezoneService interface {
	Resolve(ctx context.Context, lat float64, lng float64, timestamp int64) (cache.TimezoneEntry, error)
}
