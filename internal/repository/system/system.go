package systemRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"log/slog"

	"github.com/bilgisen/natal/internal/domain"
	"github.com/bilgisen/natal/internal/ports/persistence"
	ports "github.com/bilgisen/natal/internal/ports/repository"
)

type systemColumns struct {
	TableName string
	ID        string
	Key       string
	Name      string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns systemColumns
}

// New создаёт новый репозиторий справочника астрологических систем
func New(db persistence.Persistence, log *slog.Logger) ports.ISystemRepository {
	cols := systemColumns{
		TableName: "astrology_systems",
		ID:        "id",
		Key:       "key",
		Name:      "name",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s",
		r.columns.ID,
		r.columns.Key,
		r.columns.Name)
}

// GetByKey получает систему по ключу
func (r *Repository) GetByKey(ctx context.Context, key string) (*domain.AstrologySystem, error) {
	var system domain.AstrologySystem
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Key)
	err := r.db.Get(ctx, &system, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("astrology system not found: %w", err)
		}
		r.Log.Error("failed to get astrology system",
			"error", err,
			"key", key)
		return nil, fmt.Errorf("failed to get astrology system: %w", err)
	}
	return &system, nil
}

// GetOrCreate возвращает систему по ключу, создавая её при отсутствии.
// Вставка идёт через ON CONFLICT DO NOTHING, после чего строка читается
// повторно: параллельные вызовы сходятся на одной строке.
func (r *Repository) GetOrCreate(ctx context.Context, key string, name string) (domain.AstrologySystem, error) {
	system, err := r.GetByKey(ctx, key)
	if err == nil {
		return *system, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.AstrologySystem{}, err
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s) DO NOTHING`,
		r.columns.TableName,
		r.columns.Key,
		r.columns.Name,
		r.columns.Key)

	if err := r.db.Exec(ctx, insertQuery, key, name); err != nil {
		r.Log.Error("failed to insert astrology system",
			"error", err,
			"key", key)
		return domain.AstrologySystem{}, fmt.Errorf("failed to insert astrology system: %w", err)
	}

	system, err = r.GetByKey(ctx, key)
	if err != nil {
		r.Log.Error("failed to reread astrology system after insert",
			"error", err,
			"key", key)
		return domain.AstrologySystem{}, fmt.Errorf("failed to reread astrology system: %w", err)
	}

	r.Log.Debug("astrology system resolved", "key", key, "id", system.ID)
	return *system, nil
}
