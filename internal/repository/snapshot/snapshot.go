package snapshotRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"log/slog"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
	"github.com/bilgisen/natal/internal/ports/persistence"
	ports "github.com/bilgisen/natal/internal/ports/repository"
)

type snapshotColumns struct {
	TableName string
	ProfileID string
	Snapshot  string
	UpdatedAt string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns snapshotColumns
}

// New создаёт новый репозиторий снимков карт на профилях
func New(db persistence.Persistence, log *slog.Logger) ports.ISnapshotRepository {
	cols := snapshotColumns{
		TableName: "astrological_data",
		ProfileID: "profile_id",
		Snapshot:  "snapshot",
		UpdatedAt: "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// Upsert заменяет снимок профиля целиком
func (r *Repository) Upsert(ctx context.Context, profileID uuid.UUID, snapshot domain.ChartSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = $2, %s = NOW()`,
		r.columns.TableName,
		r.columns.ProfileID,
		r.columns.Snapshot,
		r.columns.UpdatedAt,
		r.columns.ProfileID,
		r.columns.Snapshot,
		r.columns.UpdatedAt)

	if err := r.db.Exec(ctx, query, profileID, data); err != nil {
		r.Log.Error("failed to upsert snapshot",
			"error", err,
			"profile_id", profileID)
		return domain.WrapPersistenceError(fmt.Errorf("failed to upsert snapshot: %w", err))
	}

	r.Log.Debug("snapshot upserted", "profile_id", profileID)
	return nil
}

// GetByProfile получает снимок профиля
func (r *Repository) GetByProfile(ctx context.Context, profileID uuid.UUID) (*domain.ChartSnapshot, error) {
	var data []byte
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.columns.Snapshot,
		r.columns.TableName,
		r.columns.ProfileID)

	err := r.db.Get(ctx, &data, query, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot not found: %w", err)
		}
		r.Log.Error("failed to get snapshot",
			"error", err,
			"profile_id", profileID)
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot domain.ChartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
