package chartRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"log/slog"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
	"github.com/bilgisen/natal/internal/ports/persistence"
	ports "github.com/bilgisen/natal/internal/ports/repository"
)

type chartColumns struct {
	TableName           string
	ID                  string
	ProfileID           string
	OwnerUserID         string
	SubjectName         string
	SubjectBirthDate    string
	SubjectBirthTime    string
	SubjectBirthPlaceID string
	SystemID            string
	ZodiacType          string
	HousesSystem        string
	PerspectiveType     string
	SiderealMode        string
	SunSign             string
	Ascendant           string
	MoonSign            string
	CalculationProvider string
	CalculatedAt        string
}

const (
	planetsTable     = "astro_planets"
	housesTable      = "astro_houses"
	lunarPhasesTable = "lunar_phases"
)

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns chartColumns
}

// New создаёт новый репозиторий натальных карт
func New(db persistence.Persistence, log *slog.Logger) ports.IChartRepository {
	cols := chartColumns{
		TableName:           "natal_charts",
		ID:                  "id",
		ProfileID:           "profile_id",
		OwnerUserID:         "owner_user_id",
		SubjectName:         "subject_name",
		SubjectBirthDate:    "subject_birth_date",
		SubjectBirthTime:    "subject_birth_time",
		SubjectBirthPlaceID: "subject_birth_place_id",
		SystemID:            "system_id",
		ZodiacType:          "zodiac_type",
		HousesSystem:        "houses_system",
		PerspectiveType:     "perspective_type",
		SiderealMode:        "sidereal_mode",
		SunSign:             "sun_sign",
		Ascendant:           "ascendant",
		MoonSign:            "moon_sign",
		CalculationProvider: "calculation_provider",
		CalculatedAt:        "calculated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками заголовка (17 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.ProfileID,
		r.columns.OwnerUserID,
		r.columns.SubjectName,
		r.columns.SubjectBirthDate,
		r.columns.SubjectBirthTime,
		r.columns.SubjectBirthPlaceID,
		r.columns.SystemID,
		r.columns.ZodiacType,
		r.columns.HousesSystem,
		r.columns.PerspectiveType,
		r.columns.SiderealMode,
		r.columns.SunSign,
		r.columns.Ascendant,
		r.columns.MoonSign,
		r.columns.CalculationProvider,
		r.columns.CalculatedAt)
}

// insertColumns возвращает колонки для вставки заголовка (без id и calculated_at)
func (r *Repository) insertColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ProfileID,
		r.columns.OwnerUserID,
		r.columns.SubjectName,
		r.columns.SubjectBirthDate,
		r.columns.SubjectBirthTime,
		r.columns.SubjectBirthPlaceID,
		r.columns.SystemID,
		r.columns.ZodiacType,
		r.columns.HousesSystem,
		r.columns.PerspectiveType,
		r.columns.SiderealMode,
		r.columns.SunSign,
		r.columns.Ascendant,
		r.columns.MoonSign,
		r.columns.CalculationProvider)
}

// Save сохраняет карту целиком в одной транзакции: заголовок, планеты,
// дома и лунную фазу. Заголовок никогда не обновляется, перерасчёт
// всегда вставляет новую строку.
func (r *Repository) Save(ctx context.Context, chart domain.NormalizedChart) (uuid.UUID, error) {
	var chartID uuid.UUID

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		insertHeader := fmt.Sprintf(`INSERT INTO %s (%s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING %s`,
			r.columns.TableName,
			r.insertColumns(),
			r.columns.ID)

		row := tx.QueryRow(ctx, insertHeader,
			chart.Chart.ProfileID,
			chart.Chart.OwnerUserID,
			chart.Chart.SubjectName,
			chart.Chart.SubjectBirthDate,
			chart.Chart.SubjectBirthTime,
			chart.Chart.SubjectBirthPlaceID,
			chart.Chart.SystemID,
			chart.Chart.ZodiacType,
			chart.Chart.HousesSystem,
			chart.Chart.PerspectiveType,
			chart.Chart.SiderealMode,
			chart.Chart.SunSign,
			chart.Chart.Ascendant,
			chart.Chart.MoonSign,
			chart.Chart.CalculationProvider)
		if err := row.Scan(&chartID); err != nil {
			return fmt.Errorf("failed to insert chart header: %w", err)
		}

		insertPlanet := fmt.Sprintf(`INSERT INTO %s
			(natal_chart_id, planet_name, sign, position, abs_position, house, element, quality, retrograde, emoji)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			planetsTable)

		for _, planet := range chart.Planets {
			if err := tx.Exec(ctx, insertPlanet,
				chartID,
				planet.PlanetName,
				planet.Sign,
				planet.Position,
				planet.AbsPosition,
				planet.House,
				planet.Element,
				planet.Quality,
				planet.Retrograde,
				planet.Emoji); err != nil {
				return fmt.Errorf("failed to insert planet %s: %w", planet.PlanetName, err)
			}
		}

		insertHouse := fmt.Sprintf(`INSERT INTO %s
			(natal_chart_id, house_number, sign, cusp_position, emoji)
			VALUES ($1, $2, $3, $4, $5)`,
			housesTable)

		for _, house := range chart.Houses {
			if err := tx.Exec(ctx, insertHouse,
				chartID,
				house.HouseNumber,
				house.Sign,
				house.CuspPosition,
				house.Emoji); err != nil {
				return fmt.Errorf("failed to insert house %d: %w", house.HouseNumber, err)
			}
		}

		if chart.LunarPhase != nil {
			insertLunar := fmt.Sprintf(`INSERT INTO %s
				(natal_chart_id, degrees_between_sun_moon, moon_phase, sun_phase, moon_emoji, moon_phase_name)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				lunarPhasesTable)

			if err := tx.Exec(ctx, insertLunar,
				chartID,
				chart.LunarPhase.DegreesBetweenSunMoon,
				chart.LunarPhase.MoonPhase,
				chart.LunarPhase.SunPhase,
				chart.LunarPhase.MoonEmoji,
				chart.LunarPhase.MoonPhaseName); err != nil {
				return fmt.Errorf("failed to insert lunar phase: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		r.Log.Error("failed to save natal chart",
			"error", err,
			"profile_id", chart.Chart.ProfileID)
		return uuid.Nil, domain.WrapPersistenceError(err)
	}

	r.Log.Debug("natal chart saved",
		"chart_id", chartID,
		"profile_id", chart.Chart.ProfileID,
		"planets", len(chart.Planets),
		"houses", len(chart.Houses))
	return chartID, nil
}

// GetLatestByProfile получает самую свежую карту профиля
func (r *Repository) GetLatestByProfile(ctx context.Context, profileID uuid.UUID) (*domain.NatalChartRecord, error) {
	var chart domain.NatalChartRecord
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT 1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ProfileID,
		r.columns.CalculatedAt)
	err := r.db.Get(ctx, &chart, query, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("natal chart not found: %w", err)
		}
		r.Log.Error("failed to get latest natal chart",
			"error", err,
			"profile_id", profileID)
		return nil, fmt.Errorf("failed to get latest natal chart: %w", err)
	}
	return &chart, nil
}

// GetPlanets получает планеты карты
func (r *Repository) GetPlanets(ctx context.Context, chartID uuid.UUID) ([]domain.PlanetRecord, error) {
	var planets []domain.PlanetRecord
	query := fmt.Sprintf(`SELECT natal_chart_id, planet_name, sign, position, abs_position, house, element, quality, retrograde, emoji
		FROM %s WHERE natal_chart_id = $1 ORDER BY id`,
		planetsTable)
	if err := r.db.Select(ctx, &planets, query, chartID); err != nil {
		r.Log.Error("failed to get planets",
			"error", err,
			"chart_id", chartID)
		return nil, fmt.Errorf("failed to get planets: %w", err)
	}
	return planets, nil
}

// GetHouses получает дома карты
func (r *Repository) GetHouses(ctx context.Context, chartID uuid.UUID) ([]domain.HouseRecord, error) {
	var houses []domain.HouseRecord
	query := fmt.Sprintf(`SELECT natal_chart_id, house_number, sign, cusp_position, emoji
		FROM %s WHERE natal_chart_id = $1 ORDER BY house_number`,
		housesTable)
	if err := r.db.Select(ctx, &houses, query, chartID); err != nil {
		r.Log.Error("failed to get houses",
			"error", err,
			"chart_id", chartID)
		return nil, fmt.Errorf("failed to get houses: %w", err)
	}
	return houses, nil
}

// GetLunarPhase получает лунную фазу карты, nil если фаза не сохранялась
func (r *Repository) GetLunarPhase(ctx context.Context, chartID uuid.UUID) (*domain.LunarPhaseRecord, error) {
	var phase domain.LunarPhaseRecord
	query := fmt.Sprintf(`SELECT natal_chart_id, degrees_between_sun_moon, moon_phase, sun_phase, moon_emoji, moon_phase_name
		FROM %s WHERE natal_chart_id = $1`,
		lunarPhasesTable)
	err := r.db.Get(ctx, &phase, query, chartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.Log.Error("failed to get lunar phase",
			"error", err,
			"chart_id", chartID)
		return nil, fmt.Errorf("failed to get lunar phase: %w", err)
	}
	return &phase, nil
}
