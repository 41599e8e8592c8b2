package domain

import (
	"time"

	"github.com/google/uuid"
)

// AstrologySystem — справочная строка системы домов (Плацидус и т.д.)
type AstrologySystem struct {
	ID   int64  `db:"id"`
	Key  string `db:"key"`
	Name string `db:"name"`
}

// NatalChartRecord — заголовок натальной карты.
// Создаётся один раз на расчёт; при перерасчёте вставляется новая строка,
// существующие строки никогда не обновляются.
type NatalChartRecord struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	ProfileID           uuid.UUID  `db:"profile_id" json:"profile_id"`
	OwnerUserID         string     `db:"owner_user_id" json:"owner_user_id"`
	SubjectName         string     `db:"subject_name" json:"subject_name"`
	SubjectBirthDate    time.Time  `db:"subject_birth_date" json:"subject_birth_date"`
	SubjectBirthTime    string     `db:"subject_birth_time" json:"subject_birth_time"`
	SubjectBirthPlaceID *uuid.UUID `db:"subject_birth_place_id" json:"subject_birth_place_id,omitempty"`
	SystemID            int64      `db:"system_id" json:"system_id"`
	ZodiacType          string     `db:"zodiac_type" json:"zodiac_type"` // "Tropical" | "Sidereal"
	HousesSystem        string     `db:"houses_system" json:"houses_system"`
	PerspectiveType     string     `db:"perspective_type" json:"perspective_type"`
	SiderealMode        *string    `db:"sidereal_mode" json:"sidereal_mode,omitempty"`
	SunSign             string     `db:"sun_sign" json:"sun_sign"`
	Ascendant           string     `db:"ascendant" json:"ascendant"`
	MoonSign            string     `db:"moon_sign" json:"moon_sign"`
	CalculationProvider string     `db:"calculation_provider" json:"calculation_provider"`
	CalculatedAt        time.Time  `db:"calculated_at" json:"calculated_at"`
}

// PlanetRecord — строка планеты, привязанная к заголовку карты.
// Позиции хранятся текстом, чтобы не терять точность при round-trip
// через float-колонки.
type PlanetRecord struct {
	NatalChartID uuid.UUID `db:"natal_chart_id" json:"natal_chart_id"`
	PlanetName   string    `db:"planet_name" json:"planet_name"`
	Sign         string    `db:"sign" json:"sign"`
	Position     string    `db:"position" json:"position"`
	AbsPosition  string    `db:"abs_position" json:"abs_position"`
	House        int       `db:"house" json:"house"`
	Element      string    `db:"element" json:"element"`
	Quality      string    `db:"quality" json:"quality"`
	Retrograde   bool      `db:"retrograde" json:"retrograde"`
	Emoji        string    `db:"emoji" json:"emoji"`
}

// HouseRecord — строка дома, ровно 12 на карту
type HouseRecord struct {
	NatalChartID uuid.UUID `db:"natal_chart_id" json:"natal_chart_id"`
	HouseNumber  int       `db:"house_number" json:"house_number"`
	Sign         string    `db:"sign" json:"sign"`
	CuspPosition string    `db:"cusp_position" json:"cusp_position"`
	Emoji        string    `db:"emoji" json:"emoji"`
}

// LunarPhaseRecord — строка лунной фазы, максимум одна на карту
type LunarPhaseRecord struct {
	NatalChartID          uuid.UUID `db:"natal_chart_id" json:"natal_chart_id"`
	DegreesBetweenSunMoon string    `db:"degrees_between_sun_moon" json:"degrees_between_sun_moon"`
	MoonPhase             string    `db:"moon_phase" json:"moon_phase"`
	SunPhase              string    `db:"sun_phase" json:"sun_phase"`
	MoonEmoji             string    `db:"moon_emoji" json:"moon_emoji"`
	MoonPhaseName         string    `db:"moon_phase_name" json:"moon_phase_name"`
}

// NormalizedChart — наборы записей, готовые к персистентности.
// Дочерние строки вставляются только после заголовка (foreign key).
type NormalizedChart struct {
	Chart      NatalChartRecord
	Planets    []PlanetRecord
	Houses     []HouseRecord
	LunarPhase *LunarPhaseRecord
}

// ChartCalculatedEvent — событие для downstream-консьюмеров после
// успешного сохранения карты
type ChartCalculatedEvent struct {
	ChartID      uuid.UUID `json:"chart_id"`
	ProfileID    uuid.UUID `json:"profile_id"`
	SunSign      string    `json:"sun_sign"`
	MoonSign     string    `json:"moon_sign"`
	Ascendant    string    `json:"ascendant"`
	CalculatedAt time.Time `json:"calculated_at"`
}
