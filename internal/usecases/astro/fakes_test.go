package astro

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/natal/internal/domain"
	"github.com/bilgisen/natal/internal/ports/cache"
)

type fakeAstroAPI struct {
	raw          domain.RawChartPayload
	transits     domain.RawChartPayload
	err          error
	birthCalls   int
	transitCalls int
}

func (f *fakeAstroAPI) FetchBirthData(_ context.Context, _ domain.BirthSubject) (domain.RawChartPayload, error) {
	f.birthCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func (f *fakeAstroAPI) FetchCurrentTransits(_ context.Context) (domain.RawChartPayload, error) {
	f.transitCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.transits, nil
}

type fakeAI struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeAI) Generate(_ context.Context, prompt string, _ int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeChartRepo struct {
	id      uuid.UUID
	saveErr error
	saved   []domain.NormalizedChart

	latest  *domain.NatalChartRecord
	planets []domain.PlanetRecord
	houses  []domain.HouseRecord
	lunar   *domain.LunarPhaseRecord
	readErr error
}

func (f *fakeChartRepo) Save(_ context.Context, chart domain.NormalizedChart) (uuid.UUID, error) {
	if f.saveErr != nil {
		return uuid.Nil, f.saveErr
	}
	f.saved = append(f.saved, chart)
	return f.id, nil
}

func (f *fakeChartRepo) GetLatestByProfile(_ context.Context, _ uuid.UUID) (*domain.NatalChartRecord, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if f.latest == nil {
		return nil, fmt.Errorf("natal chart not found: %w", sql.ErrNoRows)
	}
	return f.latest, nil
}

func (f *fakeChartRepo) GetPlanets(_ context.Context, _ uuid.UUID) ([]domain.PlanetRecord, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.planets, nil
}

func (f *fakeChartRepo) GetHouses(_ context.Context, _ uuid.UUID) ([]domain.HouseRecord, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.houses, nil
}

func (f *fakeChartRepo) GetLunarPhase(_ context.Context, _ uuid.UUID) (*domain.LunarPhaseRecord, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.lunar, nil
}

type fakeSystemRepo struct {
	err error
}

func (f *fakeSystemRepo) GetOrCreate(_ context.Context, key string, name string) (domain.AstrologySystem, error) {
	if f.err != nil {
		return domain.AstrologySystem{}, f.err
	}
	return domain.AstrologySystem{ID: 1, Key: key, Name: name}, nil
}

func (f *fakeSystemRepo) GetByKey(_ context.Context, key string) (*domain.AstrologySystem, error) {
	return &domain.AstrologySystem{ID: 1, Key: key}, nil
}

type fakeSnapshotRepo struct {
	stored    *domain.ChartSnapshot
	upsertErr error
	getErr    error
}

func (f *fakeSnapshotRepo) Upsert(_ context.Context, _ uuid.UUID, snapshot domain.ChartSnapshot) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.stored = &snapshot
	return nil
}

func (f *fakeSnapshotRepo) GetByProfile(_ context.Context, _ uuid.UUID) (*domain.ChartSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

type memCache struct {
	data    map[string]string
	getErr  error
	setErr  error
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	value, ok := c.data[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", cache.ErrKeyNotFound, key)
	}
	return value, nil
}

func (c *memCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *memCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func (c *memCache) Close() error { return nil }

type fakeProducer struct {
	events []domain.ChartCalculatedEvent
	err    error
}

func (f *fakeProducer) SendChartCalculated(_ context.Context, event domain.ChartCalculatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) Send(_ context.Context, _ string, _ []byte) error { return nil }

func (f *fakeProducer) Close() error { return nil }

type testEnv struct {
	service   *Service
	astroAPI  *fakeAstroAPI
	ai        *fakeAI
	charts    *fakeChartRepo
	systems   *fakeSystemRepo
	snapshots *fakeSnapshotRepo
	cache     *memCache
	producer  *fakeProducer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		astroAPI:  &fakeAstroAPI{},
		ai:        &fakeAI{text: "generated text"},
		charts:    &fakeChartRepo{id: uuid.New()},
		systems:   &fakeSystemRepo{},
		snapshots: &fakeSnapshotRepo{},
		cache:     newMemCache(),
		producer:  &fakeProducer{},
	}
	env.service = New(
		env.astroAPI,
		env.ai,
		env.charts,
		env.systems,
		env.snapshots,
		env.cache,
		env.producer,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return env
}

// rawPayload кодирует карту значений в сырой payload астро-API
func rawPayload(t *testing.T, m map[string]interface{}) domain.RawChartPayload {
	t.Helper()

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw domain.RawChartPayload
	require.NoError(t, json.Unmarshal(data, &raw))
	return raw
}

func rawPoint(name, sign string, position float64) map[string]interface{} {
	return map[string]interface{}{
		"name":     name,
		"sign":     sign,
		"position": position,
		"abs_pos":  position,
		"emoji":    "",
	}
}

// validChartFields собирает минимальный полный ответ астро-API
func validChartFields() map[string]interface{} {
	fields := map[string]interface{}{
		"name":   "Alice",
		"year":   1990,
		"month":  7,
		"day":    15,
		"hour":   8,
		"minute": 30,
		"city":   "Istanbul",
		"nation": "TR",
		"lng":    28.9784,
		"lat":    41.0082,
		"tz_str": "Europe/Istanbul",

		"zodiac_type":              "Tropic",
		"houses_system_identifier": "P",

		"sun":     rawPoint("Sun", "Cancer", 23.1),
		"moon":    rawPoint("Moon", "Pisces", 4.7),
		"mercury": rawPoint("Mercury", "Leo", 10.2),
		"venus":   rawPoint("Venus", "Gemini", 18.9),
		"mars":    rawPoint("Mars", "Aries", 2.4),
		"jupiter": rawPoint("Jupiter", "Cancer", 11.8),
		"saturn":  rawPoint("Saturn", "Capricorn", 25.3),
		"uranus":  rawPoint("Uranus", "Capricorn", 7.6),
		"neptune": rawPoint("Neptune", "Capricorn", 13.2),
		"pluto":   rawPoint("Pluto", "Scorpio", 15.5),

		"asc": rawPoint("Ascendant", "Virgo", 12.0),
		"dsc": rawPoint("Descendant", "Pisces", 12.0),
		"mc":  rawPoint("Medium Coeli", "Gemini", 8.4),
		"ic":  rawPoint("Imum Coeli", "Sagittarius", 8.4),

		"lunar_phase": map[string]interface{}{
			"degrees_between_s_m": 71.6,
			"moon_phase":          6.0,
			"sun_phase":           2.0,
			"moon_emoji":          "🌒",
			"moon_phase_name":     "Waxing Crescent",
		},
	}

	houseSigns := []string{
		"Virgo", "Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius",
		"Pisces", "Aries", "Taurus", "Gemini", "Cancer", "Leo",
	}
	for i, key := range houseKeys {
		fields[key] = rawPoint(fmt.Sprintf("House %d", i+1), houseSigns[i], float64(i)*30+12)
	}

	return fields
}

func validSubject() domain.BirthSubject {
	return domain.BirthSubject{
		Name:      "Alice",
		BirthDate: time.Date(1990, 7, 15, 0, 0, 0, 0, time.UTC),
		BirthTime: "08:30",
		City:      "Istanbul",
		Country:   "Turkey",
		Latitude:  41.0082,
		Longitude: 28.9784,
		Timezone:  "Europe/Istanbul",
	}
}
