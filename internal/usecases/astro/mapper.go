package astro

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/bilgisen/natal/internal/domain"
)

// requiredPlanets - обязательные тела в фиксированном порядке
var requiredPlanets = []string{
	"sun", "moon", "mercury", "venus", "mars",
	"jupiter", "saturn", "uranus", "neptune", "pluto",
}

// houseKeys - именованные поля домов в порядке с первого по двенадцатый
var houseKeys = []string{
	"first_house", "second_house", "third_house", "fourth_house",
	"fifth_house", "sixth_house", "seventh_house", "eighth_house",
	"ninth_house", "tenth_house", "eleventh_house", "twelfth_house",
}

// axisAliases - короткое имя угла и его длинный алиас, короткое в приоритете
var axisAliases = [][2]string{
	{"asc", "ascendant"},
	{"dsc", "descendant"},
	{"mc", "medium_coeli"},
	{"ic", "imum_coeli"},
}

// ToCanonical приводит сырой ответ астро-API к канонической форме.
// Поставщик переименовывает поля между версиями, поэтому углы и дома
// читаются по цепочкам алиасов, а отсутствующие скалярные поля получают
// безопасные дефолты. Отсутствие обязательной планеты, угла или дома
// после дефолтов - это UpstreamDataError, расчёт карты прерывается.
func ToCanonical(raw domain.RawChartPayload) (*domain.CanonicalBirthData, error) {
	if len(raw) == 0 {
		return nil, domain.WrapUpstreamDataError(fmt.Errorf("astro API response is empty"))
	}

	// Одноуровневый конверт {status, data}
	if inner, ok := raw["data"]; ok {
		var nested domain.RawChartPayload
		if err := json.Unmarshal(inner, &nested); err == nil && len(nested) > 0 {
			raw = nested
		}
	}

	c := &domain.CanonicalBirthData{
		Name:       stringField(raw, "", "name"),
		Year:       intField(raw, "year"),
		Month:      intField(raw, "month"),
		Day:        intField(raw, "day"),
		Hour:       intField(raw, "hour"),
		Minute:     intField(raw, "minute"),
		City:       stringField(raw, "", "city"),
		Nation:     stringField(raw, "", "nation"),
		Lng:        floatField(raw, "lng", "longitude"),
		Lat:        floatField(raw, "lat", "latitude"),
		TzStr:      stringField(raw, "UTC", "tz_str"),
		ZodiacType: stringField(raw, "Tropic", "zodiac_type"),
		LocalTime:  floatField(raw, "local_time"),
		UTCTime:    floatField(raw, "utc_time"),
		JulianDay:  floatField(raw, "julian_day"),

		HousesSystemIdentifier: stringField(raw, "", "houses_system_identifier"),
		PerspectiveType:        stringField(raw, "", "perspective_type"),
	}

	if rawMode, ok := raw["sidereal_mode"]; ok {
		var mode *string
		if err := json.Unmarshal(rawMode, &mode); err == nil {
			c.SiderealMode = mode
		}
	}

	planetDst := map[string]*domain.Point{
		"sun": &c.Sun, "moon": &c.Moon, "mercury": &c.Mercury,
		"venus": &c.Venus, "mars": &c.Mars, "jupiter": &c.Jupiter,
		"saturn": &c.Saturn, "uranus": &c.Uranus,
		"neptune": &c.Neptune, "pluto": &c.Pluto,
	}
	for _, key := range requiredPlanets {
		point, err := pointField(raw, key)
		if err != nil {
			return nil, domain.WrapUpstreamDataError(fmt.Errorf("planet %s: %w", key, err))
		}
		if point == nil {
			return nil, domain.WrapUpstreamDataError(fmt.Errorf("required planet %s is missing", key))
		}
		*planetDst[key] = *point
	}

	c.Chiron = optionalPoint(raw, "chiron")
	c.MeanNode = optionalPoint(raw, "mean_node")
	c.TrueNode = optionalPoint(raw, "true_node")

	axisDst := []*domain.Point{&c.Asc, &c.Dsc, &c.Mc, &c.Ic}
	for i, aliases := range axisAliases {
		point, err := pointField(raw, aliases[0], aliases[1])
		if err != nil {
			return nil, domain.WrapUpstreamDataError(fmt.Errorf("axis %s: %w", aliases[0], err))
		}
		if point == nil {
			return nil, domain.WrapUpstreamDataError(fmt.Errorf("required axis %s is missing", aliases[0]))
		}
		*axisDst[i] = *point
	}

	houses, err := extractHouses(raw)
	if err != nil {
		return nil, domain.WrapUpstreamDataError(err)
	}
	houseDst := []*domain.Point{
		&c.FirstHouse, &c.SecondHouse, &c.ThirdHouse, &c.FourthHouse,
		&c.FifthHouse, &c.SixthHouse, &c.SeventhHouse, &c.EighthHouse,
		&c.NinthHouse, &c.TenthHouse, &c.EleventhHouse, &c.TwelfthHouse,
	}
	for i := range houseDst {
		*houseDst[i] = houses[i]
	}

	c.LunarPhase = extractLunarPhase(raw)

	normalizePositions(c)

	return c, nil
}

// extractHouses читает 12 домов из именованных полей, с fallback на
// 0-индексированный массив houses
func extractHouses(raw domain.RawChartPayload) ([12]domain.Point, error) {
	var houses [12]domain.Point

	var fallback []domain.Point
	if rawHouses, ok := raw["houses"]; ok {
		if err := json.Unmarshal(rawHouses, &fallback); err != nil {
			fallback = nil
		}
	}

	for i, key := range houseKeys {
		point, err := pointField(raw, key)
		if err != nil {
			return houses, fmt.Errorf("house %s: %w", key, err)
		}
		if point == nil {
			if i < len(fallback) {
				houses[i] = fallback[i]
				continue
			}
			return houses, fmt.Errorf("required house %s is missing", key)
		}
		houses[i] = *point
	}

	return houses, nil
}

// extractLunarPhase читает лунную фазу, при отсутствии подставляется
// плейсхолдер новолуния
func extractLunarPhase(raw domain.RawChartPayload) domain.LunarPhase {
	if rawPhase, ok := raw["lunar_phase"]; ok {
		var phase domain.LunarPhase
		if err := json.Unmarshal(rawPhase, &phase); err == nil {
			if phase.MoonPhaseName == "" {
				phase.MoonPhaseName = "New Moon"
			}
			if phase.MoonEmoji == "" {
				phase.MoonEmoji = "🌑"
			}
			return phase
		}
	}

	return domain.LunarPhase{
		MoonEmoji:     "🌑",
		MoonPhaseName: "New Moon",
	}
}

// normalizePositions приводит все позиции в диапазон [0, 360)
func normalizePositions(c *domain.CanonicalBirthData) {
	points := []*domain.Point{
		&c.Sun, &c.Moon, &c.Mercury, &c.Venus, &c.Mars, &c.Jupiter,
		&c.Saturn, &c.Uranus, &c.Neptune, &c.Pluto,
		&c.Asc, &c.Dsc, &c.Mc, &c.Ic,
		&c.FirstHouse, &c.SecondHouse, &c.ThirdHouse, &c.FourthHouse,
		&c.FifthHouse, &c.SixthHouse, &c.SeventhHouse, &c.EighthHouse,
		&c.NinthHouse, &c.TenthHouse, &c.EleventhHouse, &c.TwelfthHouse,
		c.Chiron, c.MeanNode, c.TrueNode,
	}
	for _, p := range points {
		if p == nil {
			continue
		}
		p.Position = normalizeDegrees(p.Position)
		p.AbsPos = normalizeDegrees(p.AbsPos)
	}
}

func normalizeDegrees(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}

// pointField читает Point по первому присутствующему ключу из списка
func pointField(raw domain.RawChartPayload, keys ...string) (*domain.Point, error) {
	for _, key := range keys {
		rawPoint, ok := raw[key]
		if !ok || string(rawPoint) == "null" {
			continue
		}
		var point domain.Point
		if err := json.Unmarshal(rawPoint, &point); err != nil {
			return nil, fmt.Errorf("malformed point: %w", err)
		}
		return &point, nil
	}
	return nil, nil
}

// optionalPoint читает необязательный Point, ошибки разбора дают nil
func optionalPoint(raw domain.RawChartPayload, key string) *domain.Point {
	point, err := pointField(raw, key)
	if err != nil {
		return nil
	}
	return point
}

func stringField(raw domain.RawChartPayload, fallback string, keys ...string) string {
	for _, key := range keys {
		rawValue, ok := raw[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(rawValue, &value); err == nil && value != "" {
			return value
		}
	}
	return fallback
}

func intField(raw domain.RawChartPayload, keys ...string) int {
	for _, key := range keys {
		rawValue, ok := raw[key]
		if !ok {
			continue
		}
		var value int
		if err := json.Unmarshal(rawValue, &value); err == nil {
			return value
		}
	}
	return 0
}

func floatField(raw domain.RawChartPayload, keys ...string) float64 {
	for _, key := range keys {
		rawValue, ok := raw[key]
		if !ok {
			continue
		}
		var value float64
		if err := json.Unmarshal(rawValue, &value); err == nil {
			return value
		}
	}
	return 0
}
