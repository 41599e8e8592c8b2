package astro

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
)

const (
	houseSystemKey  = "placidus"
	houseSystemName = "Placidus"

	calculationProvider = "astrologer-api"

	defaultPerspectiveType = "Apparent Geocentric"
)

// Normalize превращает канонические данные рождения в наборы записей
// для персистентности: заголовок, планеты, дома и лунную фазу.
// Дата и время субъекта берутся из канонических данных, а не из формы:
// заголовок должен отражать то, от чего реально считал внешний API.
func (s *Service) Normalize(
	ctx context.Context,
	canonical *domain.CanonicalBirthData,
	profileID uuid.UUID,
	userID string,
	birthPlaceID string,
) (domain.NormalizedChart, error) {
	system, err := s.SystemRepo.GetOrCreate(ctx, houseSystemKey, houseSystemName)
	if err != nil {
		return domain.NormalizedChart{}, domain.WrapConfigurationError(
			fmt.Errorf("failed to resolve house system %q: %w", houseSystemKey, err))
	}

	header := domain.NatalChartRecord{
		ProfileID:           profileID,
		OwnerUserID:         userID,
		SubjectName:         canonical.Name,
		SubjectBirthDate:    time.Date(canonical.Year, time.Month(canonical.Month), canonical.Day, 0, 0, 0, 0, time.UTC),
		SubjectBirthTime:    fmt.Sprintf("%02d:%02d", canonical.Hour, canonical.Minute),
		SystemID:            system.ID,
		ZodiacType:          normalizeZodiacType(canonical.ZodiacType),
		HousesSystem:        normalizeHousesSystem(canonical.HousesSystemIdentifier),
		PerspectiveType:     canonical.PerspectiveType,
		SiderealMode:        canonical.SiderealMode,
		SunSign:             canonical.Sun.Sign,
		Ascendant:           canonical.Asc.Sign,
		MoonSign:            canonical.Moon.Sign,
		CalculationProvider: calculationProvider,
	}
	if header.PerspectiveType == "" {
		header.PerspectiveType = defaultPerspectiveType
	}

	// birth_place_id проходит только при валидном UUID, плейсхолдеры
	// от вызывающего отбрасываются
	if placeID, err := uuid.Parse(birthPlaceID); err == nil {
		header.SubjectBirthPlaceID = &placeID
	}

	planets := make([]domain.PlanetRecord, 0, 11)
	for _, np := range canonical.PlanetPoints() {
		point := np.Point
		name := point.Name
		if name == "" {
			name = capitalize(np.Key)
		}
		planets = append(planets, domain.PlanetRecord{
			PlanetName:  name,
			Sign:        point.Sign,
			Position:    formatPosition(point.Position),
			AbsPosition: formatPosition(point.AbsPos),
			House:       parseHouseNumber(point.House),
			Element:     point.Element,
			Quality:     point.Quality,
			Retrograde:  point.Retrograde != nil && *point.Retrograde,
			Emoji:       point.Emoji,
		})
	}

	housePoints := canonical.HousePoints()
	houses := make([]domain.HouseRecord, 0, len(housePoints))
	for i, point := range housePoints {
		houses = append(houses, domain.HouseRecord{
			HouseNumber:  i + 1,
			Sign:         point.Sign,
			CuspPosition: formatPosition(cuspPosition(point)),
			Emoji:        point.Emoji,
		})
	}

	var lunarPhase *domain.LunarPhaseRecord
	if canonical.LunarPhase != (domain.LunarPhase{}) {
		lunarPhase = &domain.LunarPhaseRecord{
			DegreesBetweenSunMoon: formatPosition(canonical.LunarPhase.DegreesBetweenSM),
			MoonPhase:             formatPosition(canonical.LunarPhase.MoonPhase),
			SunPhase:              formatPosition(canonical.LunarPhase.SunPhase),
			MoonEmoji:             canonical.LunarPhase.MoonEmoji,
			MoonPhaseName:         canonical.LunarPhase.MoonPhaseName,
		}
	}

	return domain.NormalizedChart{
		Chart:      header,
		Planets:    planets,
		Houses:     houses,
		LunarPhase: lunarPhase,
	}, nil
}

// formatPosition сериализует позицию в текст без потери точности
func formatPosition(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cuspPosition выбирает абсолютную позицию куспида; если поставщик
// прислал только знак-относительную position, берётся она
func cuspPosition(p domain.Point) float64 {
	if p.AbsPos == 0 && p.Position != 0 {
		return p.Position
	}
	return p.AbsPos
}

// parseHouseNumber извлекает номер дома из строки вида "House_7".
// Неразборчивое значение даёт 0.
func parseHouseNumber(house *string) int {
	if house == nil {
		return 0
	}
	for _, part := range strings.Split(*house, "_") {
		if n, err := strconv.Atoi(part); err == nil {
			return n
		}
	}
	return 0
}

// normalizeZodiacType приводит обозначение зодиака поставщика к
// каноническому названию
func normalizeZodiacType(zodiacType string) string {
	switch zodiacType {
	case "Tropic", "":
		return "Tropical"
	case "Sidereal":
		return "Sidereal"
	default:
		return zodiacType
	}
}

// normalizeHousesSystem разворачивает однобуквенный идентификатор
// системы домов в название
func normalizeHousesSystem(identifier string) string {
	switch identifier {
	case "P", "":
		return houseSystemName
	default:
		return identifier
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
