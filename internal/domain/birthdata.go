package domain

import (
	"fmt"
	"time"
)

// Point — положение небесного тела, угла или куспида дома.
// Позиция всегда нормализована в диапазон [0, 360).
type Point struct {
	Name       string  `json:"name"`
	Quality    string  `json:"quality"`
	Element    string  `json:"element"`
	Sign       string  `json:"sign"`
	SignNum    int     `json:"sign_num"`
	Position   float64 `json:"position"`
	AbsPos     float64 `json:"abs_pos"`
	Emoji      string  `json:"emoji"`
	PointType  string  `json:"point_type"`
	House      *string `json:"house,omitempty"`      // у домов отсутствует
	Retrograde *bool   `json:"retrograde,omitempty"` // у домов отсутствует
}

// LunarPhase — лунная фаза на момент рождения
type LunarPhase struct {
	DegreesBetweenSM float64 `json:"degrees_between_s_m"`
	MoonPhase        float64 `json:"moon_phase"`
	SunPhase         float64 `json:"sun_phase"`
	MoonEmoji        string  `json:"moon_emoji"`
	MoonPhaseName    string  `json:"moon_phase_name"`
}

// BirthSubject — данные о рождении из формы профиля.
// Неизменяемы после отправки во внешний астро-API.
type BirthSubject struct {
	Name      string
	BirthDate time.Time
	BirthTime string // "HH:MM", 24h
	City      string
	Country   string
	Latitude  float64
	Longitude float64
	Timezone  string // IANA
}

// Clock разбирает время рождения "HH:MM" на часы и минуты
func (s BirthSubject) Clock() (int, int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s.BirthTime, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid birth time %q: %w", s.BirthTime, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid birth time %q: out of range", s.BirthTime)
	}
	return hour, minute, nil
}

// BirthTimestamps — производные представления времени рождения.
// Нулевые значения означают "недоступно", а не эпоху Unix.
type BirthTimestamps struct {
	LocalTime int64   `json:"local_time"`
	UTCTime   int64   `json:"utc_time"`
	JulianDay float64 `json:"julian_day"`
}

// CanonicalBirthData — каноническая форма ответа внешнего астро-API.
// Создаётся один раз на вызов API и не мутируется, только заменяется
// свежей нормализацией.
type CanonicalBirthData struct {
	Name       string  `json:"name"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Day        int     `json:"day"`
	Hour       int     `json:"hour"`
	Minute     int     `json:"minute"`
	City       string  `json:"city"`
	Nation     string  `json:"nation"`
	Lng        float64 `json:"lng"`
	Lat        float64 `json:"lat"`
	TzStr      string  `json:"tz_str"`
	ZodiacType string  `json:"zodiac_type"` // "Tropic" | "Sidereal"
	LocalTime  float64 `json:"local_time,omitempty"`
	UTCTime    float64 `json:"utc_time,omitempty"`
	JulianDay  float64 `json:"julian_day"`

	Sun     Point  `json:"sun"`
	Moon    Point  `json:"moon"`
	Mercury Point  `json:"mercury"`
	Venus   Point  `json:"venus"`
	Mars    Point  `json:"mars"`
	Jupiter Point  `json:"jupiter"`
	Saturn  Point  `json:"saturn"`
	Uranus  Point  `json:"uranus"`
	Neptune Point  `json:"neptune"`
	Pluto   Point  `json:"pluto"`
	Chiron  *Point `json:"chiron,omitempty"`

	Asc Point `json:"asc"`
	Dsc Point `json:"dsc"`
	Mc  Point `json:"mc"`
	Ic  Point `json:"ic"`

	FirstHouse    Point `json:"first_house"`
	SecondHouse   Point `json:"second_house"`
	ThirdHouse    Point `json:"third_house"`
	FourthHouse   Point `json:"fourth_house"`
	FifthHouse    Point `json:"fifth_house"`
	SixthHouse    Point `json:"sixth_house"`
	SeventhHouse  Point `json:"seventh_house"`
	EighthHouse   Point `json:"eighth_house"`
	NinthHouse    Point `json:"ninth_house"`
	TenthHouse    Point `json:"tenth_house"`
	EleventhHouse Point `json:"eleventh_house"`
	TwelfthHouse  Point `json:"twelfth_house"`

	MeanNode *Point `json:"mean_node,omitempty"`
	TrueNode *Point `json:"true_node,omitempty"`

	LunarPhase LunarPhase `json:"lunar_phase"`

	HousesSystemIdentifier string  `json:"houses_system_identifier,omitempty"`
	PerspectiveType        string  `json:"perspective_type,omitempty"`
	SiderealMode           *string `json:"sidereal_mode,omitempty"`
}

// NamedPoint — планета с её каноническим ключом
type NamedPoint struct {
	Key   string
	Point Point
}

// PlanetPoints возвращает планеты в фиксированном порядке.
// Хирон опционален и включается только если присутствовал в ответе API.
func (c *CanonicalBirthData) PlanetPoints() []NamedPoint {
	points := []NamedPoint{
		{"sun", c.Sun},
		{"moon", c.Moon},
		{"mercury", c.Mercury},
		{"venus", c.Venus},
		{"mars", c.Mars},
		{"jupiter", c.Jupiter},
		{"saturn", c.Saturn},
		{"uranus", c.Uranus},
		{"neptune", c.Neptune},
		{"pluto", c.Pluto},
	}
	if c.Chiron != nil {
		points = append(points, NamedPoint{"chiron", *c.Chiron})
	}
	return points
}

// HousePoints возвращает 12 домов в порядке с первого по двенадцатый
func (c *CanonicalBirthData) HousePoints() [12]Point {
	return [12]Point{
		c.FirstHouse, c.SecondHouse, c.ThirdHouse, c.FourthHouse,
		c.FifthHouse, c.SixthHouse, c.SeventhHouse, c.EighthHouse,
		c.NinthHouse, c.TenthHouse, c.EleventhHouse, c.TwelfthHouse,
	}
}

// ChartSnapshot — денормализованный снимок карты, хранится на профиле (JSONB)
// для быстрых чтений UI. Время пересчитывается локально, а не берётся из
// ответа внешнего API (его поля времени ненадёжны).
type ChartSnapshot struct {
	ChartData  CanonicalBirthData `json:"chart_data"`
	Timestamps BirthTimestamps    `json:"timestamps"`
}
