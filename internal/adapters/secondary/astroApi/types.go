package astroApi

import "github.com/bilgisen/natal/internal/domain"

// SubjectPayload представляет субъекта для запроса расчёта
type SubjectPayload struct {
	Year                   int     `json:"year"`
	Month                  int     `json:"month"`
	Day                    int     `json:"day"`
	Hour                   int     `json:"hour"`
	Minute                 int     `json:"minute"`
	City                   string  `json:"city"`
	Nation                 string  `json:"nation"`
	Longitude              float64 `json:"longitude"`
	Latitude               float64 `json:"latitude"`
	Timezone               string  `json:"timezone"`
	Name                   string  `json:"name"`
	ZodiacType             string  `json:"zodiac_type"` // "Tropic" для тропического
	SiderealMode           *string `json:"sidereal_mode"`
	PerspectiveType        string  `json:"perspective_type"`
	HousesSystemIdentifier string  `json:"houses_system_identifier"` // "P" для Плацидуса
}

// BirthDataRequest представляет запрос на расчёт данных рождения
type BirthDataRequest struct {
	Subject   SubjectPayload `json:"subject"`
	Theme     string         `json:"theme"`
	Language  string         `json:"language"`
	WheelOnly bool           `json:"wheel_only"`
}

// apiEnvelope представляет конверт ответа API
type apiEnvelope struct {
	Status string                 `json:"status"`
	Data   domain.RawChartPayload `json:"data"`
}
