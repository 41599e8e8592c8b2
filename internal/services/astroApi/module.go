package astroApi

import (
	"context"
	"fmt"

	"log/slog"

	astroApiAdapter "github.com/bilgisen/natal/internal/adapters/secondary/astroApi"
	"github.com/bilgisen/natal/internal/domain"
	"github.com/bilgisen/natal/internal/ports/service"
)

// Service реализует IAstroAPIService для работы с астро-API
type Service struct {
	client *astroApiAdapter.Client
	log    *slog.Logger
}

// New создаёт новый сервис для работы с астро-API
func New(client *astroApiAdapter.Client, log *slog.Logger) service.IAstroAPIService {
	return &Service{
		client: client,
		log:    log,
	}
}

// FetchBirthData рассчитывает данные рождения по субъекту профиля.
// Названия стран разрешаются в ISO-коды локально, без обращения к геокодеру.
func (s *Service) FetchBirthData(ctx context.Context, subject domain.BirthSubject) (domain.RawChartPayload, error) {
	hour, minute, err := subject.Clock()
	if err != nil {
		return nil, domain.WrapValidationError(err)
	}

	nation, exact := astroApiAdapter.ResolveCountryCode(subject.Country)
	if !exact {
		s.log.Warn("country not found in mapping, using fallback code",
			"country", subject.Country,
			"code", nation,
		)
	}

	timezone := subject.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	req := astroApiAdapter.BirthDataRequest{
		Subject: astroApiAdapter.SubjectPayload{
			Year:                   subject.BirthDate.Year(),
			Month:                  int(subject.BirthDate.Month()),
			Day:                    subject.BirthDate.Day(),
			Hour:                   hour,
			Minute:                 minute,
			City:                   subject.City,
			Nation:                 nation,
			Longitude:              subject.Longitude,
			Latitude:               subject.Latitude,
			Timezone:               timezone,
			Name:                   subject.Name,
			ZodiacType:             "Tropic",
			PerspectiveType:        "Apparent Geocentric",
			HousesSystemIdentifier: "P",
		},
		Theme:     "classic",
		Language:  "EN",
		WheelOnly: false,
	}

	raw, err := s.client.FetchBirthData(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch birth data: %w", err)
	}

	return raw, nil
}

// FetchCurrentTransits получает текущие позиции планет
func (s *Service) FetchCurrentTransits(ctx context.Context) (domain.RawChartPayload, error) {
	raw, err := s.client.FetchNow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current transits: %w", err)
	}

	return raw, nil
}
