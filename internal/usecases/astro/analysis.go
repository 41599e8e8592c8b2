package astro

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bilgisen/natal/internal/domain"
	"github.com/bilgisen/natal/internal/usecases/astro/texts"
)

const analysisMaxTokens = 1000

// GetAnalysis возвращает текстовый разбор карты профиля: из кэша либо
// через генерацию по снимку карты с записью в кэш.
// Второй результат - признак попадания в кэш.
func (s *Service) GetAnalysis(ctx context.Context, profileID uuid.UUID, detailLevel domain.DetailLevel) (string, bool, error) {
	if !detailLevel.IsValid() {
		return "", false, domain.WrapValidationError(fmt.Errorf("unknown detail level: %s", detailLevel))
	}

	if text, ok := s.GetCachedAnalysis(ctx, profileID, detailLevel); ok {
		return text, true, nil
	}

	snapshot, err := s.SnapshotRepo.GetByProfile(ctx, profileID)
	if err != nil {
		return "", false, fmt.Errorf("failed to load chart snapshot: %w", err)
	}

	prompt := buildAnalysisPrompt(&snapshot.ChartData, detailLevel)

	text, err := s.AIService.Generate(ctx, prompt, analysisMaxTokens)
	if err != nil {
		return "", false, fmt.Errorf("failed to generate analysis: %w", err)
	}

	s.StoreAnalysis(ctx, profileID, detailLevel, text)

	s.Log.Info("analysis generated",
		"profile_id", profileID,
		"detail_level", detailLevel,
	)

	return text, false, nil
}

// buildAnalysisPrompt собирает промпт разбора из фактов карты
func buildAnalysisPrompt(chart *domain.CanonicalBirthData, detailLevel domain.DetailLevel) string {
	template := texts.InsightsTemplateBasic
	if detailLevel == domain.DetailLevelDetailed {
		template = texts.InsightsTemplateDetailed
	}

	vars := map[string]interface{}{
		"name":    chart.Name,
		"planets": formatPlanetLines(chart),
		"houses":  formatHouseLines(chart),
		"lunar_phase": map[string]interface{}{
			"moon_phase_name": chart.LunarPhase.MoonPhaseName,
			"moon_emoji":      chart.LunarPhase.MoonEmoji,
		},
		"sample_response": texts.SampleResponse,
	}

	return texts.Render(template, vars)
}

// formatPlanetLines форматирует планеты списком для промпта
func formatPlanetLines(chart *domain.CanonicalBirthData) string {
	var b strings.Builder
	for _, np := range chart.PlanetPoints() {
		point := np.Point
		name := point.Name
		if name == "" {
			name = capitalize(np.Key)
		}
		b.WriteString(fmt.Sprintf("- %s: %s %.2f°", name, point.Sign, point.Position))
		if house := parseHouseNumber(point.House); house > 0 {
			b.WriteString(fmt.Sprintf(", house %d", house))
		}
		if point.Retrograde != nil && *point.Retrograde {
			b.WriteString(", retrograde")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatHouseLines форматирует куспиды домов списком для промпта
func formatHouseLines(chart *domain.CanonicalBirthData) string {
	var b strings.Builder
	for i, point := range chart.HousePoints() {
		b.WriteString(fmt.Sprintf("- House %d: %s %.2f°\n", i+1, point.Sign, point.Position))
	}
	return strings.TrimRight(b.String(), "\n")
}
