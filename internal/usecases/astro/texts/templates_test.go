package texts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Run("simple substitution", func(t *testing.T) {
		got := Render("Hello {{name}}!", map[string]interface{}{"name": "Alice"})
		assert.Equal(t, "Hello Alice!", got)
	})

	t.Run("whitespace inside braces", func(t *testing.T) {
		got := Render("Hello {{ name }}!", map[string]interface{}{"name": "Alice"})
		assert.Equal(t, "Hello Alice!", got)
	})

	t.Run("dotted path", func(t *testing.T) {
		vars := map[string]interface{}{
			"lunar_phase": map[string]interface{}{
				"moon_phase_name": "Full Moon",
			},
		}
		got := Render("Phase: {{lunar_phase.moon_phase_name}}", vars)
		assert.Equal(t, "Phase: Full Moon", got)
	})

	t.Run("missing key renders empty", func(t *testing.T) {
		got := Render("Hello {{name}}!", map[string]interface{}{})
		assert.Equal(t, "Hello !", got)
	})

	t.Run("missing nested path renders empty", func(t *testing.T) {
		vars := map[string]interface{}{"lunar_phase": "not a map"}
		got := Render("{{lunar_phase.moon_phase_name}}", vars)
		assert.Equal(t, "", got)
	})

	t.Run("non-string values are JSON encoded", func(t *testing.T) {
		vars := map[string]interface{}{
			"count":  3,
			"coords": []float64{41.0, 28.9},
		}
		got := Render("{{count}} at {{coords}}", vars)
		assert.Equal(t, "3 at [41,28.9]", got)
	})

	t.Run("repeated placeholder", func(t *testing.T) {
		got := Render("{{name}} and {{name}}", map[string]interface{}{"name": "Alice"})
		assert.Equal(t, "Alice and Alice", got)
	})

	t.Run("template without placeholders", func(t *testing.T) {
		got := Render("plain text", nil)
		assert.Equal(t, "plain text", got)
	})
}

func TestPromptTemplatesRenderCompletely(t *testing.T) {
	vars := map[string]interface{}{
		"name":    "Alice",
		"planets": "- Sun: Leo 15.00°",
		"houses":  "- House 1: Virgo 12.00°",
		"lunar_phase": map[string]interface{}{
			"moon_phase_name": "Full Moon",
			"moon_emoji":      "🌕",
		},
		"sample_response": SampleResponse,
		"date":            "2026-08-31",
		"transits":        "{}",
	}

	for _, template := range []string{
		InsightsTemplateBasic,
		InsightsTemplateDetailed,
		DailyHoroscopeTemplate,
		DailyHoroscopeSimpleTemplate,
	} {
		got := Render(template, vars)
		assert.NotContains(t, got, "{{")
		assert.NotContains(t, got, "}}")
	}
}
