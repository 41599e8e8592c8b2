package texts

import (
	"encoding/json"
	"regexp"
	"strings"
)

// InsightsTemplateBasic - промпт краткого разбора натальной карты
const InsightsTemplateBasic = `You are a professional astrologer. Prepare a concise natal chart reading for {{name}}.

Planetary placements:
{{planets}}

House cusps:
{{houses}}

Lunar phase at birth: {{lunar_phase.moon_phase_name}} {{lunar_phase.moon_emoji}}

Write a warm, accessible interpretation of about 300 words. Focus on the Sun, Moon and Ascendant. Do not use technical jargon without explaining it.

Follow the tone and structure of this sample response:
{{sample_response}}`

// InsightsTemplateDetailed - промпт развёрнутого разбора натальной карты
const InsightsTemplateDetailed = `You are a professional astrologer. Prepare an in-depth natal chart reading for {{name}}.

Planetary placements:
{{planets}}

House cusps:
{{houses}}

Lunar phase at birth: {{lunar_phase.moon_phase_name}} {{lunar_phase.moon_emoji}}

Write a thorough interpretation of about 800 words. Cover every planet, the angles, the house emphasis and the lunar phase. Discuss strengths, tensions and growth themes. Keep the language clear and supportive.

Follow the tone and structure of this sample response:
{{sample_response}}`

// DailyHoroscopeTemplate - промпт дневного гороскопа с учётом транзитов
const DailyHoroscopeTemplate = `You are a professional astrologer. Today is {{date}}.

Current planetary transits:
{{transits}}

Write a daily horoscope for all 12 zodiac signs based on these transits. Give each sign 2-3 sentences. Mention the most significant transit of the day in a short introduction.`

// DailyHoroscopeSimpleTemplate - упрощённый промпт без данных о транзитах
const DailyHoroscopeSimpleTemplate = `You are a professional astrologer. Today is {{date}}.

Write a general daily horoscope for all 12 zodiac signs. Give each sign 2-3 sentences.`

// SampleResponse - образец ответа для промптов разбора
const SampleResponse = `Your Sun in Leo gives you natural warmth and a need to be seen for who you are. With the Moon in Pisces your emotional world is deep and intuitive, and you often sense moods before words are spoken. Your Virgo Ascendant softens the fire: people first meet your careful, observant side, and only later discover the radiance underneath...`

var placeholderRe = regexp.MustCompile(`\{\{\s*([\w.]+)\s*\}\}`)

// Render подставляет значения vars вместо вхождений {{ dotted.path }}.
// Отсутствующий путь рендерится пустой строкой, нестроковые значения
// сериализуются в JSON. Чистая функция.
func Render(template string, vars map[string]interface{}) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		groups := placeholderRe.FindStringSubmatch(match)
		if len(groups) < 2 {
			return ""
		}
		return renderValue(lookupPath(vars, groups[1]))
	})
}

// lookupPath идёт по точечному пути внутри vars
func lookupPath(vars map[string]interface{}, path string) interface{} {
	segments := strings.Split(path, ".")
	var current interface{} = vars
	for _, segment := range segments {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = node[segment]
		if !ok {
			return nil
		}
	}
	return current
}

// renderValue переводит значение в строку для подстановки
func renderValue(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}
