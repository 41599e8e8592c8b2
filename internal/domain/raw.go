package domain

import "encoding/json"

// RawChartPayload — сырое тело ответа внешнего астро-API до нормализации.
// Поставщик меняет имена полей между версиями (asc/ascendant, first_house
// или массив houses), поэтому до разрешения алиасов работаем с raw JSON.
type RawChartPayload map[string]json.RawMessage
