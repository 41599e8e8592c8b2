package astro

import (
	"strconv"
	"strings"
	"time"

	"github.com/bilgisen/natal/internal/domain"
)

// DeriveTimestamps вычисляет производные представления времени рождения:
// локальный и UTC epoch и юлианский день. Локальное время приравнивается
// к UTC; timezone принимается для совместимости сигнатуры, смещение
// пока не применяется.
// Любая ошибка разбора даёт нулевую структуру, вызывающий трактует нули
// как "недоступно".
func DeriveTimestamps(birthDate time.Time, birthTime string, timezone string) domain.BirthTimestamps {
	hour, minute, ok := parseClock(birthTime)
	if !ok {
		return domain.BirthTimestamps{}
	}

	dt := time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), hour, minute, 0, 0, time.UTC)
	utc := dt.Unix()

	jdn := gregorianToJDN(birthDate.Year(), int(birthDate.Month()), birthDate.Day())
	julianDay := float64(jdn) + float64(hour-12)/24 + float64(minute)/1440

	return domain.BirthTimestamps{
		LocalTime: utc,
		UTCTime:   utc,
		JulianDay: julianDay,
	}
}

// parseClock разбирает "HH:MM", отсутствующие части считаются нулями
func parseClock(birthTime string) (int, int, bool) {
	if strings.TrimSpace(birthTime) == "" {
		return 0, 0, true
	}

	parts := strings.SplitN(birthTime, ":", 2)

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}

	minute := 0
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, false
		}
	}

	return hour, minute, true
}

// gregorianToJDN вычисляет номер юлианского дня для григорианской даты
func gregorianToJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}
