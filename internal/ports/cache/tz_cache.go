package cache

// TimezoneEntry — результат разрешения координат в таймзону
type TimezoneEntry struct {
	TimezoneID   string
	TimezoneName string
	RawOffset    int
	DSTOffset    int
}

// ITimezoneCache интерфейс для ограниченного in-memory кэша
// lookup'ов таймзон по координатам. Чистая оптимизация, не критичен
// для корректности.
type ITimezoneCache interface {
	Get(key string) (TimezoneEntry, bool)
	Put(key string, entry TimezoneEntry)
	Len() int
}
