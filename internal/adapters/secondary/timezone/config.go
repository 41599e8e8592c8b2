package timezone

type Config struct {
	BaseURL       string `envconfig:"BASE_URL" default:"https://maps.googleapis.com/maps/api/timezone/json"`
	ApiKey        string `envconfig:"KEY"`
	CacheCapacity int    `envconfig:"CACHE_CAPACITY" default:"1000"`
}
