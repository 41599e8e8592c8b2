package astroApi

type Config struct {
	BaseURL string `envconfig:"BASE_URL" default:"https://astrologer.p.rapidapi.com"`
	Host    string `envconfig:"HOST" default:"astrologer.p.rapidapi.com"`
	ApiKey  string `envconfig:"KEY"`
	SkipSSL string `envconfig:"SKIP_SSL"` // Railway требует строки вместо bool
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}
