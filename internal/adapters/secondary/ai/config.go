package ai

type Config struct {
	BaseURL     string  `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Model       string  `envconfig:"MODEL" default:"gemini-2.0-flash"`
	ApiKey      string  `envconfig:"KEY"`
	Temperature float64 `envconfig:"TEMPERATURE" default:"0.7"`
}
