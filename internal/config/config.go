package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port          string `env:"PORT" envDefault:"8080"`
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	CORSOrigins   string `env:"CORS_ORIGINS" envDefault:"*"`

	// PostgreSQL
	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresMaxIdle  int    `env:"POSTGRES_MAX_IDLE" envDefault:"5"`
	PostgresMaxOpen  int    `env:"POSTGRES_MAX_OPEN" envDefault:"20"`
	NotifyChannel    string `env:"POSTGRES_NOTIFY_CHANNEL" envDefault:"itinerary_changes"`
	AutoMigrate      bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	ListenForChanges bool   `env:"LISTEN_FOR_CHANGES" envDefault:"true"`

	// Redis, optional. Empty address keeps the rate cache in memory.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"tripdeck"`

	// Session gate
	JWTSecret        string `env:"JWT_SECRET" envDefault:"change-me"`
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"720"`
	AppPassword      string `env:"APP_PASSWORD" envDefault:"123456"`

	// Generative AI
	AIProvider   string `env:"AI_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	EnrichRPS    int    `env:"ENRICH_RPS" envDefault:"2"`

	// Maps
	GoogleMapsAPIKey  string `env:"GOOGLE_MAPS_API_KEY"`
	GoogleMapsBaseURL string `env:"GOOGLE_MAPS_BASE_URL" envDefault:"https://maps.googleapis.com"`

	// Currency
	FXAPIURL     string `env:"FX_API_URL" envDefault:"https://open.er-api.com/v6/latest"`
	BaseCurrency string `env:"BASE_CURRENCY" envDefault:"TWD"`

	// Object storage
	StorageDir    string `env:"STORAGE_DIR" envDefault:"./data"`
	StorageBucket string `env:"STORAGE_BUCKET" envDefault:"itinerary-images"`

	// Logging
	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: cannot load .env file: %v, using environment variables", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.BaseCurrency = strings.ToUpper(cfg.BaseCurrency)

	cfg.warn()
	return cfg, nil
}

func (c *Config) warn() {
	if c.JWTSecret == "change-me" {
		log.Printf("WARN: JWT_SECRET is not set, using an insecure default")
	}
	if c.GeminiAPIKey == "" && c.OpenAIAPIKey == "" {
		log.Printf("WARN: no AI key is set, place enrichment will return placeholder text")
	}
	if c.GoogleMapsAPIKey == "" {
		log.Printf("WARN: GOOGLE_MAPS_API_KEY is not set, route optimization and geocoding are disabled")
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
