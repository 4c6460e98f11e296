package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
// Las credenciales externas son opcionales: si faltan, la capacidad
// correspondiente queda deshabilitada y el pipeline sigue respondiendo.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	DBMaxConns    int    `env:"DB_MAX_CONNS" envDefault:"5"`

	LLMAPIKey         string        `env:"LLM_API_KEY"`
	LLMBaseURL        string        `env:"LLM_BASE_URL" envDefault:"https://api.asi1.ai/v1"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"asi1-mini"`
	LLMTemperature    float64       `env:"LLM_TEMPERATURE" envDefault:"0.5"`
	LLMMaxTokens      int           `env:"LLM_MAX_TOKENS" envDefault:"2000"`
	LLMMaxAttempts    int           `env:"LLM_MAX_ATTEMPTS" envDefault:"3"`
	LLMAttemptTimeout time.Duration `env:"LLM_ATTEMPT_TIMEOUT" envDefault:"60s"`
	LLMRetryStep      time.Duration `env:"LLM_RETRY_STEP" envDefault:"1s"`

	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	MarketCacheTTL time.Duration `env:"MARKET_CACHE_TTL" envDefault:"60s"`

	AlpacaAPIKey     string        `env:"APCA_API_KEY_ID"`
	AlpacaAPISecret  string        `env:"APCA_API_SECRET_KEY"`
	CoinGeckoBaseURL string        `env:"COINGECKO_BASE_URL" envDefault:"https://api.coingecko.com/api/v3"`
	MarketTimeout    time.Duration `env:"MARKET_TIMEOUT" envDefault:"5s"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LLMEnabled indica si hay credenciales para el modelo generativo.
func (c *Config) LLMEnabled() bool { return c.LLMAPIKey != "" }

// StockQuotesEnabled indica si hay credenciales de Alpaca.
func (c *Config) StockQuotesEnabled() bool {
	return c.AlpacaAPIKey != "" && c.AlpacaAPISecret != ""
}
