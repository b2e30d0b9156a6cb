package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Staff     StaffConfig
	Gemini    GeminiConfig
	FormRelay FormRelayConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Assist    AssistConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Catalog.Path == "" && cfg.Catalog.URL == "" {
		return nil, fmt.Errorf("either %s or %s is required", EnvCatalogPath, EnvCatalogURL)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMARTCART_APP_ENV" default:"dev"`
	Port         string `envconfig:"SMARTCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SMARTCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"SMARTCART_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SMARTCART_DB_DSN" default:"file:smartcart.db?_pragma=busy_timeout(5000)"`

	MaxOpenConns    int           `envconfig:"SMARTCART_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SMARTCART_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SMARTCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMARTCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTCART_REDIS_URL"`
	Address      string        `envconfig:"SMARTCART_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all; the
// assist cache and rate limiting degrade gracefully when it was not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SMARTCART_JWT_SECRET" default:"smartcart-dev-secret"`
	Issuer            string `envconfig:"SMARTCART_JWT_ISSUER" default:"smartcart"`
	ExpirationMinutes int    `envconfig:"SMARTCART_JWT_EXPIRATION_MINUTES" default:"60"`
}

// StaffConfig carries the hardcoded staff-portal credential pair. This is a
// placeholder gate, not an authentication boundary; see DESIGN.md.
type StaffConfig struct {
	Username string `envconfig:"SMARTCART_STAFF_USERNAME" default:"admin"`
	Password string `envconfig:"SMARTCART_STAFF_PASSWORD" default:"admin123"`
}

type GeminiConfig struct {
	APIKey      string        `envconfig:"SMARTCART_GEMINI_API_KEY"`
	Model       string        `envconfig:"SMARTCART_GEMINI_MODEL" default:"gemini-3-flash-preview"`
	BaseURL     string        `envconfig:"SMARTCART_GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout     time.Duration `envconfig:"SMARTCART_GEMINI_TIMEOUT" default:"30s"`
	MaxAttempts int           `envconfig:"SMARTCART_GEMINI_MAX_ATTEMPTS" default:"3"`
}

type FormRelayConfig struct {
	Endpoint string        `envconfig:"SMARTCART_FORM_RELAY_ENDPOINT" default:"https://formspree.io/f/mykdzvry"`
	Timeout  time.Duration `envconfig:"SMARTCART_FORM_RELAY_TIMEOUT" default:"15s"`
}

type CatalogConfig struct {
	Path string `envconfig:"SMARTCART_CATALOG_PATH" default:"data/products.json"`
	URL  string `envconfig:"SMARTCART_CATALOG_URL"`
}

type CartConfig struct {
	// Delay between checkout submission and the best-effort cart clear.
	ClearDelay time.Duration `envconfig:"SMARTCART_CART_CLEAR_DELAY" default:"1s"`
}

type AssistConfig struct {
	CacheTTL        time.Duration `envconfig:"SMARTCART_ASSIST_CACHE_TTL" default:"10m"`
	RateLimitWindow time.Duration `envconfig:"SMARTCART_ASSIST_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int64         `envconfig:"SMARTCART_ASSIST_RATE_LIMIT_MAX" default:"10"`
}
