package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/tactical-scout-service/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New after defaults
	Backend  BackendConfig       `mapstructure:"backend"`
	Chat     ChatConfig          `mapstructure:"chat"`
	Storage  StorageConfig       `mapstructure:"storage"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	CORS     CORSConfig          `mapstructure:"cors"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// BackendConfig describes the scouting backend the service fronts.
type BackendConfig struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	ReportTimeout     time.Duration `mapstructure:"report_timeout" validate:"gt=0"`
	DraftTimeout      time.Duration `mapstructure:"draft_timeout" validate:"gt=0"`
	ChatTimeout       time.Duration `mapstructure:"chat_timeout" validate:"gt=0"`
	DefaultMatchLimit int           `mapstructure:"default_match_limit" validate:"min=1,max=50"`
	MaxConnsPerHost   int           `mapstructure:"max_conns_per_host" validate:"min=1"`
}

const (
	ChatModeLocal  = "local"
	ChatModeRemote = "remote"
	ChatModeGemini = "gemini"
	ChatModeHybrid = "hybrid"
)

type ChatConfig struct {
	Mode        string       `mapstructure:"mode" validate:"oneof=local remote gemini hybrid"`
	MaxSessions int          `mapstructure:"max_sessions" validate:"min=1"`
	Gemini      GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Temperature     float32       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int32         `mapstructure:"max_output_tokens" validate:"min=1"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type StorageConfig struct {
	Driver       string `mapstructure:"driver" validate:"oneof=memory postgres redis"`
	RedisURL     string `mapstructure:"redis_url"`
	KeyPrefix    string `mapstructure:"key_prefix"`
	HistoryLimit int    `mapstructure:"history_limit" validate:"min=1"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
}

// DSN renders the connection string; url.URL takes care of escaping credentials.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   p.DBName,
	}
	if p.User != "" || p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	q := u.Query()
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Validate checks struct tags, then rules that span sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	var errs []error
	switch c.Storage.Driver {
	case StoragePostgres:
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			errs = append(errs, errors.New("postgres.user, postgres.password and postgres.db are required for the postgres driver"))
		}
		if c.Postgres.Host == "" || c.Postgres.Port <= 0 {
			errs = append(errs, errors.New("postgres.host and postgres.port are required for the postgres driver"))
		}
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("storage.redis_url is required for the redis driver"))
		}
	}
	if c.Chat.Mode == ChatModeGemini {
		if c.Chat.Gemini.APIKey == "" {
			errs = append(errs, errors.New("chat.gemini.api_key is required for gemini mode"))
		}
		if c.Chat.Gemini.Model == "" {
			errs = append(errs, errors.New("chat.gemini.model is required for gemini mode"))
		}
	}
	return errors.Join(errs...)
}
