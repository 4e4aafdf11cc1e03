package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads path, layers APP_* environment variables on top and validates the result.
// A .env file in the working directory is loaded first when present; it never overrides
// variables that are already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	// deployment manifests of the scouting stack export this name
	if err := v.BindEnv("backend.base_url", "APP_BACKEND_BASE_URL", "BACKEND_API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that any of them can be supplied by env alone.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tactical-scout-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", 10*time.Second)

	v.SetDefault("logger.level", "")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.output_target", "")
	v.SetDefault("logger.env", "")

	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.report_timeout", 30*time.Second)
	v.SetDefault("backend.draft_timeout", 15*time.Second)
	v.SetDefault("backend.chat_timeout", 60*time.Second)
	v.SetDefault("backend.default_match_limit", 5)
	v.SetDefault("backend.max_conns_per_host", 64)

	v.SetDefault("chat.mode", ChatModeHybrid)
	v.SetDefault("chat.max_sessions", 1024)
	v.SetDefault("chat.gemini.api_key", "")
	v.SetDefault("chat.gemini.model", "gemini-1.5-flash")
	v.SetDefault("chat.gemini.temperature", 0.3)
	v.SetDefault("chat.gemini.max_output_tokens", 1024)
	v.SetDefault("chat.gemini.timeout", 60*time.Second)

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.key_prefix", "scout")
	v.SetDefault("storage.history_limit", 20)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("cors.allowed_origins", []string{})
}
