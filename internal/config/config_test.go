package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/tactical-scout-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: tactical-scout-service
  version: 0.2.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  time_format: rfc3339

backend:
  base_url: http://scout-backend:8000/
  draft_timeout: 5s

storage:
  driver: postgres

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
`
	path := writeTempConfig(t, yaml)
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")
	t.Setenv("APP_CHAT_MODE", "local")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://coach.example.com,https://staff.example.com")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "http://scout-backend:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.DraftTimeout)
	assert.Equal(t, 30*time.Second, cfg.Backend.ReportTimeout)
	assert.Equal(t, 60*time.Second, cfg.Backend.ChatTimeout)
	assert.Equal(t, 60*time.Second, cfg.Chat.Gemini.Timeout)
	assert.Equal(t, 5, cfg.Backend.DefaultMatchLimit)
	assert.Equal(t, "local", cfg.Chat.Mode)
	assert.Equal(t, 1024, cfg.Chat.MaxSessions)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, []string{"https://coach.example.com", "https://staff.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "test", cfg.Logger.Env, "logger env follows app env when unset")
	assert.Equal(t, "0.2.0", cfg.Logger.ServiceVersion)
}

func TestConfigLoad_BackendURLFromLegacyEnv(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: test\n")
	t.Setenv("BACKEND_API_URL", "https://api.scout.example.com")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.scout.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, config.ChatModeHybrid, cfg.Chat.Mode)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
}

func TestConfigLoad_MissingPostgresSecretsFails(t *testing.T) {
	path := writeTempConfig(t, "storage:\n  driver: postgres\n")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres.user")
}

func TestConfigLoad_GeminiNeedsKey(t *testing.T) {
	path := writeTempConfig(t, "chat:\n  mode: gemini\n")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")

	t.Setenv("APP_CHAT_GEMINI_API_KEY", "secret")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Chat.Gemini.APIKey)
}

func TestConfigLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad chat mode":     "chat:\n  mode: psychic\n",
		"bad driver":        "storage:\n  driver: floppy\n",
		"match limit range": "backend:\n  default_match_limit: 99\n",
		"redis without url": "storage:\n  driver: redis\n",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeTempConfig(t, yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := config.PostgresConfig{Host: "db", Port: 5433, User: "scout", Password: "p@ss word", DBName: "history", SSLMode: "disable"}
	assert.Equal(t, "postgres://scout:p%40ss%20word@db:5433/history?sslmode=disable", p.DSN())
}
