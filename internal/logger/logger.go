package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const debugLogPath = "logs/debug.log"

type LoggerConfig struct {
	Level              string         `mapstructure:"level" json:"level,omitempty" validate:"oneof=trace debug info warn error"`
	Format             string         `mapstructure:"format" json:"format,omitempty" validate:"oneof=json console"`
	OutputTarget       string         `mapstructure:"output_target" json:"outputTarget,omitempty" validate:"oneof=stdout stderr"`
	TimeField          string         `mapstructure:"time_field" json:"timeField,omitempty"`
	TimeFormat         string         `mapstructure:"time_format" json:"timeFormat,omitempty" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName        string         `mapstructure:"service_name" json:"serviceName,omitempty"`
	ServiceVersion     string         `mapstructure:"service_version" json:"serviceVersion,omitempty"`
	Env                string         `mapstructure:"env" json:"env,omitempty" validate:"oneof=dev test staging prod"`
	WithCaller         bool           `mapstructure:"with_caller" json:"withCaller,omitempty"`
	Stacktrace         bool           `mapstructure:"stacktrace" json:"stacktrace,omitempty"`
	StacktraceMinLevel string         `mapstructure:"stacktrace_min_level" json:"stacktraceMinLevel,omitempty" validate:"oneof=debug info warn error fatal panic"`
	Fields             map[string]any `mapstructure:"fields" json:"fields,omitempty"`
}

// New builds the root logger. Components derive children from it with module/component fields.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	cfg.setDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFieldFormat(cfg.TimeFormat)

	logger := zerolog.New(writerFor(cfg, level)).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if cfg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(cfg.Fields) > 0 {
		logger = logger.With().Fields(cfg.Fields).Logger()
	}

	// must run after ParseLevel succeeded
	zerolog.SetGlobalLevel(level)
	return logger, nil
}

// writerFor picks the sink: JSON for prod-like envs, console for humans,
// and in dev at debug level a console plus an append-only file.
func writerFor(cfg *LoggerConfig, level zerolog.Level) io.Writer {
	var out io.Writer = os.Stdout
	if cfg.OutputTarget == "stderr" {
		out = os.Stderr
	}
	if cfg.Format == "json" {
		return out
	}

	console := zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat(cfg.TimeFormat)}
	if cfg.Env != "dev" || level > zerolog.DebugLevel {
		return console
	}
	if err := os.MkdirAll(filepath.Dir(debugLogPath), 0o755); err != nil {
		return console
	}
	file, err := os.OpenFile(debugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return console
	}
	return zerolog.MultiLevelWriter(console, file)
}

func timeFieldFormat(name string) string {
	switch name {
	case "rfc3339":
		return time.RFC3339
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	}
	return time.RFC3339Nano
}

func consoleTimeFormat(name string) string {
	if name == "unix" || name == "unix_ms" {
		return "15:04:05"
	}
	return timeFieldFormat(name)
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	dev := c.Env == "dev"

	if c.Level == "" {
		c.Level = "info"
		if dev {
			c.Level = "debug"
		}
	}
	if c.Format == "" {
		c.Format = "json"
		if dev {
			c.Format = "console"
		}
	}
	if c.OutputTarget == "" {
		c.OutputTarget = "stdout"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}

	if dev {
		c.WithCaller = true
	} else if !c.Stacktrace {
		c.Stacktrace = true
	}
	if c.StacktraceMinLevel == "" {
		c.StacktraceMinLevel = "error"
	}

	if c.ServiceName == "" {
		c.ServiceName = "tactical-scout-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
	if c.Fields == nil {
		c.Fields = make(map[string]any)
	}
}
