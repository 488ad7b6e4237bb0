// Package config loads process configuration from the environment.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/ddb-converter/internal/clients/dndbeyond"
	"github.com/KirkDiggler/ddb-converter/internal/clients/external"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the resolved process configuration.
type Config struct {
	Port      int
	LogLevel  slog.Level
	LogFormat string
	// RedisURL enables the character cache when set
	RedisURL  string
	CacheTTL  time.Duration
	FlagsFile string
	DNDBeyond dndbeyond.Config
	SRD       external.Config
}

// rawEnv holds raw env values.
type rawEnv struct {
	Port           int           `env:"DDB_CONVERTER_PORT" envDefault:"50051"`
	LogLevel       string        `env:"DDB_CONVERTER_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"DDB_CONVERTER_LOG_FORMAT" envDefault:"text"`
	RedisURL       string        `env:"DDB_CONVERTER_REDIS_URL"`
	CacheTTL       time.Duration `env:"DDB_CONVERTER_CACHE_TTL" envDefault:"10m"`
	FlagsFile      string        `env:"DDB_CONVERTER_FLAGS_FILE"`
	DDBBaseURL     string        `env:"DDB_CONVERTER_DDB_BASE_URL"`
	DDBTimeout     time.Duration `env:"DDB_CONVERTER_DDB_TIMEOUT" envDefault:"15s"`
	DDBMaxAttempts uint          `env:"DDB_CONVERTER_DDB_MAX_ATTEMPTS" envDefault:"3"`
	DDBUserAgent   string        `env:"DDB_CONVERTER_DDB_USER_AGENT"`
	SRDBaseURL     string        `env:"DDB_CONVERTER_SRD_BASE_URL"`
	SRDTimeout     time.Duration `env:"DDB_CONVERTER_SRD_TIMEOUT" envDefault:"10s"`
	SRDCacheTTL    time.Duration `env:"DDB_CONVERTER_SRD_CACHE_TTL" envDefault:"24h"`
}

// Load reads the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return load(env.Options{Environment: environment})
}

func load(opts env.Options) (*Config, error) {
	var raw rawEnv
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	cfg := &Config{
		Port:      raw.Port,
		LogFormat: strings.ToLower(raw.LogFormat),
		RedisURL:  raw.RedisURL,
		CacheTTL:  raw.CacheTTL,
		FlagsFile: raw.FlagsFile,
		DNDBeyond: dndbeyond.Config{
			BaseURL:     raw.DDBBaseURL,
			HTTPTimeout: raw.DDBTimeout,
			MaxAttempts: raw.DDBMaxAttempts,
			UserAgent:   raw.DDBUserAgent,
		},
		SRD: external.Config{
			BaseURL:     raw.SRDBaseURL,
			HTTPTimeout: raw.SRDTimeout,
			CacheTTL:    raw.SRDCacheTTL,
		},
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(raw.LogLevel)); err != nil {
		return nil, errors.InvalidArgumentf("invalid log level: %s", raw.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Port <= 0 || c.Port > 65535 {
		vb.Fieldf("port", "must be between 1 and 65535, got %d", c.Port)
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		vb.Fieldf("log_format", "must be %s or %s", LogFormatText, LogFormatJSON)
	}
	if c.CacheTTL < 0 {
		vb.Field("cache_ttl", "must not be negative")
	}

	return vb.Build()
}

// NewLogger builds the process logger.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
