package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel   LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP       HTTP       `mapstructure:",squash"`
	Redis      Redis      `mapstructure:",squash"`
	Extraction Extraction `mapstructure:",squash"`
	Billing    Billing    `mapstructure:",squash"`
	Share      Share      `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Extraction holds the document-understanding model configuration.
type Extraction struct {
	APIURL       string        `mapstructure:"EXTRACTION_API_URL"`
	APIKey       string        `mapstructure:"EXTRACTION_API_KEY"`
	Model        string        `mapstructure:"EXTRACTION_MODEL"`
	Timeout      time.Duration `mapstructure:"EXTRACTION_TIMEOUT"`
	MaxRetries   int           `mapstructure:"EXTRACTION_MAX_RETRIES"`
	RateLimitRPS int           `mapstructure:"EXTRACTION_RATE_LIMIT"`
	LockTimeout  time.Duration `mapstructure:"EXTRACTION_LOCK_TIMEOUT"`
}

type Billing struct {
	APIURL      string        `mapstructure:"BILLING_API_URL"`
	Timeout     time.Duration `mapstructure:"BILLING_TIMEOUT"`
	FreeExports int           `mapstructure:"BILLING_FREE_EXPORTS"`
}

type Share struct {
	TTL time.Duration `mapstructure:"SHARE_TTL"`
}
