package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"TOURNAMENT_HTTP_ADDR"        envDefault:":8080"`
	DatabasePath    string        `env:"TOURNAMENT_DATABASE_PATH"    envDefault:"tournaments.db"`
	LogLevel        string        `env:"TOURNAMENT_LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"TOURNAMENT_LOG_FORMAT"       envDefault:"text"`
	ReadTimeout     time.Duration `env:"TOURNAMENT_READ_TIMEOUT"     envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"TOURNAMENT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file, then the process environment. Variables already
// set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return Config{}, fmt.Errorf("TOURNAMENT_DATABASE_PATH must not be empty")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return cfg, nil
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
