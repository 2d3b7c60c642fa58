package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid config")

// flagOutput receives usage text on parse errors.
var flagOutput io.Writer = os.Stderr

// Config holds the server settings.
type Config struct {
	Addr                string
	AllowOrigins        string
	LogLevel            string
	MatchmakingInterval time.Duration
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Load parses args, falling back to XADREZ_* environment variables and then to
// built-in defaults.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("xadrez", flag.ContinueOnError)
	fs.SetOutput(flagOutput)

	cfg := &Config{}
	fs.StringVar(&cfg.Addr, "addr", envOr("XADREZ_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", envOr("XADREZ_ALLOW_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("XADREZ_LOG_LEVEL", "info"), "trace, debug, info, warn or error")

	interval, err := time.ParseDuration(envOr("XADREZ_MATCHMAKING_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("XADREZ_MATCHMAKING_INTERVAL: %v: %w", err, ErrInvalidConfig)
	}
	fs.DurationVar(&cfg.MatchmakingInterval, "matchmaking-interval", interval, "how often queued players are paired")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("empty listen address: %w", ErrInvalidConfig)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("unknown log level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	if c.MatchmakingInterval <= 0 {
		return fmt.Errorf("matchmaking interval must be positive, got %s: %w", c.MatchmakingInterval, ErrInvalidConfig)
	}
	return nil
}

// Level is the fiber log level for LogLevel.
func (c *Config) Level() log.Level {
	return logLevels[c.LogLevel]
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
