package config

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"XADREZ_ADDR", "XADREZ_ALLOW_ORIGINS", "XADREZ_LOG_LEVEL", "XADREZ_MATCHMAKING_INTERVAL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := &Config{
		Addr:                ":3000",
		AllowOrigins:        "http://localhost:5173",
		LogLevel:            "info",
		MatchmakingInterval: time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if cfg.Level() != log.LevelInfo {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("XADREZ_ADDR", ":8080")
	t.Setenv("XADREZ_LOG_LEVEL", "warn")
	t.Setenv("XADREZ_MATCHMAKING_INTERVAL", "5s")

	cfg, err := Load([]string{"-addr", ":9090", "-log-level", "DEBUG"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want flag value", cfg.Addr)
	}
	if cfg.LogLevel != "debug" || cfg.Level() != log.LevelDebug {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.MatchmakingInterval != 5*time.Second {
		t.Errorf("MatchmakingInterval = %s, want env value", cfg.MatchmakingInterval)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"empty addr", nil, []string{"-addr", ""}},
		{"unknown level", nil, []string{"-log-level", "loud"}},
		{"zero interval", nil, []string{"-matchmaking-interval", "0s"}},
		{"bad env interval", map[string]string{"XADREZ_MATCHMAKING_INTERVAL": "soon"}, nil},
		{"unknown flag", nil, []string{"-verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XADREZ_MATCHMAKING_INTERVAL", "1s")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadQuiet(tt.args)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load(%v) error = %v, want ErrInvalidConfig", tt.args, err)
			}
		})
	}
}

func loadQuiet(args []string) (*Config, error) {
	stderr := flagOutput
	flagOutput = io.Discard
	defer func() { flagOutput = stderr }()
	return Load(args)
}
