package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ProviderVenice = "venice"
	ProviderMock   = "mock"
)

type Config struct {
	Port        string     `env:"PORT" envDefault:"8000"`
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string     `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level

	// Chat backend
	RedisURL      string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	DataDir       string        `env:"DATA_DIR" envDefault:"./data"`
	MemoryTTL     time.Duration `env:"MEMORY_TTL" envDefault:"24h"`
	HistoryLimit  int           `env:"HISTORY_LIMIT" envDefault:"20"`
	LLMProvider   string        `env:"LLM_PROVIDER" envDefault:"mock"`
	VeniceAPIKey  string        `env:"VENICE_API_KEY"`
	VeniceBaseURL string        `env:"VENICE_BASE_URL"`
	ModelName     string        `env:"MODEL_NAME" envDefault:"venice-uncensored"`
	ContentFilter bool          `env:"CONTENT_FILTER" envDefault:"true"`

	// Console client
	APIBaseURL     string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	RosterFile     string `env:"ROSTER_FILE"`
	ConsoleLogFile string `env:"CONSOLE_LOG_FILE" envDefault:"console.log"`
	TickRate       int    `env:"TICK_RATE" envDefault:"30"`
}

// Load reads the optional env files (default .env) and then the process
// environment. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderMock:
	case ProviderVenice:
		if c.VeniceAPIKey == "" {
			return fmt.Errorf("VENICE_API_KEY is required when LLM_PROVIDER is %s", ProviderVenice)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("TICK_RATE must be positive, got %d", c.TickRate)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("HISTORY_LIMIT must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}

// TickInterval is the fixed simulation step for the console client.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
