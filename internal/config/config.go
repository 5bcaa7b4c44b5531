package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AfterLaunch governs what the shell does right after a successful launch.
type AfterLaunch string

const (
	AfterLaunchNothing  AfterLaunch = "nothing"
	AfterLaunchClose    AfterLaunch = "close"
	AfterLaunchMinimize AfterLaunch = "minimize"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Library LibraryConfig
	Logging LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	Path string `envconfig:"DB_PATH" default:"gamedock.db"`
}

// LibraryConfig holds lifecycle/library behavior configuration.
type LibraryConfig struct {
	AfterLaunch      AfterLaunch   `envconfig:"AFTER_LAUNCH" default:"nothing"`
	FullscreenMode   bool          `envconfig:"FULLSCREEN_MODE" default:"false"`
	RecentGamesCount int           `envconfig:"RECENT_GAMES_COUNT" default:"10"`
	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "0.0.0.0",
		},
		Store: StoreConfig{
			Path: "gamedock.db",
		},
		Library: LibraryConfig{
			AfterLaunch:      AfterLaunchNothing,
			RecentGamesCount: 10,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
