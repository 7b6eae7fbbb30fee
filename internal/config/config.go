// Package config loads server configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the Literature server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig configures the WebSocket listener.
type ServerConfig struct {
	WebSocket       WebSocketConfig `mapstructure:"websocket"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
}

// WebSocketConfig configures the WebSocket endpoint.
type WebSocketConfig struct {
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

// DatabaseConfig configures game-record persistence. An empty URL disables
// persistence entirely.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig carries game defaults.
type GameConfig struct {
	DefaultPlayers int `mapstructure:"default_players"`
	MoveLimit      int `mapstructure:"move_limit"`
}

// Load reads configuration from the given file, falling back to defaults
// when the path is empty or the file does not exist. Environment variables
// prefixed LITERATURE_ override file values (e.g.
// LITERATURE_SERVER_WEBSOCKET_ADDRESS).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.websocket.address", ":8080")
	v.SetDefault("server.websocket.path", "/ws")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("game.default_players", 4)
	v.SetDefault("game.move_limit", 200)

	v.SetEnvPrefix("LITERATURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
			// A missing file falls back to defaults and environment.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Game.DefaultPlayers < 4 || cfg.Game.DefaultPlayers > 8 || cfg.Game.DefaultPlayers%2 != 0 {
		return nil, fmt.Errorf("game.default_players must be 4, 6 or 8, got %d", cfg.Game.DefaultPlayers)
	}
	return &cfg, nil
}
