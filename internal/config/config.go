package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultSelfName  = "nanda"
	DefaultOtherName = "broo muksin"
	DefaultFile      = "_chat.txt"
)

type Config struct {
	SelfName    string `toml:"self_name" envconfig:"SELF_NAME"`
	OtherName   string `toml:"other_name" envconfig:"OTHER_NAME"`
	DefaultFile string `toml:"default_file" envconfig:"DEFAULT_FILE" validate:"required"`
	PrefsPath   string `toml:"prefs_path" envconfig:"PREFS_PATH" validate:"required"`
	LogLevel    string `toml:"log_level" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`

	// Path is the config file that was read, empty when none exists.
	Path string `toml:"-" ignored:"true"`
}

var validate = validator.New()

// Load reads defaults, then ~/.config/wat/config.toml, then WAT_* environment overrides.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return load(home, filepath.Join(home, ".config", "wat", "config.toml"))
}

func load(home, cfgPath string) (*Config, error) {
	cfg := &Config{
		SelfName:    DefaultSelfName,
		OtherName:   DefaultOtherName,
		DefaultFile: DefaultFile,
		PrefsPath:   filepath.Join(home, ".config", "wat", "prefs.db"),
		LogLevel:    "warn",
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	}

	if err := envconfig.Process("wat", cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}

	// blank labels fall back to the defaults
	cfg.SelfName = strings.TrimSpace(cfg.SelfName)
	if cfg.SelfName == "" {
		cfg.SelfName = DefaultSelfName
	}
	cfg.OtherName = strings.TrimSpace(cfg.OtherName)
	if cfg.OtherName == "" {
		cfg.OtherName = DefaultOtherName
	}

	// expand ~ in paths
	cfg.DefaultFile = expandHome(cfg.DefaultFile, home)
	cfg.PrefsPath = expandHome(cfg.PrefsPath, home)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to warn.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
