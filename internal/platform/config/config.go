package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/slug"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	MaxMinutes = 180
	FileName   = "config.yaml"
	EnvPrefix  = "STILLPOINT_"
)

type Config struct {
	DataDir        string `yaml:"-"`
	Profile        string `yaml:"profile" env:"PROFILE"`
	Backend        string `yaml:"backend" env:"BACKEND"`
	DBPath         string `yaml:"db_path" env:"DB_PATH"`
	DefaultMinutes int    `yaml:"default_minutes" env:"DEFAULT_MINUTES"`
	Presets        []int  `yaml:"presets" env:"PRESETS" envSeparator:","`
	MaxSessions    int    `yaml:"max_sessions" env:"MAX_SESSIONS"`
	SoundFile      string `yaml:"sound_file" env:"SOUND_FILE"`
	SoundCommand   string `yaml:"sound_command" env:"SOUND_COMMAND"`
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL"`
	Language       string `yaml:"language" env:"LANGUAGE"`
	// Breathing is the guide pattern shown while sitting; empty turns it off.
	Breathing string `yaml:"breathing" env:"BREATHING"`
}

func Default(dataDir string) Config {
	return Config{
		DataDir:        dataDir,
		Profile:        "default",
		Backend:        BackendSQLite,
		DefaultMinutes: 10,
		Presets:        []int{5, 10, 15, 20, 30},
		SoundFile:      "bell.mp3",
		LogLevel:       "warn",
		Language:       "en",
	}
}

// DefaultDataDir honours STILLPOINT_HOME and otherwise uses the user config dir.
func DefaultDataDir() string {
	if home := strings.TrimSpace(os.Getenv(EnvPrefix + "HOME")); home != "" {
		return home
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".stillpoint"
	}
	return filepath.Join(base, "stillpoint")
}

// Load resolves defaults, then <dataDir>/config.yaml, then a .env file in the
// working directory, then STILLPOINT_* variables. Flags are applied by the
// caller afterwards, followed by Validate.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidConfig)
	}
	cfg := Default(dataDir)
	if err := cfg.mergeFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, c); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidConfig, path, err)
	}
	return nil
}

// Namespace is the storage key prefix derived from the profile name.
func (c Config) Namespace() string {
	return slug.Make(c.Profile)
}

// ResolvedDBPath returns DBPath or the default database inside DataDir.
func (c Config) ResolvedDBPath() string {
	if strings.TrimSpace(c.DBPath) != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, "stillpoint.db")
}

// StoreDir is where the file backend keeps one JSON document per key.
func (c Config) StoreDir() string {
	return filepath.Join(c.DataDir, "store")
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidConfig)
	}
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", apperrors.ErrInvalidConfig, c.Backend)
	}
	if c.DefaultMinutes < 1 || c.DefaultMinutes > MaxMinutes {
		return fmt.Errorf("%w: default minutes must be within 1..%d", apperrors.ErrInvalidConfig, MaxMinutes)
	}
	if len(c.Presets) == 0 {
		return fmt.Errorf("%w: at least one preset is required", apperrors.ErrInvalidConfig)
	}
	for _, p := range c.Presets {
		if p < 1 || p > MaxMinutes {
			return fmt.Errorf("%w: preset %d must be within 1..%d", apperrors.ErrInvalidConfig, p, MaxMinutes)
		}
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("%w: max sessions must be non-negative", apperrors.ErrInvalidConfig)
	}
	return nil
}
