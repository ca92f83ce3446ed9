package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stillpoint/internal/platform/config"
	apperrors "stillpoint/internal/platform/errors"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != config.BackendSQLite || cfg.DefaultMinutes != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ResolvedDBPath() != filepath.Join(dir, "stillpoint.db") {
		t.Fatalf("unexpected db path %s", cfg.ResolvedDBPath())
	}
	if cfg.Namespace() != "default" {
		t.Fatalf("unexpected namespace %s", cfg.Namespace())
	}
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "backend: file\ndefault_minutes: 20\npresets: [3, 7]\nprofile: Morning Sits\nbreathing: calming\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STILLPOINT_DEFAULT_MINUTES", "25")
	t.Setenv("STILLPOINT_LOG_LEVEL", "debug")
	t.Setenv("STILLPOINT_BREATHING", "box")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != config.BackendFile {
		t.Fatalf("expected file backend from yaml, got %s", cfg.Backend)
	}
	if cfg.DefaultMinutes != 25 {
		t.Fatalf("expected env to override yaml minutes, got %d", cfg.DefaultMinutes)
	}
	if len(cfg.Presets) != 2 || cfg.Presets[0] != 3 {
		t.Fatalf("unexpected presets %v", cfg.Presets)
	}
	if cfg.LogLevel != "debug" || cfg.Namespace() != "morning-sits" || cfg.Breathing != "box" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STILLPOINT_BACKEND=memory\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("STILLPOINT_BACKEND") })
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != config.BackendMemory {
		t.Fatalf("expected memory backend from .env, got %s", cfg.Backend)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	cases := []func(*config.Config){
		func(c *config.Config) { c.Backend = "redis" },
		func(c *config.Config) { c.DefaultMinutes = 0 },
		func(c *config.Config) { c.DefaultMinutes = config.MaxMinutes + 1 },
		func(c *config.Config) { c.Presets = nil },
		func(c *config.Config) { c.Presets = []int{5, 0} },
		func(c *config.Config) { c.MaxSessions = -1 },
		func(c *config.Config) { c.DataDir = "" },
	}
	for i, mutate := range cases {
		cfg := config.Default("/tmp/stillpoint")
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, apperrors.ErrInvalidConfig) {
			t.Fatalf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("presets: [oops\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(dir); !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
