package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the storage section.
const (
	EnvStore = "PADDLE_STORE"
	EnvDB    = "PADDLE_DB"
)

// Load loads the paddle configuration.
// Search order: customPath -> ~/.paddle/configs/paddle.yaml -> ./configs/paddle.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func Load(customPath string) (PaddleConfig, error) {
	cfg := DefaultPaddleConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return finish(cfg)
	}

	for _, path := range []string{userConfigPath("paddle.yaml"), filepath.Join("configs", "paddle.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultPaddleConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return finish(candidate)
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPaddleYAML, &cfg); err != nil {
		cfg = DefaultPaddleConfig() // Fallback to hardcoded if embed fails
	}
	return finish(cfg)
}

// finish applies environment overrides and validates the result.
func finish(cfg PaddleConfig) (PaddleConfig, error) {
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides storage settings from the environment.
func ApplyEnv(cfg *PaddleConfig) {
	cfg.Storage.Backend = GetEnv(EnvStore, cfg.Storage.Backend)
	cfg.Storage.Path = GetEnv(EnvDB, cfg.Storage.Path)
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".paddle", "configs", filename)
}
