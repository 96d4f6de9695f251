package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in every directory.
const FileName = "sokoban.yaml"

// Environment variables that override file settings.
const (
	EnvLevels   = "SOKOBAN_LEVELS"
	EnvDB       = "SOKOBAN_DB"
	EnvSSHAddr  = "SOKOBAN_SSH_ADDR"
	EnvLogLevel = "SOKOBAN_LOG_LEVEL"
)

// Load loads the platform configuration, applies environment overrides and
// validates the result.
// Search order: customPath -> ~/.sokoban/sokoban.yaml -> ./configs/sokoban.yaml -> embedded default
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	ApplyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			parsed := Default()
			if err := yaml.Unmarshal(data, &parsed); err == nil {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		parsed := Default()
		if err := yaml.Unmarshal(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	parsed := Default()
	if err := yaml.Unmarshal(defaultYAML, &parsed); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

// ApplyEnv overrides cfg with SOKOBAN_* variables. A .env file in the
// working directory is loaded first; variables already set in the
// environment win over it.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load() // a missing .env is fine

	if v, ok := os.LookupEnv(EnvLevels); ok {
		cfg.Levels.Dir = v
	}
	if v, ok := os.LookupEnv(EnvDB); ok && v != "" {
		cfg.Scores.DB = v
	}
	if v, ok := os.LookupEnv(EnvSSHAddr); ok && v != "" {
		cfg.SSH.Address = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sokoban", filename)
}
