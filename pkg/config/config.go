// Package config loads analysis settings from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	configDirName  = ".epilog"
	configFileName = "config.json"
)

// Config holds the tunable analysis thresholds and paths.
type Config struct {
	WinThreshold  float64 `json:"win_threshold" env:"EPILOG_WIN_THRESHOLD"`
	StepLimit     int     `json:"step_limit" env:"EPILOG_STEP_LIMIT"`
	EarlyActions  int     `json:"early_actions" env:"EPILOG_EARLY_ACTIONS"`
	HistogramBins int     `json:"histogram_bins" env:"EPILOG_HISTOGRAM_BINS"`
	DatabasePath  string  `json:"database_path" env:"EPILOG_DATABASE_PATH"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		WinThreshold:  50,
		StepLimit:     100,
		EarlyActions:  95,
		HistogramBins: 20,
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads the config file if present, then applies environment
// overrides. A missing file yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadPath(path)
}

// LoadPath is Load with an explicit file location.
func LoadPath(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its default location, creating the
// directory if needed.
func Save(cfg Config) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, SavePath(cfg, path)
}

// SavePath writes the config to an explicit file location.
func SavePath(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
