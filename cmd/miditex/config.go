package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/leandrodaf/miditex/sdk/contracts"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`
	ClientName      string        `yaml:"client_name"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	SnapshotDir     string        `yaml:"snapshot_dir"`
	Color           *bool         `yaml:"color"`
}

func defaultConfig() Config {
	color := true
	return Config{
		LogLevel:        "info",
		ClientName:      "miditex",
		PollInterval:    time.Second,
		RefreshInterval: 50 * time.Millisecond,
		Color:           &color,
	}
}

// LoadConfig reads a YAML config from path. A missing file yields the defaults;
// keys absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	// An empty or null key decodes to nil.
	if cfg.Color == nil {
		cfg.Color = defaultConfig().Color
	}

	if _, err := contracts.ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll_interval must be positive, got %s", cfg.PollInterval)
	}
	if cfg.RefreshInterval <= 0 {
		return Config{}, fmt.Errorf("refresh_interval must be positive, got %s", cfg.RefreshInterval)
	}
	return cfg, nil
}
