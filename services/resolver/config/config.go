package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DocSyncConfig configures the external document synchronization push
type DocSyncConfig struct {
	Enabled          bool   `toml:"Enabled"`
	Endpoint         string `toml:"Endpoint"`
	DocumentID       string `toml:"DocumentID"`
	TimeoutInSeconds uint32 `toml:"TimeoutInSeconds"`
}

// Config maps to the config.toml file for the resolver service
type Config struct {
	Name                     string        `toml:"Name"`
	ListenAddress            string        `toml:"ListenAddress"`
	MetricsFile              string        `toml:"MetricsFile"`
	DatabasePath             string        `toml:"DatabasePath"`
	RetentionSeconds         int           `toml:"RetentionSeconds"`
	ResolveIntervalInSeconds uint32        `toml:"ResolveIntervalInSeconds"`
	FetchTimeoutInSeconds    uint32        `toml:"FetchTimeoutInSeconds"`
	MaxConcurrentFetches     int           `toml:"MaxConcurrentFetches"`
	DocSync                  DocSyncConfig `toml:"DocSync"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
