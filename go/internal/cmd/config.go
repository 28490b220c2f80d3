package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration. Environment variables override
// file values; everything has a usable default for local development.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Store struct {
		Mode string `yaml:"mode"` // "memory" or "postgres"
	} `yaml:"store"`
	Nats struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"nats"`
}

const (
	storeModeMemory   = "memory"
	storeModePostgres = "postgres"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// loadConfig reads the YAML file if present, then applies env overrides.
func loadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Store.Mode == "" {
		config.Store.Mode = storeModeMemory
	}
	if config.Nats.URL == "" {
		config.Nats.URL = "nats://localhost:4222"
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.Store.Mode = getEnv("STORE_MODE", config.Store.Mode)
	config.Nats.Enabled = getEnvAsBool("NATS_ENABLED", config.Nats.Enabled)
	config.Nats.URL = getEnv("NATS_URL", config.Nats.URL)

	if config.Store.Mode != storeModeMemory && config.Store.Mode != storeModePostgres {
		return nil, fmt.Errorf("unknown store mode %q", config.Store.Mode)
	}

	return &config, nil
}
