// Package config loads pkglens configuration from pkglens.yml or the
// environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the pkglens configuration
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Log      LogConfig      `mapstructure:"log"`
}

// RegistryConfig configures the external metadata service
type RegistryConfig struct {
	// Command is the metadata service binary to spawn on first use
	Command string `mapstructure:"command"`

	// Args are passed to the service command
	Args []string `mapstructure:"args"`

	// DefaultName is the registry label used when the service does not
	// report one
	DefaultName string `mapstructure:"default_name"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from pkglens.yml or pkglens.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("registry.default_name", "General")
	v.SetDefault("log.level", "info")

	// Set config name and paths
	v.SetConfigName("pkglens")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/pkglens")

	// Enable environment variable support
	v.SetEnvPrefix("PKGLENS")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
