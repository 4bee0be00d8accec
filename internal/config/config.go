// This file defines the configuration structure for the application.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port   int    `mapstructure:"port"`
	Mirror string `mapstructure:"mirror"`
	Output struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"output"`
	Fetch struct {
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
		Workers        int `mapstructure:"workers"`
	} `mapstructure:"fetch"`
	// RefreshInterval is how often (in minutes) the schedule refresh job
	// re-checks watched titles. 0 disables the job.
	RefreshInterval int `mapstructure:"refresh_interval"`
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct. Environment
// variables with an "ANIMEGO_" prefix override file values, e.g.
// ANIMEGO_MIRROR overrides the `mirror` key.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("ANIMEGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("mirror", "animego.me")
	viper.SetDefault("output.path", "./manifests")
	viper.SetDefault("fetch.timeout_seconds", 30)
	viper.SetDefault("fetch.workers", 4)
	viper.SetDefault("refresh_interval", 360)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
