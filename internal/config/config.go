package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Planner  PlannerConfig  `mapstructure:"planner"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Log      LogConfig      `mapstructure:"log"`
}

// PlannerConfig represents optimization defaults
type PlannerConfig struct {
	DefaultCountry string `mapstructure:"default_country"`
	DefaultLeaves  int    `mapstructure:"default_leaves"`
	MaxBridgeDays  int    `mapstructure:"max_bridge_days"`
}

// HolidaysConfig represents the holiday data source configuration
type HolidaysConfig struct {
	Source   string `mapstructure:"source"` // "builtin", "api" or "composite"
	APIURL   string `mapstructure:"api_url"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error: the CLI works with defaults out of the box.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.leave-planner")
		v.AddConfigPath("/etc/leave-planner")
	}

	v.SetDefault("planner.default_country", "GB")
	v.SetDefault("planner.default_leaves", 20)
	v.SetDefault("planner.max_bridge_days", 4)
	v.SetDefault("holidays.source", "composite")
	v.SetDefault("log.level", "info")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Planner.DefaultCountry == "" {
		return fmt.Errorf("planner.default_country is required")
	}
	if c.Planner.DefaultLeaves < 1 {
		return fmt.Errorf("planner.default_leaves must be at least 1")
	}
	if c.Planner.MaxBridgeDays < 1 {
		return fmt.Errorf("planner.max_bridge_days must be at least 1")
	}

	switch strings.ToLower(c.Holidays.Source) {
	case "builtin", "api", "composite":
	default:
		return fmt.Errorf("holidays.source must be 'builtin', 'api' or 'composite', got %q", c.Holidays.Source)
	}

	return nil
}

// GetCacheTTL returns the holiday cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
