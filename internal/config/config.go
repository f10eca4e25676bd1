// Package config loads application settings from defaults, an optional
// YAML file and DAILYWORDS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the snapshot store.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=sqlite mysql postgres"`
	DSN        string `mapstructure:"dsn" validate:"required"`
	StorageKey string `mapstructure:"storage_key" validate:"required"`
}

// ScheduleConfig fixes the time zone in which calendar dates are taken.
type ScheduleConfig struct {
	Timezone string `mapstructure:"timezone" validate:"required"`
}

// Location resolves the configured time zone.
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

const envPrefix = "DAILYWORDS"

var envKeys = []string{
	"server.addr",
	"server.log_level",
	"database.driver",
	"database.dsn",
	"database.storage_key",
	"schedule.timezone",
}

// Load reads configuration. configPath may be empty; environment variables
// take precedence over the file, which takes precedence over defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "dailywords.db")
	v.SetDefault("database.storage_key", "daily_words_app_data")
	v.SetDefault("schedule.timezone", "Local")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.Schedule.Location(); err != nil {
		return nil, fmt.Errorf("validate config: schedule.timezone: %w", err)
	}
	return &cfg, nil
}
