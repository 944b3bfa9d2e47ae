// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable that overrides a config key.
const EnvPrefix = "BUDGETSIM"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Scenarios struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"scenarios" yaml:"scenarios"`

	History struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		DBPath  string `mapstructure:"db_path" yaml:"db_path"`
	} `mapstructure:"history" yaml:"history"`

	Report struct {
		Format       string `mapstructure:"format" yaml:"format"`
		CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	} `mapstructure:"report" yaml:"report"`

	Simulation struct {
		DefaultScenario string `mapstructure:"default_scenario" yaml:"default_scenario"`
		EnforceHorizon  bool   `mapstructure:"enforce_horizon" yaml:"enforce_horizon"`
		Workers         int    `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"simulation" yaml:"simulation"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.budget-sim")
	v.AddConfigPath(".budget-sim")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Scenario defaults
	v.SetDefault("scenarios.directory", "scenarios")

	// History defaults
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.db_path", "budget-sim.db")

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.csv_delimiter", ",")

	// Simulation defaults
	v.SetDefault("simulation.default_scenario", "credit_card_poc")
	v.SetDefault("simulation.enforce_horizon", true)
	v.SetDefault("simulation.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if err := validation.IsValidReportFormat(config.Report.Format); err != nil {
		return err
	}

	if len(config.Report.CSVDelimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Report.CSVDelimiter)
	}

	if config.Simulation.Workers < 1 {
		return fmt.Errorf("simulation.workers must be at least 1, got: %d", config.Simulation.Workers)
	}

	if config.History.Enabled && strings.TrimSpace(config.History.DBPath) == "" {
		return fmt.Errorf("history.db_path required when history is enabled")
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
