// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Sink          SinkConfig          `mapstructure:"sink"`
	Form          FormConfig          `mapstructure:"form"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// SinkConfig points at the form-processing endpoint receiving submissions.
type SinkConfig struct {
	URL       string `mapstructure:"url"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds, 0 disables
	UserAgent string `mapstructure:"user_agent"`
}

func (s SinkConfig) TimeoutDuration() time.Duration {
	return GetDuration(s.Timeout)
}

type FormConfig struct {
	InitialMonths int    `mapstructure:"initial_months"`
	CatalogPath   string `mapstructure:"catalog_path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ObservabilityConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}
