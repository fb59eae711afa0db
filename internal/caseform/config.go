package caseform

import (
	"fmt"
	"net/url"
	"time"

	"case-collector/internal/common/config"
)

type Config struct {
	InitialMonths int           `mapstructure:"initial_months"`
	SinkURL       string        `mapstructure:"sink_url"`
	SinkTimeout   time.Duration `mapstructure:"sink_timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
}

func DefaultConfig() *Config {
	return &Config{
		InitialMonths: defaultInitialMonths,
		SinkTimeout:   30 * time.Second,
		UserAgent:     "case-collector",
	}
}

func (c *Config) Validate() error {
	if c.InitialMonths < 1 {
		return fmt.Errorf("initial_months must be at least 1")
	}
	if c.SinkTimeout < 0 {
		return fmt.Errorf("sink_timeout must not be negative")
	}
	if c.SinkURL == "" {
		return fmt.Errorf("sink_url is required")
	}
	u, err := url.Parse(c.SinkURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("sink_url must be an absolute http(s) URL")
	}
	return nil
}

// FromAppConfig overlays the application config on the defaults.
func FromAppConfig(appConfig *config.Config) *Config {
	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}
	if appConfig.Form.InitialMonths > 0 {
		cfg.InitialMonths = appConfig.Form.InitialMonths
	}
	cfg.SinkURL = appConfig.Sink.URL
	cfg.SinkTimeout = appConfig.Sink.TimeoutDuration()
	if appConfig.Sink.UserAgent != "" {
		cfg.UserAgent = appConfig.Sink.UserAgent
	}
	return cfg
}
