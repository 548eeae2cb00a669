package config

import (
	"fmt"
	"net/url"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.MediaServer.URL == "" {
		errs = append(errs, "media_server.url: required")
	} else if _, err := url.Parse(c.MediaServer.URL); err != nil {
		errs = append(errs, fmt.Sprintf("media_server.url: invalid URL: %v", err))
	}
	if c.MediaServer.APIKey == "" {
		errs = append(errs, "media_server.api_key: required")
	}
	if c.MediaServer.PollInterval.Duration < 0 {
		errs = append(errs, fmt.Sprintf("media_server.poll_interval: must not be negative, got %s", c.MediaServer.PollInterval.Duration))
	}
	if c.MediaServer.PollInterval.Duration > 0 && c.MediaServer.PollInterval.Duration < time.Second {
		errs = append(errs, fmt.Sprintf("media_server.poll_interval: must be at least 1s, got %s", c.MediaServer.PollInterval.Duration))
	}

	return errs
}
