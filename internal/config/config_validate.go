// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package config

import (
	"fmt"
	"strings"
)

// minJWTSecretLength matches the HS256 key size.
const minJWTSecretLength = 32

// Validate checks the loaded configuration for values that would make the
// server misbehave at runtime.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateFeed(); err != nil {
		return err
	}
	return c.validateEvents()
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if c.Security.TokenMaxAge <= 0 {
		return fmt.Errorf("TOKEN_MAX_AGE must be positive")
	}
	for _, origin := range c.Security.CORSOrigins {
		if err := validateOriginURL(origin); err != nil {
			return err
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReads < 1 || c.Security.RateLimitWrites < 1 {
		return fmt.Errorf("rate limits must be >= 1 (reads=%d, writes=%d)",
			c.Security.RateLimitReads, c.Security.RateLimitWrites)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled", "off":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.PageSize < 1 || c.Feed.PageSize > 100 {
		return fmt.Errorf("FEED_PAGE_SIZE must be between 1 and 100, got %d", c.Feed.PageSize)
	}
	if c.Feed.RecommendLimit < 1 {
		return fmt.Errorf("RECOMMEND_LIMIT must be >= 1, got %d", c.Feed.RecommendLimit)
	}
	if c.Feed.TreeParallelism < 1 {
		return fmt.Errorf("TREE_PARALLELISM must be >= 1, got %d", c.Feed.TreeParallelism)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if !c.Events.Embedded && c.Events.NATSURL == "" {
		return fmt.Errorf("NATS_URL is required when the embedded server is disabled")
	}
	if !c.Events.Embedded {
		if err := validateNATSURL(c.Events.NATSURL); err != nil {
			return err
		}
	}
	if c.Events.StreamName == "" {
		return fmt.Errorf("NATS_STREAM_NAME must not be empty")
	}
	if c.Events.OutboxPath == "" {
		return fmt.Errorf("OUTBOX_PATH is required when events are enabled")
	}
	if c.Events.RelayInterval <= 0 {
		return fmt.Errorf("OUTBOX_RELAY_INTERVAL must be positive")
	}
	if c.Events.RelayRate <= 0 {
		return fmt.Errorf("OUTBOX_RELAY_RATE must be positive")
	}
	if c.Events.BreakerFailures == 0 {
		return fmt.Errorf("BREAKER_FAILURES must be >= 1")
	}
	return nil
}
