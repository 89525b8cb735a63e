// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Feed     FeedConfig     `koanf:"feed"`
	Events   EventsConfig   `koanf:"events"`
}

// DatabaseConfig configures the DuckDB store.
type DatabaseConfig struct {
	// Path of the database file. ":memory:" opens a private in-memory database.
	Path string `koanf:"path"`

	// MaxMemory is passed to DuckDB's max_memory setting (e.g. "1GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is DuckDB's worker thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SeedDemoData inserts a handful of profiles, posts and comments on an
	// empty database. Development only.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig configures viewer authentication and transport limits.
type SecurityConfig struct {
	// JWTSecret verifies HS256 tokens issued by the identity service.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenIssuer, when set, must match the iss claim.
	TokenIssuer string `koanf:"token_issuer"`

	// TokenMaxAge bounds the age of accepted tokens (iat + max age).
	TokenMaxAge time.Duration `koanf:"token_max_age"`

	// RateLimitReads is the per-IP budget for GET requests per window.
	RateLimitReads int `koanf:"rate_limit_reads"`

	// RateLimitWrites is the per-IP budget for non-GET requests per window.
	RateLimitWrites int `koanf:"rate_limit_writes"`

	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// FeedConfig tunes content assembly.
type FeedConfig struct {
	// PageSize is the number of posts, root comments or list entries per page.
	PageSize int `koanf:"page_size"`

	// RecommendLimit caps the recommended accounts attached to a feed.
	RecommendLimit int `koanf:"recommend_limit"`

	// TreeParallelism bounds concurrent child fetches per tree level.
	TreeParallelism int `koanf:"tree_parallelism"`
}

// EventsConfig configures activity event publishing.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// Embedded starts an in-process NATS server with JetStream.
	Embedded bool `koanf:"embedded"`

	// NATSURL is used when Embedded is false.
	NATSURL string `koanf:"nats_url"`

	// StoreDir is the JetStream storage directory of the embedded server.
	StoreDir string `koanf:"store_dir"`

	StreamName string `koanf:"stream_name"`

	// OutboxPath is the badger directory holding events awaiting publish.
	OutboxPath string `koanf:"outbox_path"`

	// RelayInterval is how often the relay drains the outbox.
	RelayInterval time.Duration `koanf:"relay_interval"`

	// RelayRate caps publishes per second during a drain.
	RelayRate float64 `koanf:"relay_rate"`

	// BreakerFailures is the consecutive publish failures that open the breaker.
	BreakerFailures uint32 `koanf:"breaker_failures"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
