// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Catalog    CatalogConfig    `koanf:"catalog"`
	Signals    []SignalConfig   `koanf:"signals" validate:"min=1,dive"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Evaluation EvaluationConfig `koanf:"evaluation"`
	QueryLog   QueryLogConfig   `koanf:"querylog"`
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// CatalogConfig locates the movie catalog.
//
// Environment Variables:
//   - CATALOG_PATH: JSON catalog file (default: data/movies.json)
type CatalogConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// SignalConfig names one similarity matrix. The first configured signal is
// the primary one: its unfiltered list is evaluated and logged.
//
// Environment Variables:
//   - SIGNALS: comma-separated name=path pairs in order, e.g.
//     "tags=data/similarity/tags.bin,genres=data/similarity/genres.bin"
type SignalConfig struct {
	Name string `koanf:"name" validate:"required,signalname"`

	// Path is a .json or .bin matrix, optionally gzipped.
	Path string `koanf:"path" validate:"required"`

	// Label completes the heading "Best Recommendations <label>".
	// Defaults to the built-in label for well-known signal names.
	Label string `koanf:"label"`
}

// RecommendConfig tunes the recommender and interaction engine.
//
// Environment Variables:
//   - RECOMMEND_LIMIT_PER_SIGNAL: items per signal list (default: 10)
//   - RECOMMEND_PRIMARY_LIMIT: length of the evaluated primary list (default: 22)
//   - RECOMMEND_RELEVANCE: self, signal or none (default: self)
//   - RECOMMEND_RELEVANCE_SIGNAL: signal used when relevance=signal
//   - RECOMMEND_RELEVANCE_LIMIT: size of a signal relevance set (default: 22)
//   - RECOMMEND_QUERY_TEMPLATE: logged query text, one %s (default: "Recommend movies similar to %s")
//   - RECOMMEND_DEFAULT_USER_ID: user id when a request names none (default: 1)
//   - RECOMMEND_NEIGHBOR_CACHE_SIZE: cached neighbor rankings per signal (default: 1024)
//   - RECOMMEND_NEIGHBOR_CACHE_TTL: lifetime of a cached ranking, 0 = forever (default: 0)
type RecommendConfig struct {
	LimitPerSignal    int           `koanf:"limit_per_signal" validate:"min=1,max=1000"`
	PrimaryLimit      int           `koanf:"primary_limit" validate:"min=1,max=1000"`
	Relevance         string        `koanf:"relevance" validate:"oneof=self signal none"`
	RelevanceSignal   string        `koanf:"relevance_signal"`
	RelevanceLimit    int           `koanf:"relevance_limit" validate:"min=1,max=1000"`
	QueryTemplate     string        `koanf:"query_template" validate:"querytemplate"`
	DefaultUserID     int           `koanf:"default_user_id" validate:"min=0"`
	NeighborCacheSize int           `koanf:"neighbor_cache_size" validate:"min=0"`
	NeighborCacheTTL  time.Duration `koanf:"neighbor_cache_ttl" validate:"min=0"`
}

// EvaluationConfig sets the metrics cutoff.
//
// Environment Variables:
//   - EVALUATION_K: cutoff K for precision, recall and hit rate (default: 22)
type EvaluationConfig struct {
	K int `koanf:"k" validate:"min=1,max=1000"`
}

// QueryLogConfig selects the query log backend and its circuit breaker.
//
// Environment Variables:
//   - QUERYLOG_ENABLED: write one row per request (default: true)
//   - QUERYLOG_DSN: sqlite path, duckdb://path, postgres://..., badger://dir (default: data/reelmatch.db)
//   - QUERYLOG_BREAKER_MAX_REQUESTS, QUERYLOG_BREAKER_INTERVAL, QUERYLOG_BREAKER_TIMEOUT,
//     QUERYLOG_BREAKER_CONSECUTIVE_FAILURES, QUERYLOG_BREAKER_MIN_REQUESTS,
//     QUERYLOG_BREAKER_FAILURE_RATIO
type QueryLogConfig struct {
	Enabled bool          `koanf:"enabled"`
	DSN     string        `koanf:"dsn"`
	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of query log writes.
type BreakerConfig struct {
	MaxRequests         uint32        `koanf:"max_requests" validate:"min=1"`
	Interval            time.Duration `koanf:"interval" validate:"min=0"`
	Timeout             time.Duration `koanf:"timeout" validate:"gt=0"`
	ConsecutiveFailures uint32        `koanf:"consecutive_failures" validate:"min=1"`
	MinRequests         uint32        `koanf:"min_requests" validate:"min=1"`
	FailureRatio        float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 8080)
//   - HTTP_TIMEOUT: read/write timeout (default: 30s)
//   - SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 10s)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Primary returns the first configured signal.
func (c *Config) Primary() SignalConfig {
	return c.Signals[0]
}

// Signal looks up a configured signal by name.
func (c *Config) Signal(name string) (SignalConfig, bool) {
	for _, s := range c.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return SignalConfig{}, false
}

// Load reads configuration from defaults, the config file and the environment.
// See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
