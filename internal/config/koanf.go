// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched in order; the first found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// signalLabels are the headings for the well-known signals.
var signalLabels = map[string]string{
	"tags":                 "are",
	"genres":               "on the basis of genres are",
	"production_companies": "from the same production company are",
	"keywords":             "on the basis of keywords are",
	"cast":                 "on the basis of cast are",
}

// LabelFor returns the heading label for a signal name.
func LabelFor(name string) string {
	if label, ok := signalLabels[name]; ok {
		return label
	}
	return "on the basis of " + strings.ReplaceAll(name, "_", " ") + " are"
}

func defaultSignals() []SignalConfig {
	names := []string{"tags", "genres", "production_companies", "keywords", "cast"}
	signals := make([]SignalConfig, len(names))
	for i, name := range names {
		signals[i] = SignalConfig{
			Name:  name,
			Path:  "data/similarity/" + name + ".bin",
			Label: signalLabels[name],
		}
	}
	return signals
}

func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: "data/movies.json",
		},
		Signals: defaultSignals(),
		Recommend: RecommendConfig{
			LimitPerSignal:    10,
			PrimaryLimit:      22,
			Relevance:         "self",
			RelevanceLimit:    22,
			QueryTemplate:     "Recommend movies similar to %s",
			DefaultUserID:     1,
			NeighborCacheSize: 1024,
			NeighborCacheTTL:  0,
		},
		Evaluation: EvaluationConfig{
			K: 22,
		},
		QueryLog: QueryLogConfig{
			Enabled: true,
			DSN:     "data/reelmatch.db",
			Breaker: BreakerConfig{
				MaxRequests:         1,
				Interval:            time.Minute,
				Timeout:             30 * time.Second,
				ConsecutiveFailures: 5,
				MinRequests:         10,
				FailureRatio:        0.6,
			},
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration in three layers (defaults, file, env)
// and validates the result. Environment variables take precedence.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processSignals(k); err != nil {
		return nil, fmt.Errorf("failed to process signals: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.applySignalLabels()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set by env.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		if parts := splitList(strVal); len(parts) > 0 {
			if err := k.Set(path, parts); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// processSignals expands a SIGNALS string ("tags=a.bin,genres=b.bin") into
// the ordered signal list. Lists from YAML or defaults are left alone.
func processSignals(k *koanf.Koanf) error {
	strVal, ok := k.Get("signals").(string)
	if !ok {
		return nil
	}

	signals, err := ParseSignals(strVal)
	if err != nil {
		return err
	}

	list := make([]interface{}, len(signals))
	for i, s := range signals {
		list[i] = map[string]interface{}{"name": s.Name, "path": s.Path, "label": s.Label}
	}
	// Delete first so the list replaces the flattened default keys.
	k.Delete("signals")
	return k.Set("signals", list)
}

// ParseSignals parses "name=path,name=path" into signal configs in order.
func ParseSignals(s string) ([]SignalConfig, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("SIGNALS is empty")
	}

	signals := make([]SignalConfig, 0, len(parts))
	for _, part := range parts {
		name, path, ok := strings.Cut(part, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("SIGNALS entry %q must be name=path", part)
		}
		signals = append(signals, SignalConfig{Name: name, Path: path})
	}
	return signals, nil
}

func (c *Config) applySignalLabels() {
	for i := range c.Signals {
		if c.Signals[i].Label == "" {
			c.Signals[i].Label = LabelFor(c.Signals[i].Name)
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak in.
var envMappings = map[string]string{
	"catalog_path": "catalog.path",
	"signals":      "signals",

	"recommend_limit_per_signal":    "recommend.limit_per_signal",
	"recommend_primary_limit":       "recommend.primary_limit",
	"recommend_relevance":           "recommend.relevance",
	"recommend_relevance_signal":    "recommend.relevance_signal",
	"recommend_relevance_limit":     "recommend.relevance_limit",
	"recommend_query_template":      "recommend.query_template",
	"recommend_default_user_id":     "recommend.default_user_id",
	"recommend_neighbor_cache_size": "recommend.neighbor_cache_size",
	"recommend_neighbor_cache_ttl":  "recommend.neighbor_cache_ttl",

	"evaluation_k": "evaluation.k",

	"querylog_enabled":                      "querylog.enabled",
	"querylog_dsn":                          "querylog.dsn",
	"querylog_breaker_max_requests":         "querylog.breaker.max_requests",
	"querylog_breaker_interval":             "querylog.breaker.interval",
	"querylog_breaker_timeout":              "querylog.breaker.timeout",
	"querylog_breaker_consecutive_failures": "querylog.breaker.consecutive_failures",
	"querylog_breaker_min_requests":         "querylog.breaker.min_requests",
	"querylog_breaker_failure_ratio":        "querylog.breaker.failure_ratio",

	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
