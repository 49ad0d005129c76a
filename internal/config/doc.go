// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config loads and validates Reelmatch configuration.

# Configuration Sources

Settings are layered with Koanf v2, later layers winning:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: CONFIG_PATH, ./config.yaml or /etc/reelmatch/config.yaml
  - Environment variables listed in envMappings

# Signals

Signals are an ordered list; the first is the primary signal whose
unfiltered ranking is evaluated and logged. In YAML:

	signals:
	  - name: tags
	    path: data/similarity/tags.bin
	  - name: genres
	    path: data/similarity/genres.json.gz
	    label: on the basis of genres are

From the environment:

	SIGNALS=tags=data/similarity/tags.bin,genres=data/similarity/genres.json.gz

A signal without a label gets the built-in one for its name (see LabelFor).

# Validation

Validate applies validator struct tags (see package validation) and then
the cross-section rules: unique signal names, a relevance signal that exists
and is not the primary one, a well-formed query log DSN, and CORS origins
that do not mix * with explicit hosts.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
*/
package config
