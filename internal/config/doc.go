// Package config manages analyzer configuration loaded from built-in
// defaults, an optional YAML file, and LOGSTATS_* environment variables,
// in that order of precedence (environment wins).
package config
