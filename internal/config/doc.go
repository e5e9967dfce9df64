// Package config loads, normalizes, and validates subforge configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SUBFORGE_LOG_LEVEL
// environment override. The Config type centralizes the encoding, timing,
// and fitting knobs the ingestion pipeline and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
