// Package config loads, normalizes, and validates playtime configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and rejects unknown category names up front.
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
