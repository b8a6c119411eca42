// Package config loads, normalizes, and validates MyMark configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MYMARK_NTFY_TOPIC. The Config type centralizes every knob the CLI needs:
// data directories, the candidate feed source, the identity gate, push
// notification settings, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
