// Package config loads, normalizes, and validates texmanifest configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TEXMANIFEST_CONVERTER. The Config type centralizes every knob the export
// pipeline and CLI need: where images and the manifest are written, how the
// converter is launched, which host settings are mandatory, and how logs are
// emitted.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
