// Package config loads and validates mrbox YAML configuration.
//
// A config file has five sections:
//
//	bundle:   dir, audioUrl, strict
//	page:     title, heading, height, width, scrolling
//	server:   addr, readTimeout, writeTimeout, shutdownTimeout, rateLimit
//	log:      level, format
//	snapshot: width, timeout
//
// Unknown keys are rejected. Durations use Go syntax ("10s", "1m30s").
package config
