// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration for the step telemetry service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// StoreBackend selects the record store: "mongo" or "memory".
	// The memory backend holds records in-process and is meant for
	// local development only.
	StoreBackend string `koanf:"store_backend"`

	// MongoURI is the connection string for the document store.
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase and MongoCollection locate the step records.
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`

	// MongoTimeoutMS bounds the initial connect/ping at startup.
	MongoTimeoutMS int `koanf:"mongo_timeout_ms"`

	// DefaultDeviceID is used when a submission or query names no device.
	DefaultDeviceID string `koanf:"default_device_id"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":5000",
		StoreBackend:    "mongo",
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "stepcounter",
		MongoCollection: "steps",
		MongoTimeoutMS:  10_000,
		DefaultDeviceID: "android_device_001",
	}
}
