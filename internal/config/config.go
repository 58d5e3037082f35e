// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the merged configuration of the server and the client.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, identity and provider preference settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database location. Postgres DSN on the server,
	// SQLite file path on the client.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and request timeout of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote store address used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds log output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups storage backend settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey signs (client) and verifies (server) device tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of device tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of a device token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// PreferRemote selects the remote provider at startup. Nil means unset
	// and defaults to true.
	// Env: APP_PREFER_REMOTE
	PreferRemote *bool `env:"PREFER_REMOTE"`

	// DeviceID identifies the client in tokens and logs. Defaults to the
	// host name.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`
}

// Server holds inbound transport settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds database connection settings.
type DB struct {
	// DSN is a Postgres connection string on the server and a SQLite file
	// path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds outbound settings of the client.
type Adapter struct {
	// HTTPAddress is the base URL or host:port of the remote store.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// InitAttempts is how many times the remote provider is probed before
	// falling back to the local store.
	// Env: ADAPTER_INIT_ATTEMPTS
	InitAttempts int `env:"INIT_ATTEMPTS"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval is the period of the background sync job. Zero disables it.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Log holds log output settings.
type Log struct {
	// File is the rotating log file of the client. Empty logs to stderr.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// Server defaults applied before validation.
const (
	DefaultTokenIssuer          = "shopfloor-sync"
	DefaultTokenDuration        = 24 * time.Hour
	DefaultServerRequestTimeout = 30 * time.Second
)

// GetStructuredConfig loads, merges and validates the server configuration
// from the .env file, the environment, the process flags and the JSON file.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(dotEnvPath()).
		withEnv().
		withFlags(processArgs()).
		withJSON().
		build()
}
