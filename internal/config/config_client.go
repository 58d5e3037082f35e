// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// ClientApp holds client identity and provider preference.
type ClientApp struct {
	DeviceID     string
	TokenSignKey string
	TokenIssuer  string
	PreferRemote bool
	// PreferenceSet is true when PreferRemote came from the environment,
	// a flag or the JSON file rather than the default.
	PreferenceSet bool
}

// ClientAdapter holds settings of the remote store client.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	InitAttempts   int
}

// ClientDB is the location of the local SQLite store.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers holds client background job settings.
type ClientWorkers struct {
	// SyncInterval of zero disables the periodic sync job.
	SyncInterval time.Duration
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	LogFile string
}

// Client defaults applied before validation.
const (
	DefaultClientDSN            = "shopfloor.db"
	DefaultAdapterTimeout       = 10 * time.Second
	DefaultAdapterInitAttempts  = 3
	DefaultClientDeviceIDPrefix = "device-"
)

// GetClientConfig loads the client configuration. overrides holds values
// parsed from the client's own command line and takes priority over the JSON
// file but not over the environment, like flags on the server.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv(dotEnvPath()).
		withEnv().
		withConfig(overrides).
		withJSON().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			DeviceID:     cfg.App.DeviceID,
			TokenSignKey: cfg.App.TokenSignKey,
			TokenIssuer:  cfg.App.TokenIssuer,
			PreferRemote: true,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			InitAttempts:   cfg.Adapter.InitAttempts,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		LogFile: cfg.Log.File,
	}

	if cfg.App.PreferRemote != nil {
		clientCfg.App.PreferRemote = *cfg.App.PreferRemote
		clientCfg.App.PreferenceSet = true
	}
	if clientCfg.App.DeviceID == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "unknown"
		}
		clientCfg.App.DeviceID = DefaultClientDeviceIDPrefix + host
	}
	if clientCfg.App.TokenIssuer == "" {
		clientCfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultAdapterTimeout
	}
	if clientCfg.Adapter.InitAttempts == 0 {
		clientCfg.Adapter.InitAttempts = DefaultAdapterInitAttempts
	}
	if clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = DefaultClientDSN
	}

	return clientCfg
}
