// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validServerConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/shopfloor"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that an empty server config fails validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_AppliesDefaults verifies the server defaults.
func TestBuild_AppliesDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().withConfig(validServerConfig()).build()
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultServerRequestTimeout, cfg.Server.RequestTimeout)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result and that earlier sources win.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validServerConfig(),
		&StructuredConfig{App: App{Version: "1.0.0", TokenSignKey: "ignored"}},
		&StructuredConfig{App: App{TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
}

// TestBuild_Validation verifies each server validation error.
func TestBuild_Validation(t *testing.T) {
	noAddr := validServerConfig()
	noAddr.Server.HTTPAddress = ""
	_, err := newConfigBuilder().withConfig(noAddr).build()
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)

	noKey := validServerConfig()
	noKey.App.TokenSignKey = ""
	_, err = newConfigBuilder().withConfig(noKey).build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

// ── withDotEnv ────────────────────────────────────────────────────────────────

// TestWithDotEnv_LoadsFile verifies that a .env file feeds withEnv without
// overriding variables that are already set.
func TestWithDotEnv_LoadsFile(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_VERSION=from-file\nAPP_DEVICE_ID=press-3\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_DEVICE_ID") })

	b := newConfigBuilder().withDotEnv(path).withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "from-env", b.configs[0].App.Version)
	assert.Equal(t, "press-3", b.configs[0].App.DeviceID)
}

// TestWithDotEnv_MissingFileIsIgnored verifies that no error is recorded for
// an absent .env file.
func TestWithDotEnv_MissingFileIsIgnored(t *testing.T) {
	b := newConfigBuilder().withDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, b.err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_AppendsParsedFlags verifies the fluent interface and parsing.
func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-a", "localhost:9000"}))
	require.Len(t, b.configs, 1)
	assert.Equal(t, "localhost:9000", b.configs[0].Server.HTTPAddress)
}

// TestWithFlags_SetsError verifies that a flag parse error is recorded.
func TestWithFlags_SetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

// TestGetClientConfig_Defaults verifies the client defaults and that the
// overrides are used.
func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_FILE", "")

	cfg, err := GetClientConfig(&StructuredConfig{
		App:     App{TokenSignKey: "secret", DeviceID: "lathe-1"},
		Adapter: Adapter{HTTPAddress: "http://localhost:8080"},
	})
	require.NoError(t, err)

	assert.Equal(t, "lathe-1", cfg.App.DeviceID)
	assert.True(t, cfg.App.PreferRemote)
	assert.False(t, cfg.App.PreferenceSet)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultAdapterTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultAdapterInitAttempts, cfg.Adapter.InitAttempts)
	assert.Equal(t, DefaultClientDSN, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

// TestGetClientConfig_EnvBeatsOverrides verifies source priority.
func TestGetClientConfig_EnvBeatsOverrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_FILE", "")
	t.Setenv("APP_PREFER_REMOTE", "false")
	t.Setenv("WORKERS_SYNC_INTERVAL", "2m")

	preferRemote := true
	cfg, err := GetClientConfig(&StructuredConfig{
		App:     App{TokenSignKey: "secret", PreferRemote: &preferRemote},
		Adapter: Adapter{HTTPAddress: "http://localhost:8080"},
	})
	require.NoError(t, err)
	assert.False(t, cfg.App.PreferRemote)
	assert.True(t, cfg.App.PreferenceSet)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
	assert.NotEmpty(t, cfg.App.DeviceID)
}

// TestGetClientConfig_Validation verifies the client validation errors.
func TestGetClientConfig_Validation(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_FILE", "")

	_, err := GetClientConfig(&StructuredConfig{App: App{TokenSignKey: "secret"}})
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)

	_, err = GetClientConfig(&StructuredConfig{Adapter: Adapter{HTTPAddress: "http://x"}})
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)

	_, err = GetClientConfig(&StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Adapter: Adapter{HTTPAddress: "http://x"},
		Storage: Storage{DB: DB{DSN: ":memory:"}},
	})
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)

	_, err = GetClientConfig(&StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Adapter: Adapter{HTTPAddress: "http://x"},
		Workers: Workers{SyncInterval: -time.Second},
	})
	assert.ErrorIs(t, err, ErrInvalidWorkerConfigs)
}
