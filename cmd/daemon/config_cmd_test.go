// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ManuGH/bodydouble/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validYAML = `guildId: 100
channels:
  general: 101
  mods: 102
  rules: 103
  serverGuide: 104
  introductions: 105
vcGeneralId: 106
logLevel: debug
store:
  backend: sqlite
  sqlitePath: /var/lib/bodydouble/state.sqlite
`

func writeConfig(t *testing.T, body string) (path, envFile string) {
	t.Helper()
	dir := t.TempDir()
	path = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path, filepath.Join(dir, "missing.env")
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvToken, config.EnvGuildID, config.EnvGeneralChannelID, config.EnvModsChannelID,
		config.EnvRulesChannelID, config.EnvServerGuideID, config.EnvIntroductionsID,
		config.EnvVCGeneralID, config.EnvStoreBackend, config.EnvStoreSqlitePath, config.EnvLogLevel,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestConfigValidate_OK(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvToken, "real-token")
	path, envFile := writeConfig(t, validYAML)

	var stdout, stderr bytes.Buffer
	code := configCLI([]string{"validate", "-f", path, "--env-file", envFile}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "configuration is valid")
}

func TestConfigValidate_PlaceholderToken(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvToken, config.PlaceholderToken)
	path, envFile := writeConfig(t, validYAML)

	var stdout, stderr bytes.Buffer
	code := configCLI([]string{"validate", "-f", path, "--env-file", envFile}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), config.EnvToken)
}

func TestConfigValidate_MalformedEnvID(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvToken, "real-token")
	t.Setenv(config.EnvGuildID, "12abc")
	path, envFile := writeConfig(t, validYAML)

	var stdout, stderr bytes.Buffer
	code := configCLI([]string{"validate", "-f", path, "--env-file", envFile}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "GUILD_ID must be an integer")
	assert.Empty(t, stdout.String())
}

func TestConfigValidate_UnknownField(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvToken, "real-token")
	path, envFile := writeConfig(t, validYAML+"bouquets: [a]\n")

	var stdout, stderr bytes.Buffer
	code := configCLI([]string{"validate", "-f", path, "--env-file", envFile}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Configuration error")
}

func TestConfigDump_YAML(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvToken, "super-secret")
	path, envFile := writeConfig(t, validYAML)

	var stdout, stderr bytes.Buffer
	code := configCLI([]string{"dump", "-f", path, "--env-file", envFile}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.NotContains(t, stdout.String(), "super-secret")

	var got config.FileConfig
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, int64(100), got.GuildID)
	require.NotNil(t, got.Store)
	assert.Equal(t, "sqlite", got.Store.Backend)
	assert.Equal(t, "/var/lib/bodydouble/state.sqlite", got.Store.SqlitePath)
	assert.Equal(t, "debug", got.LogLevel)
}

func TestConfigDump_UnsupportedFormat(t *testing.T) {
	clearEnv(t)
	path, envFile := writeConfig(t, validYAML)

	var stdout, stderr bytes.Buffer
	code := configCLI([]string{"dump", "-f", path, "--env-file", envFile, "--format", "toml"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "Unsupported format")
}

func TestConfigCLI_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, configCLI(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "config validate")

	stderr.Reset()
	assert.Equal(t, 2, configCLI([]string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown subcommand: frobnicate")
}
