package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeDotenv(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig(envFrom(nil), filepath.Join(t.TempDir(), "missing.env"))
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, linearAPIEndpoint, cfg.Endpoint)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.LogLevel)
	assert.Empty(t, cfg.Warnings, "a missing .env file is not worth a warning")
}

func TestLoadConfigEnvironmentWins(t *testing.T) {
	exeDir := writeDotenv(t, "LINEAR_API_KEY=from-exe-dir\nLINEAR_TIMEOUT=5s\n")
	cwd := writeDotenv(t, "LINEAR_API_KEY=from-cwd\nLINEAR_LOG_LEVEL=debug\n")

	cfg := loadConfig(envFrom(map[string]string{"LINEAR_API_KEY": "from-env"}), exeDir, cwd)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "environment", cfg.Source)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg = loadConfig(envFrom(map[string]string{"LINEAR_API_KEY": ""}), exeDir, cwd)
	assert.Equal(t, "from-exe-dir", cfg.APIKey, "empty variables fall through and earlier files win")
	assert.Equal(t, exeDir, cfg.Source)
}

func TestLoadConfigEndpointOverride(t *testing.T) {
	cfg := loadConfig(envFrom(map[string]string{"LINEAR_API_URL": "http://localhost:8080/graphql"}))
	assert.Equal(t, "http://localhost:8080/graphql", cfg.Endpoint)
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0"} {
		cfg := loadConfig(envFrom(map[string]string{"LINEAR_TIMEOUT": v}))
		assert.Equal(t, defaultTimeout, cfg.Timeout, v)
		require.Len(t, cfg.Warnings, 1, v)
		assert.Contains(t, cfg.Warnings[0], "invalid LINEAR_TIMEOUT "+v)
	}
}

func TestLoadConfigUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	cfg := loadConfig(envFrom(nil), dir)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "ignoring "+dir)
}

func TestRequireAPIKey(t *testing.T) {
	assert.NoError(t, Config{APIKey: "lin_api_x"}.requireAPIKey())

	err := Config{}.requireAPIKey()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errConfig))
	assert.Equal(t, "LINEAR_API_KEY not found", err.Error())
	hints := errors.GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "Get your API key from: https://linear.app/settings/api")
}
