package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xsock/pkg/config/xconf"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, "xsockctl.toml", `
[log]
level = "debug"

[server]
port = 9100
allow = "127.0.0.0/8,::1"
idle_timeout = "2s"

[client]
retries = 3
retry_delay = "250ms"
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 128, cfg.Server.Backlog)
	assert.Equal(t, "127.0.0.0/8,::1", cfg.Server.Allow)
	assert.Equal(t, 2*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 3, cfg.Client.Retries)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.RetryDelay)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "xsockctl.yaml", "net:\n  file_limit: 4096\nlog:\n  format: json\n")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), cfg.Net.FileLimit)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig("xsockctl.ini")
	assert.ErrorIs(t, err, xconf.ErrUnsupportedFormat)

	_, err = loadConfig(writeConfig(t, "bad.json", "{"))
	assert.ErrorIs(t, err, xconf.ErrParseFailed)
}
