package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, home string, content string) {
	t.Helper()

	dir := filepath.Join(home, ".teller")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, ".teller", "accounts.toml"), cfg.Accounts.Path)
	assert.Equal(t, filepath.Join(home, ".teller", "sessions"), cfg.Sessions.Path)
	assert.Equal(t, DefaultTokenKey, cfg.Messenger.TokenKey)
	assert.Equal(t, 10*time.Second, cfg.Messenger.Timeout)
	assert.Equal(t, uint64(3), cfg.Messenger.MaxRetries)
	assert.Equal(t, 32, cfg.Dispatch.MaxInFlight)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Listen)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfigFile(t, home, `
[log]
level = "debug"
encoding = "json"

[sessions]
in_memory = true
path = ""

[dispatch]
max_in_flight = 4
send_timeout = "2s"
`)

	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.True(t, cfg.Sessions.InMemory)
	assert.Equal(t, 4, cfg.Dispatch.MaxInFlight)
	assert.Equal(t, 2*time.Second, cfg.Dispatch.SendTimeout)
	assert.Equal(t, "debug", v.GetString(KeyLogLevel))
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfigFile(t, home, "[server]\nlisten = \"127.0.0.1:9000\"\n")
	t.Setenv("TELLER_SERVER_LISTEN", "0.0.0.0:9100")
	t.Setenv("TELLER_ACCOUNTS_PATH", "/srv/teller/accounts.toml")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9100", cfg.Server.Listen)
	assert.Equal(t, "/srv/teller/accounts.toml", cfg.Accounts.Path)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "log level", content: "[log]\nlevel = \"loud\"\n", wantErr: "Level"},
		{name: "listen address", content: "[server]\nlisten = \"nowhere\"\n", wantErr: "Listen"},
		{name: "endpoint", content: "[messenger]\nendpoint = \"not a url\"\n", wantErr: "Endpoint"},
		{name: "max in flight", content: "[dispatch]\nmax_in_flight = 0\n", wantErr: "MaxInFlight"},
		{name: "sessions path", content: "[sessions]\npath = \"\"\n", wantErr: "Path"},
		{name: "malformed file", content: "[log\n", wantErr: "read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			writeConfigFile(t, home, tt.content)

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
