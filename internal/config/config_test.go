package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/optifi/internal/common"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Zero(t, cfg.Timeout)
	assert.False(t, cfg.DiscardStale)
	assert.False(t, cfg.Demo)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotContains(t, cfg.LogFile, "~")
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyBaseURL, "https://optifi.example.com")
	v.Set(KeyTimeout, "15s")
	v.Set(KeyDiscardStale, true)
	v.Set(KeyLogFormat, "json")

	cfg, err := Load(v)

	require.NoError(t, err)
	assert.Equal(t, "https://optifi.example.com", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.True(t, cfg.DiscardStale)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("OPTIFI_API_BASE_URL", "http://10.0.0.2:5001")

	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	cfg, err := Load(v)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:5001", cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	valid := Config{BaseURL: DefaultBaseURL, LogLevel: "info", LogFormat: "console"}

	tests := []struct {
		want   error
		mutate func(*Config)
		name   string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.BaseURL = "" }, want: common.ErrMissingConfig},
		{name: "bad scheme", mutate: func(c *Config) { c.BaseURL = "ftp://host" }, want: common.ErrInvalidConfig},
		{name: "no host", mutate: func(c *Config) { c.BaseURL = "http://" }, want: common.ErrInvalidConfig},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, want: common.ErrInvalidConfig},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, want: common.ErrInvalidConfig},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, want: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("OPTIFI_TEST_DIR", "/tmp/optifi")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde path", in: "~/logs/a.log", want: filepath.Join(home, "logs/a.log")},
		{name: "env var", in: "$OPTIFI_TEST_DIR/a.log", want: "/tmp/optifi/a.log"},
		{name: "absolute", in: "/var/log/a.log", want: "/var/log/a.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://backend:5001\nfeeds:\n  discard_stale: true\n"), 0600))

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5001", cfg.BaseURL)
	assert.True(t, cfg.DiscardStale)
}

func TestReadFile_MissingExplicitFile(t *testing.T) {
	v := viper.New()

	err := ReadFile(v, filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPTIFI_DOTENV_PROBE=from-file\n"), 0600))
	t.Setenv("OPTIFI_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("OPTIFI_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("OPTIFI_DOTENV_PROBE"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
