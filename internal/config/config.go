package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/optifi/internal/common"
)

// Config keys.
const (
	KeyBaseURL      = "api.base_url"
	KeyTimeout      = "api.timeout"
	KeyDiscardStale = "feeds.discard_stale"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
	KeyLogFile      = "logging.file"
	KeyDemo         = "ui.demo"
	KeyTheme        = "ui.theme"
)

// Defaults.
const (
	DefaultBaseURL   = "http://localhost:5001"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultLogFile   = "~/.local/state/optifi/optifi.log"
	DefaultTheme     = "default"
)

// EnvPrefix prefixes environment overrides, as in OPTIFI_API_BASE_URL.
const EnvPrefix = "OPTIFI"

// Config is the resolved application configuration.
type Config struct {
	BaseURL      string
	LogLevel     string
	LogFormat    string
	LogFile      string
	Theme        string
	Timeout      time.Duration
	DiscardStale bool
	Demo         bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyDiscardStale, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyDemo, false)
	v.SetDefault(KeyTheme, DefaultTheme)
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:      v.GetString(KeyBaseURL),
		Timeout:      v.GetDuration(KeyTimeout),
		DiscardStale: v.GetBool(KeyDiscardStale),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		LogFile:      ExpandPath(v.GetString(KeyLogFile)),
		Demo:         v.GetBool(KeyDemo),
		Theme:        v.GetString(KeyTheme),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot use.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyBaseURL)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyBaseURL, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyTimeout)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// BindEnv lets OPTIFI_* environment variables override any key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadFile loads file, or config.yaml from the config directory or the working directory.
// A missing default file is not an error.
func ReadFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(ExpandPath(file))
	} else {
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// LoadDotEnv copies variables from a .env file into the environment without overriding
// variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
