// Package config loads teller settings from ~/.teller/config.toml and
// TELLER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "TELLER"

	configDir  = ".teller"
	configName = "config"
	configType = "toml"
)

const (
	KeyLogLevel            = "log.level"
	KeyLogEncoding         = "log.encoding"
	KeyAccountsPath        = "accounts.path"
	KeySessionsPath        = "sessions.path"
	KeySessionsInMemory    = "sessions.in_memory"
	KeyMessengerEndpoint   = "messenger.endpoint"
	KeyMessengerTokenKey   = "messenger.token_key"
	KeyMessengerRate       = "messenger.rate"
	KeyMessengerBurst      = "messenger.burst"
	KeyMessengerTimeout    = "messenger.timeout"
	KeyMessengerRetries    = "messenger.max_retries"
	KeyServerListen        = "server.listen"
	KeyDispatchMaxInFlight = "dispatch.max_in_flight"
	KeyDispatchSendTimeout = "dispatch.send_timeout"
	KeySecretsRoot         = "secrets.root"
)

const DefaultTokenKey = "teller://messenger/page_token"

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Accounts  AccountsConfig  `mapstructure:"accounts"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Messenger MessengerConfig `mapstructure:"messenger"`
	Server    ServerConfig    `mapstructure:"server"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

type LogConfig struct {
	Level    string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Encoding string `mapstructure:"encoding" validate:"oneof=json console"`
}

type AccountsConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type SessionsConfig struct {
	Path     string `mapstructure:"path" validate:"required_unless=InMemory true"`
	InMemory bool   `mapstructure:"in_memory"`
}

type MessengerConfig struct {
	Endpoint   string        `mapstructure:"endpoint" validate:"required,url"`
	TokenKey   string        `mapstructure:"token_key" validate:"required"`
	Rate       float64       `mapstructure:"rate" validate:"gte=0"`
	Burst      int           `mapstructure:"burst" validate:"gte=0"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen" validate:"required,hostname_port"`
}

type DispatchConfig struct {
	MaxInFlight int           `mapstructure:"max_in_flight" validate:"gt=0"`
	SendTimeout time.Duration `mapstructure:"send_timeout" validate:"gt=0"`
}

type SecretsConfig struct {
	Root string `mapstructure:"root" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the optional config file and environment overrides into v and
// returns the validated settings. v is left populated so adapters that take
// a *viper.Viper see the same values.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	root := filepath.Join(homeDir, configDir)

	setDefaults(v, root)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(root)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, root string) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogEncoding, "console")
	v.SetDefault(KeyAccountsPath, filepath.Join(root, "accounts.toml"))
	v.SetDefault(KeySessionsPath, filepath.Join(root, "sessions"))
	v.SetDefault(KeySessionsInMemory, false)
	v.SetDefault(KeyMessengerEndpoint, "https://graph.facebook.com/v2.6/me/messages")
	v.SetDefault(KeyMessengerTokenKey, DefaultTokenKey)
	v.SetDefault(KeyMessengerRate, 20.0)
	v.SetDefault(KeyMessengerBurst, 5)
	v.SetDefault(KeyMessengerTimeout, 10*time.Second)
	v.SetDefault(KeyMessengerRetries, 3)
	v.SetDefault(KeyServerListen, "127.0.0.1:8080")
	v.SetDefault(KeyDispatchMaxInFlight, 32)
	v.SetDefault(KeyDispatchSendTimeout, 10*time.Second)
	v.SetDefault(KeySecretsRoot, filepath.Join(root, "secrets"))
}
