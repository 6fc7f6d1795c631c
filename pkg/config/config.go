// Package config loads settings from .todo.yaml, TODO_* environment
// variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/todo/pkg/store"
)

// Keys understood in .todo.yaml and as TODO_<KEY> (dots become underscores).
const (
	KeyServer    = "server"
	KeyListen    = "listen"
	KeyDriver    = "store.driver"
	KeyPath      = "store.path"
	KeyPolicy    = "sync.policy"
	KeyStaleTime = "sync.stale_time"
	KeyLogLevel  = "log.level"
)

var flagKeys = map[string]string{
	"server": KeyServer,
	"listen": KeyListen,
	"policy": KeyPolicy,
}

// Config is the resolved settings for a single invocation.
type Config struct {
	Server    string
	Listen    string
	StoreType string
	StorePath string
	Policy    string
	StaleTime time.Duration
	LogLevel  slog.Level
}

var _ store.Config = (*Config)(nil)

func defaults(v *viper.Viper) {
	v.SetDefault(KeyServer, "http://localhost:8080")
	v.SetDefault(KeyListen, ":8080")
	v.SetDefault(KeyDriver, store.DriverDiskv)
	v.SetDefault(KeyPath, "~/.todo.db")
	v.SetDefault(KeyPolicy, "resync")
	v.SetDefault(KeyStaleTime, "3s")
	v.SetDefault(KeyLogLevel, "warn")
}

// Load resolves the configuration. Flags that were set on the command line
// win over the environment, which wins over the config file. flags may be
// nil; only the flags listed in flagKeys are bound.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetConfigName(".todo") // .yaml is implicit
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind --%s: %w", name, err)
				}
			}
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	path, err := homedir.Expand(v.GetString(KeyPath))
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeyPath, err)
	}
	stale, err := time.ParseDuration(v.GetString(KeyStaleTime))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyStaleTime, err)
	}
	if stale <= 0 {
		return nil, fmt.Errorf("config: %s must be positive, got %s", KeyStaleTime, stale)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}
	return &Config{
		Server:    v.GetString(KeyServer),
		Listen:    v.GetString(KeyListen),
		StoreType: strings.ToLower(v.GetString(KeyDriver)),
		StorePath: path,
		Policy:    v.GetString(KeyPolicy),
		StaleTime: stale,
		LogLevel:  level,
	}, nil
}

// Driver implements store.Config.
func (c *Config) Driver() string {
	return c.StoreType
}

// BasePath implements store.Config.
func (c *Config) BasePath() string {
	return c.StorePath
}

// Logger returns a text logger on w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
