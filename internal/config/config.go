// Package config loads application settings from defaults, an optional
// YAML file, CRM_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	DB struct {
		Path string
	} `mapstructure:"db"`

	Log struct {
		Level  string
		Format string
		File   string
	} `mapstructure:"log"`

	Quote struct {
		Currency     string
		ValidityDays int `mapstructure:"validity_days"`
	} `mapstructure:"quote"`

	Metrics struct {
		File string
	} `mapstructure:"metrics"`
}

// Flag names registered by BindFlags.
const (
	FlagConfig    = "config"
	FlagDB        = "db"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

var flagKeys = map[string]string{
	FlagDB:        "db.path",
	FlagLogLevel:  "log.level",
	FlagLogFormat: "log.format",
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "config file (default $HOME/.crm/crm.yaml)")
	fs.String(FlagDB, "", "SQLite database path")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, "", "log format: text or json")
}

// Load resolves the configuration. fs may be nil; flags that were not set
// on the command line do not override other sources.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	setDefaults(v, home)

	v.SetEnvPrefix("CRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var path string
	if fs != nil {
		path, _ = fs.GetString(FlagConfig)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("crm")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".crm"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("db.path", filepath.Join(home, ".crm", "crm.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(home, ".crm", "crm.log"))
	v.SetDefault("quote.currency", "BRL")
	v.SetDefault("quote.validity_days", 15)
	v.SetDefault("metrics.file", "")
}

func (c *Config) validate() error {
	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Quote.ValidityDays < 0 {
		return fmt.Errorf("quote.validity_days must not be negative")
	}
	c.Quote.Currency = strings.ToUpper(strings.TrimSpace(c.Quote.Currency))
	return nil
}
