// Package config loads service settings from defaults, an optional config
// file, a .env file and CARVALUE_* environment variables, in increasing order
// of precedence. Command-line flags bound to the same viper instance win over
// all of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CARVALUE"

// Config is the complete service configuration.
type Config struct {
	AppName   string         `mapstructure:"app_name"`
	Addr      string         `mapstructure:"addr"`
	ModelPath string         `mapstructure:"model_path"`
	Data      DataConfig     `mapstructure:"data"`
	Years     YearConfig     `mapstructure:"years"`
	Currency  CurrencyConfig `mapstructure:"currency"`
	Log       LogConfig      `mapstructure:"log"`
	Fluent    FluentConfig   `mapstructure:"fluent"`
	CORS      CORSConfig     `mapstructure:"cors"`
}

// DataConfig selects where listings are read from.
type DataConfig struct {
	// Source is "csv" or "postgres".
	Source      string `mapstructure:"source"`
	Path        string `mapstructure:"path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	Table       string `mapstructure:"table"`
}

type YearConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

type CurrencyConfig struct {
	Code   string `mapstructure:"code"`
	Symbol string `mapstructure:"symbol"`
	Locale string `mapstructure:"locale"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	Color bool   `mapstructure:"color"`
}

type FluentConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Level   string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Data sources understood by DataConfig.Source.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// SetDefaults registers every key with its default value. Keys unknown to
// viper are not looked up in the environment, so all settings appear here.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "carvalue")
	v.SetDefault("addr", ":8080")
	v.SetDefault("model_path", "models/pipeline_car.json")

	v.SetDefault("data.source", SourceCSV)
	v.SetDefault("data.path", "data/car_listings.csv")
	v.SetDefault("data.postgres_dsn", "")
	v.SetDefault("data.table", "listings")

	v.SetDefault("years.min", 2000)
	v.SetDefault("years.max", 2023)

	v.SetDefault("currency.code", "INR")
	v.SetDefault("currency.symbol", "₹")
	v.SetDefault("currency.locale", "en")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.color", true)

	v.SetDefault("fluent.enabled", false)
	v.SetDefault("fluent.host", "localhost")
	v.SetDefault("fluent.port", 24224)
	v.SetDefault("fluent.level", "info")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:8501"})
}

// LoadDotEnv loads variables from path into the process environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration held by v. configFile, when set, must exist.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.Path == "" {
			return errors.New("config: data.path is required for the csv source")
		}
	case SourcePostgres:
		if c.Data.PostgresDSN == "" {
			return errors.New("config: data.postgres_dsn is required for the postgres source")
		}
	default:
		return fmt.Errorf("config: unknown data.source %q (want %s or %s)", c.Data.Source, SourceCSV, SourcePostgres)
	}
	if c.ModelPath == "" {
		return errors.New("config: model_path is required")
	}
	if c.Years.Min > c.Years.Max {
		return fmt.Errorf("config: years.min %d is after years.max %d", c.Years.Min, c.Years.Max)
	}
	if c.Currency.Code == "" {
		return errors.New("config: currency.code is required")
	}
	if c.Fluent.Enabled && c.Fluent.Host == "" {
		return errors.New("config: fluent.host is required when fluent is enabled")
	}
	return nil
}
