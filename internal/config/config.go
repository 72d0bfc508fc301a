// Package config loads service settings from defaults, an optional config
// file and SHOP_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "SHOP"
	configFileEnvName = "SHOP_CONFIG_FILE"
)

const (
	CatalogStatic = "static"
	CatalogSQLite = "sqlite"
	CatalogFile   = "file"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	HTTPPort        string        `mapstructure:"http_port"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Locale is used when a visitor asks for nothing we support.
	Locale string `mapstructure:"locale"`

	CatalogSource string `mapstructure:"catalog_source"`
	DBPath        string `mapstructure:"db_path"`
	CatalogFile   string `mapstructure:"catalog_file"`

	SessionStore    string        `mapstructure:"session_store"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`

	KafkaBrokers  []string `mapstructure:"kafka_brokers"`
	CheckoutTopic string   `mapstructure:"checkout_topic"`

	LogLevel       string `mapstructure:"log_level"`
	LogDevelopment bool   `mapstructure:"log_development"`

	ShopName      string `mapstructure:"shop_name"`
	Tagline       string `mapstructure:"tagline"`
	ShopOpen      bool   `mapstructure:"shop_open"`
	EngineVersion string `mapstructure:"engine_version"`
	PluginVersion string `mapstructure:"plugin_version"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("locale", "en")
	v.SetDefault("catalog_source", CatalogStatic)
	v.SetDefault("db_path", "./data/shop.db")
	v.SetDefault("catalog_file", "")
	v.SetDefault("session_store", StoreMemory)
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("notification_ttl", 3*time.Second)
	v.SetDefault("kafka_brokers", []string{})
	v.SetDefault("checkout_topic", "shop-checkout-completed")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)
	v.SetDefault("shop_name", "Discourse Shop")
	v.SetDefault("tagline", "Discover amazing products from our community")
	v.SetDefault("shop_open", true)
	v.SetDefault("engine_version", "3.2.0")
	v.SetDefault("plugin_version", "0.1")
}

// Load reads the configuration. args are the command line arguments
// without the program name; only --config is recognised.
func Load(args []string) (Config, error) {
	flags := pflag.NewFlagSet("shop", pflag.ContinueOnError)
	configFile := flags.String("config", "", "config file (yaml, json or toml)")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := *configFile
	if env, ok := os.LookupEnv(configFileEnvName); ok && path == "" {
		path = env
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.CatalogSource {
	case CatalogStatic, CatalogSQLite:
	case CatalogFile:
		if c.CatalogFile == "" {
			errs = append(errs, errors.New("catalog_file is required when catalog_source is file"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog_source %q", c.CatalogSource))
	}
	switch c.SessionStore {
	case StoreMemory, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown session_store %q", c.SessionStore))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http_port is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	if c.NotificationTTL <= 0 {
		errs = append(errs, errors.New("notification_ttl must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
