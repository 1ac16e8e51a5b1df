// internal/config/config.go

package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverHTTP     = "http"
)

// Config holds all application configuration
type Config struct {
	Environment string          `yaml:"environment" mapstructure:"environment"`
	Server      ServerConfig    `yaml:"server" mapstructure:"server"`
	Store       StoreConfig     `yaml:"store" mapstructure:"store"`
	Remote      RemoteConfig    `yaml:"remote" mapstructure:"remote"`
	NATS        NATSConfig      `yaml:"nats" mapstructure:"nats"`
	Log         LogConfig       `yaml:"log" mapstructure:"log"`
	Analytics   AnalyticsConfig `yaml:"analytics" mapstructure:"analytics"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	CorsOrigins     []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// StoreConfig selects where the records collection lives
type StoreConfig struct {
	Driver          string        `yaml:"driver" mapstructure:"driver"`
	DatabaseURL     string        `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath      string        `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	MaxConns        int32         `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns        int32         `yaml:"min_conns" mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" mapstructure:"max_conn_idle_time"`
}

// RemoteConfig points at another dashboard backend serving /api/v1/data
type RemoteConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// NATSConfig holds NATS configuration. An empty URL disables the bus.
type NATSConfig struct {
	URL            string        `yaml:"url" mapstructure:"url"`
	MaxReconnects  int           `yaml:"max_reconnects" mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `yaml:"reconnect_wait" mapstructure:"reconnect_wait"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AnalyticsConfig tunes criteria ordering and chart defaults
type AnalyticsConfig struct {
	Locale          string `yaml:"locale" mapstructure:"locale"`
	CaseInsensitive bool   `yaml:"case_insensitive" mapstructure:"case_insensitive"`
	TopTopics       int    `yaml:"top_topics" mapstructure:"top_topics"`
	BarPageSize     int    `yaml:"bar_page_size" mapstructure:"bar_page_size"`
}

// Tag returns the collation locale, falling back to English
func (a AnalyticsConfig) Tag() language.Tag {
	tag, err := language.Parse(a.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Load reads configuration from .env, config.yaml and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VIZDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by existing deployments
	bindings := map[string][]string{
		"server.port":         {"VIZDASH_SERVER_PORT", "PORT"},
		"server.cors_origins": {"VIZDASH_SERVER_CORS_ORIGINS", "CLIENT_URLS"},
		"store.database_url":  {"VIZDASH_STORE_DATABASE_URL", "DATABASE_URL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind %s", key)
		}
	}

	v.SetDefault("environment", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("store.sqlite_path", "vizdash.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 1)
	v.SetDefault("store.max_conn_lifetime", 5*time.Minute)
	v.SetDefault("store.max_conn_idle_time", time.Minute)
	v.SetDefault("remote.timeout", 30*time.Second)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", time.Second)
	v.SetDefault("nats.connect_timeout", 2*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("analytics.locale", "en")
	v.SetDefault("analytics.top_topics", 8)
	v.SetDefault("analytics.bar_page_size", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command depends on
func (c *Config) Validate(command string) error {
	var errs []string

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, "store.sqlite_path is required for the sqlite driver")
		}
	case DriverHTTP:
		if c.Remote.URL == "" {
			errs = append(errs, "remote.url is required for the http driver")
		}
		if command == "seed" {
			errs = append(errs, "seed needs a writable store, not the http driver")
		}
	default:
		errs = append(errs, "store.driver must be one of postgres, sqlite, http")
	}

	if command == "serve" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	if _, err := language.Parse(c.Analytics.Locale); err != nil {
		errs = append(errs, "analytics.locale is not a valid language tag")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
