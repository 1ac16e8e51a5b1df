package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// chdirTemp moves into an empty directory so no config.yaml or .env is found
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CorsOrigins)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, int32(10), cfg.Store.MaxConns)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, 10, cfg.NATS.MaxReconnects)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "en", cfg.Analytics.Locale)
	assert.Equal(t, 8, cfg.Analytics.TopTopics)
	assert.Equal(t, 10, cfg.Analytics.BarPageSize)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
  sqlite_path: /tmp/records.db
nats:
  url: nats://localhost:4222
  reconnect_wait: 3s
analytics:
  locale: fr
  case_insensitive: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/records.db", cfg.Store.SQLitePath)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 3*time.Second, cfg.NATS.ReconnectWait)
	assert.True(t, cfg.Analytics.CaseInsensitive)
	assert.Equal(t, language.French, cfg.Analytics.Tag())
	// Defaults still apply for unset values
	assert.Equal(t, 8, cfg.Analytics.TopTopics)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("VIZDASH_LOG_LEVEL", "warn")
	t.Setenv("VIZDASH_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadLegacyEnvNames(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PORT", "4000")
	t.Setenv("CLIENT_URLS", "http://localhost:3000,https://dash.example.com")
	t.Setenv("DATABASE_URL", "postgres://localhost/dashboard")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, cfg.Server.CorsOrigins)
	assert.Equal(t, "postgres://localhost/dashboard", cfg.Store.DatabaseURL)
}

func TestLoadPrefixedEnvWinsOverLegacy(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PORT", "4000")
	t.Setenv("VIZDASH_SERVER_PORT", "4100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.Server.Port)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VIZDASH_REMOTE_URL=http://backend:3000\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("VIZDASH_REMOTE_URL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:3000", cfg.Remote.URL)
}

func TestAnalyticsTagFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, language.English, AnalyticsConfig{Locale: "???"}.Tag())
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 3000
	cfg.Store.Driver = DriverPostgres
	cfg.Store.DatabaseURL = "postgres://localhost/test"
	cfg.Analytics.Locale = "en"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		command string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "postgres ok", command: "serve", mutate: func(*Config) {}},
		{
			name:    "postgres without url",
			command: "serve",
			mutate:  func(c *Config) { c.Store.DatabaseURL = "" },
			wantErr: "store.database_url is required",
		},
		{
			name:    "sqlite ok",
			command: "seed",
			mutate: func(c *Config) {
				c.Store.Driver = DriverSQLite
				c.Store.SQLitePath = "x.db"
			},
		},
		{
			name:    "http without remote",
			command: "serve",
			mutate:  func(c *Config) { c.Store.Driver = DriverHTTP },
			wantErr: "remote.url is required",
		},
		{
			name:    "seed into http",
			command: "seed",
			mutate: func(c *Config) {
				c.Store.Driver = DriverHTTP
				c.Remote.URL = "http://backend"
			},
			wantErr: "writable store",
		},
		{
			name:    "unknown driver",
			command: "serve",
			mutate:  func(c *Config) { c.Store.Driver = "mongo" },
			wantErr: "store.driver must be one of",
		},
		{
			name:    "bad port",
			command: "serve",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port ignored outside serve",
			command: "inspect",
			mutate:  func(c *Config) { c.Server.Port = 0 },
		},
		{
			name:    "bad locale",
			command: "inspect",
			mutate:  func(c *Config) { c.Analytics.Locale = "???" },
			wantErr: "analytics.locale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)

			err := cfg.Validate(tt.command)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
