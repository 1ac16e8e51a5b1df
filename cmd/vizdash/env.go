package main

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"vizdash/internal/adapter/events"
	"vizdash/internal/adapter/source"
	"vizdash/internal/adapter/storage"
	"vizdash/internal/config"
	"vizdash/internal/domain/record"
	"vizdash/internal/service/analytics"
)

// initDatabase opens the Postgres pool and checks the connection
func initDatabase(ctx context.Context, cfg config.StoreConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "unable to parse connection string")
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, eris.Wrap(err, "unable to connect to database")
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "unable to ping database")
	}

	return db, nil
}

// openStore opens and migrates the configured writable store
func openStore(ctx context.Context, cfg config.StoreConfig) (record.Store, error) {
	var st record.Store
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := initDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		st = storage.NewRecordStore(db)
	case config.DriverSQLite:
		s, err := storage.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		st = s
	default:
		return nil, eris.Errorf("store driver %q is not writable", cfg.Driver)
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// openSource returns where the dataset is read from and a func releasing it
func openSource(ctx context.Context, c *config.Config) (record.Source, func() error, error) {
	if c.Store.Driver == config.DriverHTTP {
		client := source.NewClient(c.Remote.URL, source.WithTimeout(c.Remote.Timeout))
		return client, func() error { return nil }, nil
	}

	st, err := openStore(ctx, c.Store)
	if err != nil {
		return nil, nil, err
	}
	return st, st.Close, nil
}

// initBus connects to NATS, or returns a bus that drops everything when no
// URL is configured
func initBus(cfg config.NATSConfig) (events.Bus, error) {
	if cfg.URL == "" {
		zap.L().Info("no NATS URL configured, dataset notifications disabled")
		return events.NopBus{}, nil
	}

	return events.Connect(events.NATSConfig{
		URL:            cfg.URL,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
		ConnectTimeout: cfg.ConnectTimeout,
	})
}

func sortOptions(cfg config.AnalyticsConfig) []analytics.SortOption {
	opts := []analytics.SortOption{analytics.WithLocale(cfg.Tag())}
	if cfg.CaseInsensitive {
		opts = append(opts, analytics.CaseInsensitive())
	}
	return opts
}

func viewOptions(cfg config.AnalyticsConfig) analytics.ViewOptions {
	opts := analytics.DefaultViewOptions()
	if cfg.BarPageSize > 0 {
		opts.PageSize = cfg.BarPageSize
	}
	if cfg.TopTopics > 0 {
		opts.TopTopics = cfg.TopTopics
	}
	return opts
}
