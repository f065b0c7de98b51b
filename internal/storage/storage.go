// Package storage opens the configured entity store backend.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prodib01/BAYLOR-CDC/internal/app"
	"github.com/prodib01/BAYLOR-CDC/internal/config"
	"github.com/prodib01/BAYLOR-CDC/internal/logger"
	"github.com/prodib01/BAYLOR-CDC/internal/storage/memory"
	"github.com/prodib01/BAYLOR-CDC/internal/storage/postgres"
	"github.com/prodib01/BAYLOR-CDC/internal/storage/sqlite"
	"github.com/prodib01/BAYLOR-CDC/migrations"
)

var (
	_ app.Store = (*postgres.Store)(nil)
	_ app.Store = (*memory.Store)(nil)
	_ app.Store = (*sqlite.Store)(nil)
)

// Backend is an open store plus its lifecycle hooks.
type Backend struct {
	app.Store
	Driver string

	ping  func(ctx context.Context) error
	close func()
}

// Ping reports whether the backend is reachable. The memory backend always is.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases connections and file handles.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects to the backend selected by cfg.Driver. For postgres the
// pending migrations are applied before returning.
func Open(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseURL, log)
	case config.DriverSQLite:
		store, err := sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info("storage ready", "driver", cfg.Driver, "path", store.Path())
		return &Backend{
			Store:  store,
			Driver: cfg.Driver,
			ping:   store.Ping,
			close:  func() { _ = store.Close() },
		}, nil
	case config.DriverMemory:
		log.Warn("storage is in-memory, data is lost on restart", "driver", cfg.Driver)
		return &Backend{Store: memory.NewStore(), Driver: cfg.Driver}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStorageDriver, cfg.Driver)
	}
}

func openPostgres(ctx context.Context, dsn string, log *logger.Logger) (*Backend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	applied, err := migrations.Apply(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	for _, name := range applied {
		log.Info("applied migration", "name", name)
	}
	log.Info("storage ready", "driver", config.DriverPostgres)

	store := postgres.NewStore(pool)
	return &Backend{
		Store:  store,
		Driver: config.DriverPostgres,
		ping:   store.Ping,
		close:  pool.Close,
	}, nil
}
