package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Config selects and addresses a store.
type Config struct {
	// Driver is one of memory, file, redis or postgres.
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	RedisURL string `yaml:"redis_url"`
	PGDSN    string `yaml:"pg_dsn"`
}

// Open builds the store selected by cfg for one player. The returned func
// releases any connection it opened.
func Open(ctx context.Context, cfg Config, player string) (Store, func(), error) {
	key := Key(player)
	noop := func() {}

	switch cfg.Driver {
	case "memory":
		return NewMemory(), noop, nil

	case "file":
		return NewFile(cfg.Path, key), noop, nil

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("store: parse redis url: %w", err)
		}

		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("store: ping redis: %w", err)
		}

		return NewRedis(rdb, key), func() { rdb.Close() }, nil

	case "postgres":
		dbc, err := pgxpool.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("store: create db pool: %w", err)
		}

		if err := dbc.Ping(ctx); err != nil {
			dbc.Close()
			return nil, noop, fmt.Errorf("store: ping db: %w", err)
		}

		pg := NewPostgres(dbc, key)
		if err := pg.Migrate(ctx); err != nil {
			dbc.Close()
			return nil, noop, err
		}

		return pg, dbc.Close, nil
	}

	return nil, noop, fmt.Errorf("store: unknown driver %q", cfg.Driver)
}
