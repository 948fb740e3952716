package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyFmt = "blockterm:%s"

// Redis keeps the best score under one string key.
type Redis struct {
	rdb redis.UniversalClient
	key string
}

func NewRedis(rdb redis.UniversalClient, key string) *Redis {
	return &Redis{rdb: rdb, key: fmt.Sprintf(redisKeyFmt, key)}
}

func (r *Redis) Load(ctx context.Context) (int, error) {
	best, err := r.rdb.Get(ctx, r.key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoBest
	} else if err != nil {
		return 0, fmt.Errorf("store: get %s: %w", r.key, err)
	}

	return checkValue(best)
}

func (r *Redis) Save(ctx context.Context, best int) error {
	if _, err := checkValue(best); err != nil {
		return err
	}

	if err := r.rdb.Set(ctx, r.key, best, 0).Err(); err != nil {
		return fmt.Errorf("store: set %s: %w", r.key, err)
	}

	return nil
}
