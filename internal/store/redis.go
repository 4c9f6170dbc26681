package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisBlob keeps the snapshot under Key in a redis instance.
type RedisBlob struct {
	rdb *goredis.Client
	key string
}

// OpenRedis connects and pings addr. prefix, when set, namespaces the key.
func OpenRedis(ctx context.Context, addr, prefix string) (*RedisBlob, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	key := Key
	if prefix != "" {
		key = prefix + ":" + Key
	}
	return &RedisBlob{rdb: rdb, key: key}, nil
}

func (r *RedisBlob) Get(ctx context.Context) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return data, nil
}

func (r *RedisBlob) Put(ctx context.Context, data []byte) error {
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisBlob) Close() error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
