package store

import (
	"context"
	"fmt"
	"strings"

	"course-catalog/internal/config"
	"course-catalog/internal/logger"
)

// Open builds the Store selected by cfg.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*Snapshots, error) {
	codec, err := CodecFor(strings.ToLower(cfg.StoreCodec), cfg.StoreCompress)
	if err != nil {
		return nil, err
	}

	var blob Blob
	switch strings.ToLower(cfg.StoreBackend) {
	case "", "file":
		blob = NewFileBlob(cfg.StorePath)
	case "sqlite":
		blob, err = OpenSQLite(cfg.StorePath)
	case "redis":
		blob, err = OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case "memory":
		blob = NewMemoryBlob()
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.StoreBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.StoreBackend, err)
	}
	return New(blob, codec, log), nil
}
