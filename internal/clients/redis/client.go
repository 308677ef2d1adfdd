package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

// Backend is the slice of Redis the location cache needs. Get reports
// found=false on a miss.
type Backend interface {
	Get(ctx context.Context, key string) (val []byte, found bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

type backend struct {
	rdb *goredis.Client
	log *logger.Logger
}

// NewBackend connects to addr and pings it.
func NewBackend(addr string, log *logger.Logger) (Backend, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &backend{rdb: rdb, log: log.With("service", "RedisBackend")}, nil
}

func (b *backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (b *backend) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return b.rdb.Set(ctx, key, val, ttl).Err()
}

func (b *backend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.rdb.Del(ctx, keys...).Err()
}

func (b *backend) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *backend) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
