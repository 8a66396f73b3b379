package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each collection as one string value.
type RedisRepository struct {
	db     redis.UniversalClient
	prefix string
}

func NewRedisRepository(db redis.UniversalClient, prefix string) *RedisRepository {
	return &RedisRepository{db: db, prefix: prefix}
}

// ConnectRedis opens a client for addr and checks it answers.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store: redis %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.db.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (r *RedisRepository) Put(ctx context.Context, key string, data []byte) error {
	return r.db.Set(ctx, r.prefix+key, data, 0).Err()
}
