package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds a Redis client for the session store.
func NewRedis(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// PingRedis verifies the connection is usable before the app starts.
func PingRedis(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
