// Package redis constructs the shared Redis client.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/leonsos/insightt-test/internal/platform/config"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("address", cfg.Addr).Msg("redis connection failed")
		return nil, err
	}

	log.Info().Str("address", cfg.Addr).Msg("redis connection successful")
	return rdb, nil
}
