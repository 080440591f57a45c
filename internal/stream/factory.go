package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tpetrov/safellm/internal/predictor"
	redisconn "github.com/tpetrov/safellm/internal/redis"
	"github.com/tpetrov/safellm/internal/stream/redis"
)

// Config selects and configures the stream provider. Redis Streams is the
// only implemented provider; an empty Provider means redis.
type Config struct {
	Provider string
	Redis    redis.StreamConfig
}

func NewConsumer(
	ctx context.Context,
	cfg Config,
	pred *predictor.Predictor,
	logger *zerolog.Logger,
) (Consumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis stream config requires an address")
		}

		client, err := redisconn.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, 5)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.Redis, pred, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
