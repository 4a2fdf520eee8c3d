// Package redis contains the keyed-store implementations backed by Redis.
// Every entry these stores write carries a TTL; expiry is how state such as
// verification codes and refresh sessions naturally disappears.
package redis

import (
	"context"
	"log/slog"

	"housing/config"
	"housing/internal/domain/lifecycle"
	"housing/internal/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the shared Redis client. The startup ping is part of the fx
// lifecycle: an unreachable store fails process start instead of letting
// requests degrade silently.
func New(params Params) (*redis.Client, error) {
	if params.Config.Redis == nil {
		return nil, errors.New("redis configuration must be provided")
	}

	client := redis.NewClient(params.Config.Redis.ToRedisOptions())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}
			params.Logger.Info("Connected to Redis",
				slog.String("addr", params.Config.Redis.Addr()),
				slog.Int("db", params.Config.Redis.DB))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
