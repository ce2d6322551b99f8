package storage

import (
	"context"

	"clubhub/internal/core/ports"
	"clubhub/internal/infrastructure/storage/memory"
	redisstore "clubhub/internal/infrastructure/storage/redis"
	"clubhub/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory creates the durable key-value store, falling back to the
// in-process store when Redis is disabled or unreachable.
type Factory struct {
	useRedis    bool
	redisClient *redis.Client
	logger      *zap.SugaredLogger
}

func NewFactory(cfg *config.Config, logger *zap.SugaredLogger) (*Factory, error) {
	factory := &Factory{
		useRedis: cfg.Redis.Enabled,
		logger:   logger,
	}

	if cfg.Redis.Enabled {
		client, err := redisstore.NewClient(
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			logger,
		)
		if err != nil {
			logger.Warnw("failed to connect to Redis, falling back to memory store",
				"error", err,
			)
			factory.useRedis = false
		} else {
			factory.redisClient = client
			logger.Info("using Redis key-value store")
		}
	}

	if !factory.useRedis {
		logger.Info("using memory key-value store")
	}

	return factory, nil
}

func (f *Factory) CreateKeyValueStore() ports.KeyValueStore {
	if f.useRedis && f.redisClient != nil {
		return redisstore.NewKVStore(f.redisClient)
	}
	return memory.NewKVStore()
}

func (f *Factory) Close() error {
	if f.redisClient != nil {
		return redisstore.CloseClient(f.redisClient)
	}
	return nil
}

func (f *Factory) HealthCheck(ctx context.Context) error {
	if f.useRedis && f.redisClient != nil {
		return f.redisClient.Ping(ctx).Err()
	}
	return nil
}
