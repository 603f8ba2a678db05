package cache

import (
	"github.com/moon8997/my-erp/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewLookupInvalidator returns a Redis-backed invalidator when Redis is enabled
// and reachable. Otherwise the lookup cache stays local to this instance.
func NewLookupInvalidator(cfg config.RedisConfig, logger *zap.Logger) LookupInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("Redis disabled, lookup cache is local to this instance")
		return NewLocalLookupInvalidator()
	}

	inv, err := NewRedisLookupInvalidator(RedisOptions{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		Channel:  cfg.Channel,
	}, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to local lookup cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewLocalLookupInvalidator()
	}
	return inv
}
