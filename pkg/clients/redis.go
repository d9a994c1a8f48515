package clients

import (
	"context"
	"time"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/jitter"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const redisClientName = "go-catalog"

// RedisStartupPolicy задаёт ожидание Redis при старте сервиса.
var RedisStartupPolicy = jitter.Policy{
	Attempts: 5,
	Base:     200 * time.Millisecond,
	Max:      2 * time.Second,
	Jitter:   jitter.DefaultJitter,
}

// RedisClient держит соединение с Redis для кэша сводок категорий.
type RedisClient struct {
	Client *r.Client
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	client := r.NewClient(&r.Options{
		Addr:         cfg.Addr,
		ClientName:   redisClientName,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	return &RedisClient{
		Client: client,
	}
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	if err := rc.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// WaitReady пингует Redis, пока он не ответит или не кончатся попытки политики.
func (rc *RedisClient) WaitReady(ctx context.Context, policy jitter.Policy, log logger.Logger) error {
	return jitter.Retry(ctx, policy, func(ctx context.Context, attempt int) error {
		err := rc.Ping(ctx)
		if err != nil {
			log.Warnf("Redis is not ready (attempt %d/%d): %v", attempt+1, policy.Attempts, err)
		}
		return err
	})
}

func (rc *RedisClient) Close() error {
	return rc.Client.Close()
}
