package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/internal/repository/redis/converter"
	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/clients"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const categoryKeyPrefix = "catalog:category:"

// CacheRepo кэширует сводки категорий в Redis с TTL.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.CategoryInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.CategoryInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCategory возвращает закэшированную сводку. При промахе возвращает (nil, nil).
// Повреждённая запись удаляется и считается промахом.
func (c *CacheRepo) GetCategory(ctx context.Context, name string) (*usecase.CategoryInfo, error) {
	key := c.categoryKey(name)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := c.unmarshalCategoryFromCache(data)
	if err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.dropKeys(ctx, key)
		return nil, nil
	}

	if model.Name != name {
		c.logger.Warnf("Cache name mismatch: key_name: %s, model_name: %s", name, model.Name)
		c.dropKeys(ctx, key)
		return nil, nil
	}

	return c.conv.ToUseCase(model), nil
}

// SetCategories кэширует несколько сводок одним пайплайном.
// Ошибки сериализации отдельных записей только логируются.
func (c *CacheRepo) SetCategories(ctx context.Context, categories []usecase.CategoryInfo) error {
	models := c.conv.ToArrRedisModel(categories)

	pipeline := c.client.Client.Pipeline()
	for _, model := range models {
		data, err := c.marshalCategoryForCache(model)
		if err != nil {
			c.logger.Warnf("Failed to marshal category for caching (%s): %v", model.Name, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		pipeline.Set(ctx, c.categoryKey(model.Name), data, c.cfg.CategoryTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteCategories удаляет сводки из кэша по именам категорий.
func (c *CacheRepo) DeleteCategories(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = c.categoryKey(name)
	}

	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) dropKeys(ctx context.Context, keys ...string) {
	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// marshalCategoryForCache сериализует сводку в JSON для кэша
func (c *CacheRepo) marshalCategoryForCache(model converter.CategoryInfoRedisModel) ([]byte, error) {
	return json.Marshal(model)
}

// unmarshalCategoryFromCache десериализует JSON из кэша в модель сводки
func (c *CacheRepo) unmarshalCategoryFromCache(data []byte) (*converter.CategoryInfoRedisModel, error) {
	var model converter.CategoryInfoRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// categoryKey возвращает Redis-ключ для одной категории
func (c *CacheRepo) categoryKey(name string) string {
	return fmt.Sprintf("%s%s", categoryKeyPrefix, name)
}
