package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/internal/repository/redis/converter"
	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/clients"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCfg := &cfg.RedisCfg{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
		CategoryTTL: time.Minute,
	}

	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheRepo(client, converter.NewCategoryInfoConverter(), redisCfg, logger.Nop()), mr
}

var smartphones = usecase.CategoryInfo{
	Name:          "Смартфоны",
	Description:   "Смартфоны, как средство не только коммуникации",
	ProductCount:  3,
	TotalQuantity: 27,
	MiddlePrice:   111629.62962962964,
	Summary:       "Смартфоны, количество продуктов: 27 шт.",
}

func TestCacheRepoRoundTrip(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	tv := usecase.CategoryInfo{Name: "Телевизоры", ProductCount: 1, TotalQuantity: 7, MiddlePrice: 123000}
	require.NoError(t, repo.SetCategories(ctx, []usecase.CategoryInfo{smartphones, tv}))

	got, err := repo.GetCategory(ctx, "Смартфоны")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, smartphones, *got)

	assert.Equal(t, time.Minute, mr.TTL(categoryKeyPrefix+"Телевизоры"))
}

func TestCacheRepoMiss(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.GetCategory(context.Background(), "Ноутбуки")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepoExpires(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetCategories(ctx, []usecase.CategoryInfo{smartphones}))
	mr.FastForward(2 * time.Minute)

	got, err := repo.GetCategory(ctx, "Смартфоны")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepoDropsBrokenEntries(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{broken"},
		{name: "name mismatch", value: `{"name":"Телевизоры","product_count":1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			repo, mr := newTestRepo(t)
			key := categoryKeyPrefix + "Смартфоны"
			require.NoError(t, mr.Set(key, tc.value))

			// Act
			got, err := repo.GetCategory(context.Background(), "Смартфоны")

			// Assert
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.False(t, mr.Exists(key), "broken entry is removed")
		})
	}
}

func TestCacheRepoDeleteCategories(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetCategories(ctx, []usecase.CategoryInfo{smartphones}))
	require.NoError(t, repo.DeleteCategories(ctx, []string{"Смартфоны", "Ноутбуки"}))
	require.NoError(t, repo.DeleteCategories(ctx, nil))

	assert.False(t, mr.Exists(categoryKeyPrefix+"Смартфоны"))
}

func TestCacheRepoUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	redisCfg := &cfg.RedisCfg{Addr: addr, MaxRetries: -1, DialTimeout: time.Second, Timeout: time.Second, CategoryTTL: time.Minute}
	client := clients.NewRedisClient(redisCfg)
	defer client.Close()
	repo := NewCacheRepo(client, converter.NewCategoryInfoConverter(), redisCfg, logger.Nop())

	_, err = repo.GetCategory(context.Background(), "Смартфоны")
	assert.Error(t, err)
	assert.Error(t, repo.SetCategories(context.Background(), []usecase.CategoryInfo{smartphones}))
}
