package usecase

import (
	"context"

	"github.com/DRSN-tech/go-catalog/internal/domain"
)

// CatalogSource загружает категории каталога через переданный реестр.
type CatalogSource interface {
	Load(ctx context.Context, registry *domain.Registry, opts ...domain.ProductOption) ([]*domain.Category, error)
}

// CacheRepository кэширует сводки категорий. При промахе кэша возвращается (nil, nil).
type CacheRepository interface {
	GetCategory(ctx context.Context, name string) (*CategoryInfo, error)
	SetCategories(ctx context.Context, categories []CategoryInfo) error
	DeleteCategories(ctx context.Context, names []string) error
}
