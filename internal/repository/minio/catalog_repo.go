package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/internal/repository/document"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// CatalogRepo хранит документ каталога объектом в MinIO.
type CatalogRepo struct {
	mc     *minio.Client
	cfg    *cfg.MinIOCfg
	key    string
	logger logger.Logger
}

func NewCatalogRepo(mc *minio.Client, cfg *cfg.MinIOCfg, key string, logger logger.Logger) *CatalogRepo {
	return &CatalogRepo{
		mc:     mc,
		cfg:    cfg,
		key:    key,
		logger: logger,
	}
}

// Load читает объект каталога и собирает категории через registry.
// Формат определяется по расширению ключа, а при его отсутствии по Content-Type объекта.
func (c *CatalogRepo) Load(ctx context.Context, registry *domain.Registry, opts ...domain.ProductOption) ([]*domain.Category, error) {
	obj, err := c.mc.GetObject(ctx, c.cfg.BucketName, c.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer obj.Close()

	format, err := document.FormatFromPath(c.key)
	if err != nil {
		info, statErr := obj.Stat()
		if statErr != nil {
			return nil, e.Wrap(whereami.WhereAmI(), statErr)
		}

		format, err = document.FormatFromContentType(info.ContentType)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	docs, err := document.Decode(obj, format)
	if err != nil {
		return nil, e.Wrap(c.key, err)
	}

	categories, err := document.Build(registry, docs, opts...)
	if err != nil {
		return nil, e.Wrap(c.key, err)
	}

	c.logger.Debugf("catalog object loaded: bucket=%s key=%s categories=%d", c.cfg.BucketName, c.key, len(categories))
	return categories, nil
}

// Upload кладёт документ каталога в бакет под ключом репозитория и возвращает ключ объекта.
func (c *CatalogRepo) Upload(ctx context.Context, docs []document.CategoryDoc) (string, error) {
	format, err := document.FormatFromPath(c.key)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	var buf bytes.Buffer
	if err := document.Encode(&buf, format, docs); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	info, err := c.mc.PutObject(ctx, c.cfg.BucketName, c.key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: format.ContentType(),
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}
