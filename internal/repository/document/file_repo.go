package document

import (
	"context"
	"os"

	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
)

// FileRepo загружает каталог из локального JSON- или YAML-файла.
type FileRepo struct {
	path   string
	logger logger.Logger
}

func NewFileRepo(path string, logger logger.Logger) *FileRepo {
	return &FileRepo{path: path, logger: logger}
}

// Load читает файл целиком и собирает категории через registry.
func (f *FileRepo) Load(ctx context.Context, registry *domain.Registry, opts ...domain.ProductOption) ([]*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	format, err := FormatFromPath(f.path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer file.Close()

	docs, err := Decode(file, format)
	if err != nil {
		return nil, e.Wrap(f.path, err)
	}

	categories, err := Build(registry, docs, opts...)
	if err != nil {
		return nil, e.Wrap(f.path, err)
	}

	f.logger.Debugf("catalog file loaded: path=%s categories=%d", f.path, len(categories))
	return categories, nil
}
