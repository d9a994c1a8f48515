package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/DRSN-tech/go-catalog/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// CatalogSource собирает каталог из снимка таблиц categories и products.
type CatalogSource struct {
	dbPool       transaction.Transactional
	categoryRepo *CategoryRepo
	productRepo  *ProductRepo
	categoryConv converter.CategoryConverter
	productConv  converter.ProductConverter
	logger       logger.Logger
}

func NewCatalogSource(
	dbPool transaction.Transactional,
	categoryRepo *CategoryRepo,
	productRepo *ProductRepo,
	categoryConv converter.CategoryConverter,
	productConv converter.ProductConverter,
	logger logger.Logger,
) *CatalogSource {
	return &CatalogSource{
		dbPool:       dbPool,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		categoryConv: categoryConv,
		productConv:  productConv,
		logger:       logger,
	}
}

// Load читает обе таблицы в одной read-only транзакции, чтобы категории и продукты были согласованы.
func (s *CatalogSource) Load(ctx context.Context, registry *domain.Registry, opts ...domain.ProductOption) ([]*domain.Category, error) {
	const op = "CatalogSource.Load"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, s.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()
	ctx = tr.WithTx(ctx, tx.Transaction())

	categoryModels, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	productModels, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	categories, err := s.build(registry, s.categoryConv.Group(categoryModels, productModels), opts)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Debugf("catalog snapshot loaded: categories=%d products=%d", len(categoryModels), len(productModels))
	return categories, nil
}

func (s *CatalogSource) build(registry *domain.Registry, drafts []converter.CategoryDraft, opts []domain.ProductOption) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(drafts))

	for _, draft := range drafts {
		products := make([]*domain.Product, 0, len(draft.Products))
		for i := range draft.Products {
			info, err := s.productConv.ToInfo(&draft.Products[i])
			if err != nil {
				return nil, e.Wrap(fmt.Sprintf("category %q", draft.Category.Name), err)
			}

			p, err := domain.NewProductFromInfo(info, opts...)
			if err != nil {
				return nil, e.Wrap(fmt.Sprintf("category %q", draft.Category.Name), err)
			}
			products = append(products, p)
		}

		c, err := registry.NewCategory(draft.Category.Name, draft.Category.Description, products...)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, nil
}
