package pgdb

import (
	"context"

	"github.com/DRSN-tech/go-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/tr"
	"github.com/jimlawless/whereami"
)

// ProductRepo читает продукты из PostgreSQL в рамках транзакции из контекста.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// List возвращает все продукты в порядке добавления внутри категории.
func (p *ProductRepo) List(ctx context.Context) ([]converter.ProductModel, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// price::text, чтобы не терять точность NUMERIC при чтении
	query := `
		SELECT id, category_id, name, description, price::text, quantity, kind, attributes, created_at
		FROM products
		ORDER BY category_id, id;
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.CategoryID, &model.Name, &model.Description,
			&model.Price, &model.Quantity, &model.Kind, &model.Attributes, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
