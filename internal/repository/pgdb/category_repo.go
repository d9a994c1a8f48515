package pgdb

import (
	"context"

	"github.com/DRSN-tech/go-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/tr"
	"github.com/jimlawless/whereami"
)

// CategoryRepo читает категории из PostgreSQL в рамках транзакции из контекста.
type CategoryRepo struct{}

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{}
}

// List возвращает категории в порядке отображения.
func (c *CategoryRepo) List(ctx context.Context) ([]converter.CategoryModel, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, name, description, position, created_at
		FROM categories
		ORDER BY position, id;
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]converter.CategoryModel, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Description, &model.Position, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
