package converter

import (
	"encoding/json"
	"fmt"

	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/internal/repository/document"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует запись products в данные для фабрики продуктов.
type ProductConverter interface {
	ToInfo(model *ProductModel) (domain.ProductInfo, error)
}

// CategoryConverter группирует продукты по категориям в порядке категорий.
type CategoryConverter interface {
	Group(categories []CategoryModel, products []ProductModel) []CategoryDraft
}

// CategoryDraft — категория с ещё не созданными продуктами.
type CategoryDraft struct {
	Category CategoryModel
	Products []ProductModel
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return productConverter{}
}

// ToInfo разбирает цену из NUMERIC и атрибуты вида из jsonb.
func (productConverter) ToInfo(model *ProductModel) (domain.ProductInfo, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return domain.ProductInfo{}, e.Wrap(fmt.Sprintf("product %d price %q", model.ID, model.Price), e.ErrInvalidPrice)
	}

	doc := document.ProductDoc{}
	if len(model.Attributes) > 0 {
		if err := json.Unmarshal(model.Attributes, &doc); err != nil {
			return domain.ProductInfo{}, e.Wrap(fmt.Sprintf("product %d attributes", model.ID), err)
		}
	}
	doc.Name = model.Name
	doc.Description = model.Description
	doc.Price = price.InexactFloat64()
	doc.Quantity = model.Quantity
	doc.Kind = model.Kind

	return doc.Info()
}

type categoryConverter struct{}

func NewCategoryConverter() CategoryConverter {
	return categoryConverter{}
}

// Group раскладывает продукты по категориям, сохраняя порядок обоих списков.
// Продукты неизвестных категорий отбрасываются.
func (categoryConverter) Group(categories []CategoryModel, products []ProductModel) []CategoryDraft {
	drafts := make([]CategoryDraft, len(categories))
	idx := make(map[int64]int, len(categories))
	for i, c := range categories {
		drafts[i] = CategoryDraft{Category: c}
		idx[c.ID] = i
	}

	for _, p := range products {
		if i, ok := idx[p.CategoryID]; ok {
			drafts[i].Products = append(drafts[i].Products, p)
		}
	}

	return drafts
}
