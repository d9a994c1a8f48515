package pgdb

import (
	"testing"

	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource() *CatalogSource {
	return NewCatalogSource(nil, NewCategoryRepo(), NewProductRepo(),
		converter.NewCategoryConverter(), converter.NewProductConverter(), logger.Nop())
}

func TestCatalogSourceBuild(t *testing.T) {
	categories := []converter.CategoryModel{
		{ID: 1, Name: "Смартфоны", Description: "Смартфоны"},
		{ID: 2, Name: "Газонная трава", Description: "Трава для газона"},
	}
	products := []converter.ProductModel{
		{ID: 1, CategoryID: 1, Name: "Samsung Galaxy S23 Ultra", Price: "180000", Quantity: 5, Kind: "smartphone",
			Attributes: []byte(`{"efficiency": 95.5, "model": "S23 Ultra", "memory": 256, "color": "Серый"}`)},
		{ID: 2, CategoryID: 1, Name: "Iphone 15", Price: "210000", Quantity: 8, Kind: "smartphone",
			Attributes: []byte(`{"efficiency": 98.2, "model": "15", "memory": 512, "color": "Gray space"}`)},
		{ID: 3, CategoryID: 2, Name: "Газонная трава", Price: "500.00", Quantity: 20, Kind: "lawn_grass",
			Attributes: []byte(`{"country": "Россия", "germination_period": 7, "color": "Зеленый"}`)},
	}
	registry := domain.NewRegistry(nil)
	src := newTestSource()

	got, err := src.build(registry, src.categoryConv.Group(categories, products), nil)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Смартфоны, количество продуктов: 13 шт.", got[0].String())
	assert.Equal(t,
		"Газонная трава, 500.0 руб. Остаток: 20 шт., Страна: Россия, Срок прорастания: 7 дней, Цвет: Зеленый",
		got[1].ProductsRendered())
	assert.Equal(t, 2, registry.CategoryCount())
	assert.Equal(t, 3, registry.TotalProductCount())
}

func TestCatalogSourceBuildKeepsZeroQuantity(t *testing.T) {
	src := newTestSource()
	drafts := []converter.CategoryDraft{{
		Category: converter.CategoryModel{ID: 1, Name: "Телевизоры"},
		Products: []converter.ProductModel{
			{ID: 1, CategoryID: 1, Name: "QLED", Price: "123000", Quantity: 7},
			{ID: 2, CategoryID: 1, Name: "OLED", Price: "250000", Quantity: 0},
		},
	}}

	got, err := src.build(domain.NewRegistry(nil), drafts, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ProductCount())
	assert.Equal(t, "Телевизоры, количество продуктов: 7 шт.", got[0].String())
}
