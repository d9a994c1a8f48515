package domain

import (
	"testing"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateOrMerge(t *testing.T) {
	registry := NewRegistry(nil)
	c, err := registry.NewCategory("Тест", "")
	require.NoError(t, err)

	created, err := c.CreateOrMerge(ProductInfo{Name: "Test Product", Description: "Description", Price: 100, Quantity: 5})
	require.NoError(t, err)
	assert.True(t, created.Created)
	assert.Equal(t, 1, c.ProductCount())
	assert.Equal(t, 5, registry.TotalProductCount(), "running total grows by the new quantity")

	merged, err := c.CreateOrMerge(ProductInfo{Name: "Test Product", Description: "Updated Description", Price: 150, Quantity: 3})
	require.NoError(t, err)
	assert.False(t, merged.Created)
	assert.True(t, merged.PriceChanged)
	assert.Same(t, created.Product, merged.Product)
	assert.Equal(t, 1, c.ProductCount())
	assert.Equal(t, 8, merged.Product.Quantity())
	assert.Equal(t, 150.0, merged.Product.Price())
	assert.Equal(t, "Description", merged.Product.Description())
	assert.Equal(t, 5, registry.TotalProductCount(), "merge does not touch the running total")
}

func TestCategoryCreateOrMergeKeepsHigherPrice(t *testing.T) {
	registry := NewRegistry(nil)
	c, err := registry.NewCategory("Тест", "", mustProduct(t, "Test Product", "d", 100, 5, WithPriceConfirmer(AllowPriceDecrease)))
	require.NoError(t, err)

	res, err := c.CreateOrMerge(ProductInfo{Name: "Test Product", Price: 50, Quantity: 2})
	require.NoError(t, err)

	assert.False(t, res.PriceChanged)
	assert.Equal(t, 100.0, res.Product.Price(), "a lower incoming price never reaches SetPrice")
	assert.Equal(t, 7, res.Product.Quantity())
}

func TestCategoryCreateOrMergeVariants(t *testing.T) {
	registry := NewRegistry(nil)
	c, err := registry.NewCategory("Смартфоны", "")
	require.NoError(t, err)

	res, err := c.CreateOrMerge(ProductInfo{
		Name:       "Iphone 15",
		Price:      210000,
		Quantity:   8,
		Kind:       KindSmartphone,
		Smartphone: Smartphone{Efficiency: 98.2, Model: "15", Memory: 512, Color: "Gray space"},
	})
	require.NoError(t, err)

	assert.Equal(t, KindSmartphone, res.Product.Kind())
	assert.Equal(t, "15", res.Product.Smartphone().Model)
}

func TestCategoryCreateOrMergeRejects(t *testing.T) {
	testCases := []struct {
		name    string
		info    ProductInfo
		wantErr error
	}{
		{name: "missing quantity", info: ProductInfo{Name: "New", Price: 10}, wantErr: e.ErrZeroQuantity},
		{name: "negative quantity", info: ProductInfo{Name: "New", Price: 10, Quantity: -1}, wantErr: e.ErrInvalidQuantity},
		{name: "negative merge below zero", info: ProductInfo{Name: "Existing", Quantity: -10}, wantErr: e.ErrInvalidQuantity},
		{name: "unknown kind", info: ProductInfo{Name: "New", Quantity: 1, Kind: Kind(42)}, wantErr: e.ErrUnknownProductKind},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			registry := NewRegistry(nil)
			c, err := registry.NewCategory("Тест", "", mustProduct(t, "Existing", "", 10, 2))
			require.NoError(t, err)

			_, err = c.CreateOrMerge(tc.info)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 1, c.ProductCount())
			assert.Equal(t, 1, registry.TotalProductCount())
		})
	}
}

func TestNewProductFromInfoDefaults(t *testing.T) {
	p, err := NewProductFromInfo(ProductInfo{Name: "Test"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.Price())
	assert.Equal(t, 0, p.Quantity())
}
