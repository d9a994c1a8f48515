package domain

import (
	"testing"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, name, description string, price float64, quantity int, opts ...ProductOption) *Product {
	t.Helper()
	p, err := NewProduct(name, description, price, quantity, opts...)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	testCases := []struct {
		name     string
		price    float64
		quantity int
		wantErr  error
	}{
		{name: "regular product", price: 399.99, quantity: 8},
		{name: "zero quantity is accepted", price: 10, quantity: 0},
		{name: "non-positive price is accepted at construction", price: -5, quantity: 1},
		{name: "negative quantity", price: 10, quantity: -1, wantErr: e.ErrInvalidQuantity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProduct("Tablet", "Touchscreen tablet", tc.price, tc.quantity)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, p)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Tablet", p.Name())
			assert.Equal(t, "Touchscreen tablet", p.Description())
			assert.Equal(t, tc.price, p.Price())
			assert.Equal(t, tc.quantity, p.Quantity())
			assert.Equal(t, KindPlain, p.Kind())
		})
	}
}

func TestProductSetPrice(t *testing.T) {
	var asked [][2]float64
	recordingConfirmer := func(answer bool) PriceConfirmer {
		return func(oldPrice, newPrice float64) bool {
			asked = append(asked, [2]float64{oldPrice, newPrice})
			return answer
		}
	}

	testCases := []struct {
		name        string
		confirmer   PriceConfirmer
		newPrice    float64
		wantChanged bool
		wantPrice   float64
		wantAsked   bool
	}{
		{name: "increase", confirmer: recordingConfirmer(false), newPrice: 150, wantChanged: true, wantPrice: 150},
		{name: "same price", confirmer: recordingConfirmer(false), newPrice: 100, wantChanged: true, wantPrice: 100},
		{name: "negative rejected", confirmer: recordingConfirmer(true), newPrice: -50, wantPrice: 100},
		{name: "zero rejected", confirmer: recordingConfirmer(true), newPrice: 0, wantPrice: 100},
		{name: "decrease denied", confirmer: recordingConfirmer(false), newPrice: 75, wantPrice: 100, wantAsked: true},
		{name: "decrease confirmed", confirmer: recordingConfirmer(true), newPrice: 50, wantChanged: true, wantPrice: 50, wantAsked: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			asked = nil
			p := mustProduct(t, "Test Product", "Description", 100, 10, WithPriceConfirmer(tc.confirmer))

			changed := p.SetPrice(tc.newPrice)

			assert.Equal(t, tc.wantChanged, changed)
			assert.Equal(t, tc.wantPrice, p.Price())
			if tc.wantAsked {
				assert.Equal(t, [][2]float64{{100, tc.newPrice}}, asked)
			} else {
				assert.Empty(t, asked)
			}
		})
	}
}

func TestProductSetPriceDefaultDeniesDecrease(t *testing.T) {
	p := mustProduct(t, "Test Product", "Description", 100, 10)

	assert.False(t, p.SetPrice(99))
	assert.Equal(t, 100.0, p.Price())
}

func TestProductCombineValue(t *testing.T) {
	plain := mustProduct(t, "Test", "d", 100, 10)
	other := mustProduct(t, "Other", "d", 50, 2)
	phone, err := NewSmartphone("Iphone 15", "512GB", 210000, 8, Smartphone{Efficiency: 98.2, Model: "15", Memory: 512, Color: "Gray space"})
	require.NoError(t, err)
	grass, err := NewLawnGrass("Газонная трава", "Элитная трава", 500, 20, LawnGrass{Country: "Россия", GerminationPeriod: 7, Color: "Зеленый"})
	require.NoError(t, err)

	t.Run("same kind", func(t *testing.T) {
		v, err := plain.CombineValue(other)
		require.NoError(t, err)
		assert.Equal(t, 1100.0, v)
	})

	t.Run("original catalog values", func(t *testing.T) {
		p1 := mustProduct(t, "Samsung Galaxy S23 Ultra", "256GB, Серый цвет, 200MP камера", 180000, 5)
		p2 := mustProduct(t, "Iphone 15", "512GB, Gray space", 210000, 8)
		p3 := mustProduct(t, "Xiaomi Redmi Note 11", "1024GB, Синий", 31000, 14)

		v, err := p1.CombineValue(p2)
		require.NoError(t, err)
		assert.Equal(t, 2580000.0, v)

		v, err = p1.CombineValue(p3)
		require.NoError(t, err)
		assert.Equal(t, 1334000.0, v)

		v, err = p2.CombineValue(p3)
		require.NoError(t, err)
		assert.Equal(t, 2114000.0, v)
	})

	mismatches := []struct {
		name string
		a, b *Product
	}{
		{name: "smartphone with plain", a: phone, b: plain},
		{name: "plain with smartphone", a: plain, b: phone},
		{name: "smartphone with lawn grass", a: phone, b: grass},
		{name: "plain with nil", a: plain, b: nil},
	}
	for _, tc := range mismatches {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.a.CombineValue(tc.b)
			assert.ErrorIs(t, err, e.ErrTypeMismatch)
		})
	}
}

func TestProductString(t *testing.T) {
	plain := mustProduct(t, "Test Product", "Description", 100, 10)
	assert.Equal(t, "Test Product, 100.0 руб. Остаток: 10 шт.", plain.String())

	fractional := mustProduct(t, "Tablet", "Touchscreen tablet", 399.99, 8)
	assert.Equal(t, "Tablet, 399.99 руб. Остаток: 8 шт.", fractional.String())

	phone, err := NewSmartphone("Samsung Galaxy S23 Ultra", "256GB, Серый цвет, 200MP камера", 180000, 5,
		Smartphone{Efficiency: 95.5, Model: "S23 Ultra", Memory: 256, Color: "Серый"})
	require.NoError(t, err)
	assert.Equal(t,
		"Samsung Galaxy S23 Ultra, 180000.0 руб. Остаток: 5 шт., "+
			"Эффективность: 95.5, Модель: S23 Ultra, Встроенная память: 256, Цвет: Серый",
		phone.String())

	grass, err := NewLawnGrass("Газонная трава", "Элитная трава для газона", 500, 20,
		LawnGrass{Country: "Россия", GerminationPeriod: 7, Color: "Зеленый"})
	require.NoError(t, err)
	assert.Equal(t,
		"Газонная трава, 500.0 руб. Остаток: 20 шт., Страна: Россия, Срок прорастания: 7 дней, Цвет: Зеленый",
		grass.String())
}

func TestVariantAttributes(t *testing.T) {
	phone, err := NewSmartphone("Iphone 15", "512GB, Gray space", 210000, 8,
		Smartphone{Efficiency: 98.2, Model: "15", Memory: 512, Color: "Gray space"})
	require.NoError(t, err)

	assert.Equal(t, KindSmartphone, phone.Kind())
	assert.Equal(t, 98.2, phone.Smartphone().Efficiency)
	assert.Equal(t, "15", phone.Smartphone().Model)
	assert.Equal(t, 512, phone.Smartphone().Memory)
	assert.Equal(t, "Gray space", phone.Smartphone().Color)

	grass, err := NewLawnGrass("Газонная трава 2", "Выносливая трава", 450, 15,
		LawnGrass{Country: "США", GerminationPeriod: 5, Color: "Темно-зеленый"})
	require.NoError(t, err)

	assert.Equal(t, KindLawnGrass, grass.Kind())
	assert.Equal(t, "США", grass.LawnGrass().Country)
	assert.Equal(t, 5, grass.LawnGrass().GerminationPeriod)
	assert.Equal(t, "Темно-зеленый", grass.LawnGrass().Color)
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "", want: KindPlain},
		{in: "product", want: KindPlain},
		{in: "Smartphone", want: KindSmartphone},
		{in: " lawn_grass ", want: KindLawnGrass},
		{in: "tv", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKind(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, e.ErrUnknownProductKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProductAddQuantity(t *testing.T) {
	p := mustProduct(t, "Test", "d", 10, 3)

	require.NoError(t, p.AddQuantity(5))
	assert.Equal(t, 8, p.Quantity())

	assert.ErrorIs(t, p.AddQuantity(-9), e.ErrInvalidQuantity)
	assert.Equal(t, 8, p.Quantity())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "100.0", formatNumber(100))
	assert.Equal(t, "399.99", formatNumber(399.99))
	assert.Equal(t, "0.0", formatNumber(0))
	assert.Equal(t, "10000000000000000.0", formatNumber(1e16))
	assert.Equal(t, "0.00001", formatNumber(1e-5))
	assert.Equal(t, "-50.0", formatNumber(-50))
	assert.Equal(t, "95.5", formatNumber(95.5))
}

func TestProductSetPriceWithOverridesPolicy(t *testing.T) {
	p := mustProduct(t, "Test Product", "Description", 100, 10)

	assert.True(t, p.SetPriceWith(80, AllowPriceDecrease))
	assert.Equal(t, 80.0, p.Price())

	assert.False(t, p.SetPrice(70), "the construction-time policy still denies")
	assert.Equal(t, 80.0, p.Price())
}
