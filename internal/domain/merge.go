package domain

import (
	"fmt"

	"github.com/DRSN-tech/go-catalog/pkg/e"
)

// ProductInfo — поля для создания продукта через фабрику. Отсутствующие цена и количество равны нулю.
type ProductInfo struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Kind        Kind
	Smartphone  Smartphone
	LawnGrass   LawnGrass
}

// NewProductFromInfo создаёт продукт нужного вида по ProductInfo.
func NewProductFromInfo(info ProductInfo, opts ...ProductOption) (*Product, error) {
	switch info.Kind {
	case KindPlain:
		return NewProduct(info.Name, info.Description, info.Price, info.Quantity, opts...)
	case KindSmartphone:
		return NewSmartphone(info.Name, info.Description, info.Price, info.Quantity, info.Smartphone, opts...)
	case KindLawnGrass:
		return NewLawnGrass(info.Name, info.Description, info.Price, info.Quantity, info.LawnGrass, opts...)
	default:
		return nil, e.Wrap(info.Kind.String(), e.ErrUnknownProductKind)
	}
}

// MergeResult описывает исход CreateOrMerge.
type MergeResult struct {
	Product      *Product
	Created      bool // продукт новый и добавлен в категорию
	PriceChanged bool // у существующего продукта поднялась цена
}

// CreateOrMerge добавляет продукт в категорию с учётом дубликатов по имени.
// Если продукт с таким именем уже есть, его остаток увеличивается на info.Quantity,
// а цена поднимается через SetPrice, если новая выше. Новый объект при этом не создаётся.
// Иначе создаётся новый продукт, добавляется в категорию, а накопительный счётчик
// реестра растёт на его количество.
func (c *Category) CreateOrMerge(info ProductInfo, opts ...ProductOption) (*MergeResult, error) {
	if existing, ok := c.FindProduct(info.Name); ok {
		if err := existing.AddQuantity(info.Quantity); err != nil {
			return nil, e.Wrap(fmt.Sprintf("category %q", c.name), err)
		}

		changed := false
		if info.Price > existing.price {
			changed = existing.SetPrice(info.Price)
		}

		c.registry.logger.Debugf("product merged: category=%q name=%q quantity=%d", c.name, existing.name, existing.quantity)
		return &MergeResult{Product: existing, PriceChanged: changed}, nil
	}

	p, err := NewProductFromInfo(info, append([]ProductOption{WithLogger(c.registry.logger)}, opts...)...)
	if err != nil {
		return nil, e.Wrap(fmt.Sprintf("category %q", c.name), err)
	}

	if err := c.checkInsert(p); err != nil {
		return nil, e.Wrap(fmt.Sprintf("category %q", c.name), err)
	}

	c.products = append(c.products, p)
	c.registry.addProducts(p.quantity)

	return &MergeResult{Product: p, Created: true}, nil
}
