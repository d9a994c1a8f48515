package domain

import (
	"fmt"
	"iter"
	"strings"

	"github.com/DRSN-tech/go-catalog/pkg/e"
)

// Category описывает категорию продуктов. Категория владеет своими продуктами единолично.
type Category struct {
	name        string
	description string
	products    []*Product
	registry    *Registry
}

// NewCategory создаёт категорию и учитывает её в реестре.
// Начальные продукты могут иметь нулевой остаток, nil и дубликаты отклоняются.
func (r *Registry) NewCategory(name, description string, products ...*Product) (*Category, error) {
	c := &Category{
		name:        name,
		description: description,
		products:    make([]*Product, 0, len(products)),
		registry:    r,
	}

	for _, p := range products {
		if err := c.checkMember(p); err != nil {
			return nil, e.Wrap(fmt.Sprintf("category %q", name), err)
		}
		c.products = append(c.products, p)
	}

	r.categoryCount++
	r.addProducts(len(c.products))

	r.logger.Debugf("category created: name=%q products=%d", c.name, len(c.products))
	return c, nil
}

func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }

// AddProduct добавляет продукт в конец категории.
func (c *Category) AddProduct(p *Product) error {
	if err := c.checkInsert(p); err != nil {
		return e.Wrap(fmt.Sprintf("category %q", c.name), err)
	}

	c.products = append(c.products, p)
	c.registry.addProducts(1)
	return nil
}

// checkInsert проверяет продукт перед вставкой: nil, нулевой остаток, дубликат.
func (c *Category) checkInsert(p *Product) error {
	if p != nil && p.quantity <= 0 {
		return e.Wrap(fmt.Sprintf("product %q", p.name), e.ErrZeroQuantity)
	}

	return c.checkMember(p)
}

// checkMember отклоняет nil и продукт, который уже есть в категории.
func (c *Category) checkMember(p *Product) error {
	if p == nil {
		return e.Wrap("nil product", e.ErrTypeMismatch)
	}
	for _, existing := range c.products {
		if existing == p || existing.Equal(p) {
			return e.Wrap(fmt.Sprintf("product %q", p.name), e.ErrDuplicateProduct)
		}
	}

	return nil
}

// Products возвращает копию списка продуктов в порядке добавления.
func (c *Category) Products() []*Product {
	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// All возвращает ленивую последовательность продуктов. Каждый вызов начинает обход заново.
func (c *Category) All() iter.Seq[*Product] {
	return func(yield func(*Product) bool) {
		for _, p := range c.products {
			if !yield(p) {
				return
			}
		}
	}
}

// FindProduct ищет продукт по имени.
func (c *Category) FindProduct(name string) (*Product, bool) {
	for _, p := range c.products {
		if p.name == name {
			return p, true
		}
	}

	return nil, false
}

// ProductsRendered возвращает строки всех продуктов, разделённые переводом строки.
func (c *Category) ProductsRendered() string {
	lines := make([]string, 0, len(c.products))
	for _, p := range c.products {
		lines = append(lines, p.String())
	}

	return strings.Join(lines, "\n")
}

// ProductCount — сколько продуктов сейчас лежит в категории.
func (c *Category) ProductCount() int {
	return len(c.products)
}

// TotalQuantity — суммарный остаток всех продуктов категории.
func (c *Category) TotalQuantity() int {
	total := 0
	for _, p := range c.products {
		total += p.quantity
	}

	return total
}

// MiddlePrice возвращает среднюю цену, взвешенную по остаткам. Для пустой категории возвращает 0.
func (c *Category) MiddlePrice() float64 {
	total := c.TotalQuantity()
	if total == 0 {
		return 0
	}

	var (
		sum     float64
		stocked []*Product
	)
	for _, p := range c.products {
		if p.quantity > 0 {
			sum += p.price * float64(p.quantity)
			stocked = append(stocked, p)
		}
	}

	// один продукт с остатком: цена без погрешности деления
	if len(stocked) == 1 {
		return stocked[0].price
	}

	return sum / float64(total)
}

func (c *Category) String() string {
	return fmt.Sprintf("%s, количество продуктов: %d шт.", c.name, c.TotalQuantity())
}
