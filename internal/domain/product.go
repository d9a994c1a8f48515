package domain

import (
	"fmt"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
)

// Product описывает продукт каталога.
// Цена меняется только через SetPrice, количество — только через слияние в категории.
type Product struct {
	name        string
	description string
	price       float64
	quantity    int

	kind       Kind
	smartphone Smartphone
	lawnGrass  LawnGrass

	confirm PriceConfirmer
	logger  logger.Logger
}

// ProductOption настраивает продукт при создании.
type ProductOption func(*Product)

// WithPriceConfirmer задаёт политику подтверждения понижения цены.
func WithPriceConfirmer(c PriceConfirmer) ProductOption {
	return func(p *Product) {
		if c != nil {
			p.confirm = c
		}
	}
}

// WithLogger задаёт логгер для диагностики продукта.
func WithLogger(l logger.Logger) ProductOption {
	return func(p *Product) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProduct создаёт обычный продукт. Отрицательное количество отклоняется с e.ErrInvalidQuantity,
// цена при создании не проверяется.
func NewProduct(name, description string, price float64, quantity int, opts ...ProductOption) (*Product, error) {
	return newProduct(name, description, price, quantity, KindPlain, nil, opts)
}

func newProduct(name, description string, price float64, quantity int, kind Kind, init func(*Product), opts []ProductOption) (*Product, error) {
	if quantity < 0 {
		return nil, e.Wrap(fmt.Sprintf("product %q: quantity %d", name, quantity), e.ErrInvalidQuantity)
	}

	p := &Product{
		name:        name,
		description: description,
		price:       price,
		quantity:    quantity,
		kind:        kind,
		confirm:     DenyPriceDecrease,
		logger:      logger.Nop(),
	}
	if init != nil {
		init(p)
	}
	for _, opt := range opts {
		opt(p)
	}

	p.logger.Debugf("product created: kind=%s name=%q price=%s quantity=%d", p.kind, p.name, formatNumber(p.price), p.quantity)
	return p, nil
}

func (p *Product) Name() string           { return p.name }
func (p *Product) Description() string    { return p.description }
func (p *Product) Price() float64         { return p.price }
func (p *Product) Quantity() int          { return p.quantity }
func (p *Product) Kind() Kind             { return p.kind }
func (p *Product) Smartphone() Smartphone { return p.smartphone }
func (p *Product) LawnGrass() LawnGrass   { return p.lawnGrass }

// SetPrice пытается установить новую цену и сообщает, изменилась ли она.
// Неположительная цена отклоняется, понижение требует согласия PriceConfirmer.
func (p *Product) SetPrice(value float64) bool {
	return p.SetPriceWith(value, p.confirm)
}

// SetPriceWith — как SetPrice, но с разовой политикой подтверждения вместо заданной при создании.
func (p *Product) SetPriceWith(value float64, confirm PriceConfirmer) bool {
	if confirm == nil {
		confirm = p.confirm
	}

	if value <= 0 {
		p.logger.Warnf("Цена не должна быть нулевой или отрицательной: product=%q price=%s", p.name, formatNumber(value))
		return false
	}

	if value < p.price && !confirm(p.price, value) {
		p.logger.Infof("price decrease declined: product=%q %s -> %s", p.name, formatNumber(p.price), formatNumber(value))
		return false
	}

	p.price = value
	return true
}

// AddQuantity увеличивает остаток на delta. Результат не может стать отрицательным.
func (p *Product) AddQuantity(delta int) error {
	if p.quantity+delta < 0 {
		return e.Wrap(fmt.Sprintf("product %q: quantity %d%+d", p.name, p.quantity, delta), e.ErrInvalidQuantity)
	}

	p.quantity += delta
	return nil
}

// Value возвращает полную стоимость остатка: цена * количество.
func (p *Product) Value() float64 {
	return p.price * float64(p.quantity)
}

// CombineValue складывает стоимость остатков двух продуктов одного вида.
func (p *Product) CombineValue(other *Product) (float64, error) {
	if other == nil {
		return 0, e.Wrap("combine with nil product", e.ErrTypeMismatch)
	}
	if p.kind != other.kind {
		return 0, e.Wrap(fmt.Sprintf("combine %s with %s", p.kind, other.kind), e.ErrTypeMismatch)
	}

	return p.Value() + other.Value(), nil
}

// Equal сравнивает продукты по всем полям данных.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.name == other.name &&
		p.description == other.description &&
		p.price == other.price &&
		p.quantity == other.quantity &&
		p.kind == other.kind &&
		p.smartphone == other.smartphone &&
		p.lawnGrass == other.lawnGrass
}

func (p *Product) String() string {
	base := fmt.Sprintf("%s, %s руб. Остаток: %d шт.", p.name, formatNumber(p.price), p.quantity)

	switch p.kind {
	case KindSmartphone:
		return base + p.smartphone.suffix()
	case KindLawnGrass:
		return base + p.lawnGrass.suffix()
	default:
		return base
	}
}
