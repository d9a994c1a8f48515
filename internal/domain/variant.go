package domain

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/go-catalog/pkg/e"
)

// Kind — конкретный вид продукта. Складывать стоимость можно только у продуктов одного вида.
type Kind int

const (
	KindPlain Kind = iota
	KindSmartphone
	KindLawnGrass
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "product"
	case KindSmartphone:
		return "smartphone"
	case KindLawnGrass:
		return "lawn_grass"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind разбирает вид продукта из документа каталога. Пустая строка означает обычный продукт.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "product", "plain":
		return KindPlain, nil
	case "smartphone":
		return KindSmartphone, nil
	case "lawn_grass", "lawngrass":
		return KindLawnGrass, nil
	default:
		return KindPlain, e.Wrap(s, e.ErrUnknownProductKind)
	}
}

// Smartphone описывает дополнительные характеристики смартфона
type Smartphone struct {
	Efficiency float64
	Model      string
	Memory     int
	Color      string
}

// LawnGrass описывает дополнительные характеристики газонной травы
type LawnGrass struct {
	Country           string
	GerminationPeriod int // в днях
	Color             string
}

// NewSmartphone создаёт продукт вида KindSmartphone.
func NewSmartphone(name, description string, price float64, quantity int, attrs Smartphone, opts ...ProductOption) (*Product, error) {
	return newProduct(name, description, price, quantity, KindSmartphone, func(p *Product) {
		p.smartphone = attrs
	}, opts)
}

// NewLawnGrass создаёт продукт вида KindLawnGrass.
func NewLawnGrass(name, description string, price float64, quantity int, attrs LawnGrass, opts ...ProductOption) (*Product, error) {
	return newProduct(name, description, price, quantity, KindLawnGrass, func(p *Product) {
		p.lawnGrass = attrs
	}, opts)
}

func (s Smartphone) suffix() string {
	return fmt.Sprintf(", Эффективность: %s, Модель: %s, Встроенная память: %d, Цвет: %s",
		formatNumber(s.Efficiency), s.Model, s.Memory, s.Color)
}

func (g LawnGrass) suffix() string {
	return fmt.Sprintf(", Страна: %s, Срок прорастания: %d дней, Цвет: %s",
		g.Country, g.GerminationPeriod, g.Color)
}
