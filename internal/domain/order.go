package domain

import (
	"fmt"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order — снимок покупки одного продукта в заданном количестве.
// Итоговая сумма фиксируется при создании и не пересчитывается при смене цены продукта.
type Order struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal

	product *Product
}

func NewOrder(product *Product, quantity int) (*Order, error) {
	if product == nil {
		return nil, e.Wrap("order for nil product", e.ErrTypeMismatch)
	}
	if quantity <= 0 {
		return nil, e.Wrap(fmt.Sprintf("order %q: quantity %d", product.name, quantity), e.ErrInvalidQuantity)
	}

	unit := decimal.NewFromFloat(product.price)

	return &Order{
		ID:          uuid.NewString(),
		Name:        product.name,
		Description: product.description,
		Quantity:    quantity,
		UnitPrice:   unit,
		TotalPrice:  unit.Mul(decimal.NewFromInt(int64(quantity))),
		product:     product,
	}, nil
}

// Product возвращает заказанный продукт.
func (o *Order) Product() *Product {
	return o.product
}

// Describe возвращает описание заказа с суммой до копеек.
func (o *Order) Describe() string {
	return fmt.Sprintf("Заказ: %s, количество: %d шт., итого: %s руб.", o.Name, o.Quantity, o.TotalPrice.StringFixed(2))
}

func (o *Order) String() string {
	return o.Describe()
}
