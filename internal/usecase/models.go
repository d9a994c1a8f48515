package usecase

import (
	"time"

	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/shopspring/decimal"
)

// CATALOG USECASE

// CategoryInfo — сводка по категории для внешнего использования.
type CategoryInfo struct {
	Name          string
	Description   string
	ProductCount  int
	TotalQuantity int
	MiddlePrice   float64
	Summary       string // текстовое представление категории
}

// ProductView — DTO с данными продукта.
type ProductView struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Kind        string
	Smartphone  *domain.Smartphone
	LawnGrass   *domain.LawnGrass
	Rendered    string
}

// AddProductReq — запрос на добавление продукта в категорию с учётом дубликатов.
type AddProductReq struct {
	CategoryName string
	Product      domain.ProductInfo
}

// AddProductRes — результат добавления: новый продукт или слияние с существующим.
type AddProductRes struct {
	Product      ProductView
	Created      bool
	PriceChanged bool
}

// SetPriceReq — запрос на смену цены.
// ConfirmDecrease подтверждает понижение цены для этого запроса.
type SetPriceReq struct {
	CategoryName    string
	ProductName     string
	Price           float64
	ConfirmDecrease bool
}

type SetPriceRes struct {
	Product  ProductView
	OldPrice float64
	Changed  bool
}

// PlaceOrderReq — запрос на оформление заказа.
type PlaceOrderReq struct {
	CategoryName string
	ProductName  string
	Quantity     int
}

// OrderInfo — снимок оформленного заказа.
type OrderInfo struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Summary     string
}

// CombineValueReq — запрос на сложение стоимости остатков двух продуктов категории.
type CombineValueReq struct {
	CategoryName string
	First        string
	Second       string
}

// Stats — накопительные счётчики каталога.
type Stats struct {
	CategoryCount     int
	TotalProductCount int
}

// INFRASTUCTURE

// EventType — тип события каталога.
type EventType string

const (
	EventOrderPlaced   EventType = "order_placed"
	EventPriceChanged  EventType = "price_changed"
	EventProductMerged EventType = "product_merged"
)

// WriteMessageReq — событие для публикации. Key определяет партицию.
type WriteMessageReq struct {
	ID         string
	Type       EventType
	Key        string
	Payload    map[string]any
	OccurredAt time.Time
}

// MAPPERS

func NewCategoryInfo(c *domain.Category) CategoryInfo {
	return CategoryInfo{
		Name:          c.Name(),
		Description:   c.Description(),
		ProductCount:  c.ProductCount(),
		TotalQuantity: c.TotalQuantity(),
		MiddlePrice:   c.MiddlePrice(),
		Summary:       c.String(),
	}
}

func NewProductView(p *domain.Product) ProductView {
	view := ProductView{
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Quantity:    p.Quantity(),
		Kind:        p.Kind().String(),
		Rendered:    p.String(),
	}

	switch p.Kind() {
	case domain.KindSmartphone:
		s := p.Smartphone()
		view.Smartphone = &s
	case domain.KindLawnGrass:
		g := p.LawnGrass()
		view.LawnGrass = &g
	}

	return view
}

func NewOrderInfo(o *domain.Order) *OrderInfo {
	return &OrderInfo{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		TotalPrice:  o.TotalPrice,
		Summary:     o.Describe(),
	}
}

func NewWriteMessageReq(id string, eventType EventType, key string, payload map[string]any, at time.Time) *WriteMessageReq {
	return &WriteMessageReq{
		ID:         id,
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: at,
	}
}
