package http

import (
	"github.com/DRSN-tech/go-catalog/internal/domain"
	"github.com/DRSN-tech/go-catalog/internal/usecase"
)

type CategoryResponse struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ProductCount  int     `json:"product_count"`
	TotalQuantity int     `json:"total_quantity"`
	MiddlePrice   float64 `json:"middle_price"`
	Summary       string  `json:"summary"`
}

type SmartphoneAttrs struct {
	Efficiency float64 `json:"efficiency"`
	Model      string  `json:"model"`
	Memory     int     `json:"memory"`
	Color      string  `json:"color"`
}

type LawnGrassAttrs struct {
	Country           string `json:"country"`
	GerminationPeriod int    `json:"germination_period"`
	Color             string `json:"color"`
}

type ProductResponse struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Quantity    int              `json:"quantity"`
	Kind        string           `json:"kind"`
	Smartphone  *SmartphoneAttrs `json:"smartphone,omitempty"`
	LawnGrass   *LawnGrassAttrs  `json:"lawn_grass,omitempty"`
	Rendered    string           `json:"rendered"`
}

// AddProductRequest — тело POST /categories/{name}/products. Цена передаётся строкой.
type AddProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       string           `json:"price"`
	Quantity    int              `json:"quantity"`
	Kind        string           `json:"kind,omitempty"`
	Smartphone  *SmartphoneAttrs `json:"smartphone,omitempty"`
	LawnGrass   *LawnGrassAttrs  `json:"lawn_grass,omitempty"`
}

type AddProductResponse struct {
	Product      ProductResponse `json:"product"`
	Created      bool            `json:"created"`
	PriceChanged bool            `json:"price_changed"`
}

type SetPriceRequest struct {
	Price           string `json:"price"`
	ConfirmDecrease bool   `json:"confirm_decrease"`
}

type SetPriceResponse struct {
	Product  ProductResponse `json:"product"`
	OldPrice float64         `json:"old_price"`
	Changed  bool            `json:"changed"`
}

type PlaceOrderRequest struct {
	Category string `json:"category"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type OrderResponse struct {
	ID          string `json:"id"`
	Product     string `json:"product"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
	Summary     string `json:"summary"`
}

type StatsResponse struct {
	CategoryCount     int `json:"category_count"`
	TotalProductCount int `json:"total_product_count"`
}

func toCategoryResponse(c usecase.CategoryInfo) CategoryResponse {
	return CategoryResponse{
		Name:          c.Name,
		Description:   c.Description,
		ProductCount:  c.ProductCount,
		TotalQuantity: c.TotalQuantity,
		MiddlePrice:   c.MiddlePrice,
		Summary:       c.Summary,
	}
}

func toProductResponse(p usecase.ProductView) ProductResponse {
	res := ProductResponse{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Kind:        p.Kind,
		Rendered:    p.Rendered,
	}
	if s := p.Smartphone; s != nil {
		res.Smartphone = &SmartphoneAttrs{Efficiency: s.Efficiency, Model: s.Model, Memory: s.Memory, Color: s.Color}
	}
	if g := p.LawnGrass; g != nil {
		res.LawnGrass = &LawnGrassAttrs{Country: g.Country, GerminationPeriod: g.GerminationPeriod, Color: g.Color}
	}

	return res
}

func toOrderResponse(o *usecase.OrderInfo) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		Product:     o.Name,
		Description: o.Description,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice.StringFixed(2),
		TotalPrice:  o.TotalPrice.StringFixed(2),
		Summary:     o.Summary,
	}
}

// toProductInfo переводит тело запроса в domain.ProductInfo. Атрибуты берутся по виду продукта.
func (req *AddProductRequest) toProductInfo() (domain.ProductInfo, error) {
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return domain.ProductInfo{}, err
	}

	var price float64
	if req.Price != "" {
		if price, err = parsePrice(req.Price); err != nil {
			return domain.ProductInfo{}, err
		}
	}

	info := domain.ProductInfo{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Quantity:    req.Quantity,
		Kind:        kind,
	}
	switch kind {
	case domain.KindSmartphone:
		if s := req.Smartphone; s != nil {
			info.Smartphone = domain.Smartphone{Efficiency: s.Efficiency, Model: s.Model, Memory: s.Memory, Color: s.Color}
		}
	case domain.KindLawnGrass:
		if g := req.LawnGrass; g != nil {
			info.LawnGrass = domain.LawnGrass{Country: g.Country, GerminationPeriod: g.GerminationPeriod, Color: g.Color}
		}
	}

	return info, nil
}
