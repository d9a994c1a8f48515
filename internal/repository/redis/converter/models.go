package converter

type CategoryInfoRedisModel struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ProductCount  int     `json:"product_count"`
	TotalQuantity int     `json:"total_quantity"`
	MiddlePrice   float64 `json:"middle_price"`
	Summary       string  `json:"summary"`
}
