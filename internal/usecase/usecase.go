package usecase

import "context"

type CatalogUC interface {
	Load(ctx context.Context) error
	ListCategories(ctx context.Context) ([]CategoryInfo, error)
	GetCategory(ctx context.Context, name string) (*CategoryInfo, error)
	ListProducts(ctx context.Context, categoryName string) ([]ProductView, error)
	AddProduct(ctx context.Context, req *AddProductReq) (*AddProductRes, error)
	SetPrice(ctx context.Context, req *SetPriceReq) (*SetPriceRes, error)
	PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*OrderInfo, error)
	CombineValue(ctx context.Context, req *CombineValueReq) (float64, error)
	Stats(ctx context.Context) (*Stats, error)
}
