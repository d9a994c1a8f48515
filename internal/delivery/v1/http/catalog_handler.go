package http

import (
	"net/http"

	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// fail логирует ошибку запроса и пишет ответ. 5xx пишутся как Errorf, остальное как Warnf.
func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		h.logger.Errorf(err, "%d %s %s", code, r.Method, r.URL.Path)
	} else {
		h.logger.Warnf("%d %s %s: %s (%v)", code, r.Method, r.URL.Path, msg, err)
	}

	WriteError(w, err)
}

// listCategories
//
//	@Summary		Список категорий
//	@Description	Сводки всех категорий в порядке загрузки каталога
//	@Tags			categories
//	@Produce		json
//	@Success		200	{array}		CategoryResponse
//	@Failure		503	{object}	ErrorResponse	"Каталог не загружен"
//	@Router			/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	infos, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res := make([]CategoryResponse, 0, len(infos))
	for _, info := range infos {
		res = append(res, toCategoryResponse(info))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getCategory
//
//	@Summary	Сводка категории
//	@Tags		categories
//	@Produce	json
//	@Param		name	path		string	true	"Название категории"
//	@Success	200		{object}	CategoryResponse
//	@Failure	404		{object}	ErrorResponse	"Категория не найдена"
//	@Router		/categories/{name} [get]
func (h *CatalogHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	name, err := urlParam(r, "name")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	info, err := h.catalogUsecase.GetCategory(r.Context(), name)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(*info))
}

// listProducts
//
//	@Summary	Продукты категории
//	@Tags		products
//	@Produce	json
//	@Param		name	path		string	true	"Название категории"
//	@Success	200		{array}		ProductResponse
//	@Failure	404		{object}	ErrorResponse	"Категория не найдена"
//	@Router		/categories/{name}/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	name, err := urlParam(r, "name")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	views, err := h.catalogUsecase.ListProducts(r.Context(), name)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res := make([]ProductResponse, 0, len(views))
	for _, v := range views {
		res = append(res, toProductResponse(v))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// addProduct
//
//	@Summary		Добавление продукта
//	@Description	Создаёт продукт или сливает его с одноимённым: остаток суммируется, цена повышается
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string				true	"Название категории"
//	@Param			product	body		AddProductRequest	true	"Продукт"
//	@Success		201		{object}	AddProductResponse	"Создан новый продукт"
//	@Success		200		{object}	AddProductResponse	"Слияние с существующим"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse		"Категория не найдена"
//	@Failure		409		{object}	ErrorResponse		"Продукт уже есть в категории"
//	@Router			/categories/{name}/products [post]
func (h *CatalogHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	name, err := urlParam(r, "name")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req AddProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	info, err := req.toProductInfo()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.catalogUsecase.AddProduct(r.Context(), &usecase.AddProductReq{CategoryName: name, Product: info})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}

	WriteSuccess(w, status, AddProductResponse{
		Product:      toProductResponse(res.Product),
		Created:      res.Created,
		PriceChanged: res.PriceChanged,
	})
}

// setPrice
//
//	@Summary		Смена цены
//	@Description	Понижение цены применяется только с confirm_decrease (или при разрешающей политике сервиса).
//	@Description	Отклонённая смена не является ошибкой: changed=false. Так же обрабатываются ноль и отрицательная цена.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string			true	"Название категории"
//	@Param			product	path		string			true	"Название продукта"
//	@Param			price	body		SetPriceRequest	true	"Новая цена"
//	@Success		200		{object}	SetPriceResponse
//	@Failure		400		{object}	ErrorResponse	"Цена не число, больше двух знаков после точки или по модулю свыше 1e9"
//	@Failure		404		{object}	ErrorResponse	"Категория или продукт не найдены"
//	@Router			/categories/{name}/products/{product}/price [patch]
func (h *CatalogHandler) setPrice(w http.ResponseWriter, r *http.Request) {
	categoryName, err := urlParam(r, "name")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	productName, err := urlParam(r, "product")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req SetPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	// неположительную цену отклоняет сам продукт
	price, err := parseAmount(req.Price)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.catalogUsecase.SetPrice(r.Context(), &usecase.SetPriceReq{
		CategoryName:    categoryName,
		ProductName:     productName,
		Price:           price,
		ConfirmDecrease: req.ConfirmDecrease,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SetPriceResponse{
		Product:  toProductResponse(res.Product),
		OldPrice: res.OldPrice,
		Changed:  res.Changed,
	})
}

// placeOrder
//
//	@Summary		Оформление заказа
//	@Description	Фиксирует стоимость заказа; остаток продукта не меняется
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		PlaceOrderRequest	true	"Заказ"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse	"Категория или продукт не найдены"
//	@Router			/orders [post]
func (h *CatalogHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if req.Category == "" || req.Product == "" {
		h.fail(w, r, e.Wrap("category and product", e.ErrMissingFields))
		return
	}

	order, err := h.catalogUsecase.PlaceOrder(r.Context(), &usecase.PlaceOrderReq{
		CategoryName: req.Category,
		ProductName:  req.Product,
		Quantity:     req.Quantity,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Infof("Order placed: id=%s product=%s quantity=%d", order.ID, order.Name, order.Quantity)
	WriteSuccess(w, http.StatusCreated, toOrderResponse(order))
}

// stats
//
//	@Summary	Счётчики каталога
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	StatsResponse
//	@Failure	503	{object}	ErrorResponse	"Каталог не загружен"
//	@Router		/stats [get]
func (h *CatalogHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalogUsecase.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, StatsResponse{
		CategoryCount:     stats.CategoryCount,
		TotalProductCount: stats.TotalProductCount,
	})
}

// reload
//
//	@Summary		Перезагрузка каталога
//	@Description	Заново читает каталог из источника. Изменения, сделанные через API, теряются.
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/catalog/reload [post]
func (h *CatalogHandler) reload(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.Load(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}

	h.stats(w, r)
}
